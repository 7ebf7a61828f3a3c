package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lineup-rotation-backend/internal/rotation"
)

// GetPlayback handles the GET /api/teams/{team_id}/playback request: the
// clock snapshot plus the slot the game is currently in.
func (h *Handler) GetPlayback(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	snap, ok := h.playback.Snapshot(team.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule generated yet"})
		return
	}

	resp := gin.H{"playback": snap}

	record, err := h.store.LatestSchedule(c.Request.Context(), team.ID)
	if err == nil {
		if slot, err := h.store.SlotAt(c.Request.Context(), record.ID, snap.Elapsed); err == nil {
			if view, err := slotViewFrom(slot); err == nil {
				remaining := slot.EndsAt - snap.Elapsed
				if remaining < 0 {
					remaining = 0
				}
				resp["currentSlot"] = view
				resp["remainingInSlot"] = remaining
				resp["remainingInSlotDisplay"] = rotation.FormatSeconds(remaining)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// StartPlayback handles the POST /api/teams/{team_id}/playback/start request.
func (h *Handler) StartPlayback(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	if !h.playback.Start(team.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "no schedule generated or game already finished"})
		return
	}
	h.respondSnapshot(c, team.ID)
}

// PausePlayback handles the POST /api/teams/{team_id}/playback/pause request.
func (h *Handler) PausePlayback(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	if !h.playback.Pause(team.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule generated yet"})
		return
	}
	h.respondSnapshot(c, team.ID)
}

// ResetPlayback handles the POST /api/teams/{team_id}/playback/reset request.
func (h *Handler) ResetPlayback(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	if !h.playback.Reset(team.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule generated yet"})
		return
	}
	h.respondSnapshot(c, team.ID)
}

func (h *Handler) respondSnapshot(c *gin.Context, teamID int64) {
	snap, _ := h.playback.Snapshot(teamID)
	c.JSON(http.StatusOK, gin.H{"playback": snap})
}
