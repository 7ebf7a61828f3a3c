package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type settingsRequest struct {
	Periods         *int  `json:"periods"`
	PeriodSeconds   *int  `json:"periodSeconds"`
	SlotSize        *int  `json:"slotSize"`
	OverrideSeconds *int  `json:"overrideSeconds"` // 0 clears the override
	BalanceTiers    *bool `json:"balanceTiers"`
}

// UpdateSettings handles the PUT /api/teams/{team_id}/settings request.
// Fields are optional and only provided ones are applied, with the same
// floors the roster editor's steppers enforce: periods and slot size never
// drop below 1, period length never below 60 seconds.
func (h *Handler) UpdateSettings(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Periods != nil {
		team.Periods = floorInt(*req.Periods, 1)
	}
	if req.PeriodSeconds != nil {
		team.PeriodSeconds = floorInt(*req.PeriodSeconds, 60)
	}
	if req.SlotSize != nil {
		team.SlotSize = floorInt(*req.SlotSize, 1)
	}
	if req.OverrideSeconds != nil {
		team.OverrideSeconds = floorInt(*req.OverrideSeconds, 0)
	}
	if req.BalanceTiers != nil {
		team.BalanceTiers = *req.BalanceTiers
	}

	if err := h.store.UpdateTeamSettings(c.Request.Context(), team); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	members, err := h.store.ListMembers(c.Request.Context(), team.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, teamResponse(team, int64(len(members))))
}

func floorInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
