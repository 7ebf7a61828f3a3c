package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineup-rotation-backend/internal/model"
	"lineup-rotation-backend/internal/parse"
)

type memberView struct {
	Name     string `json:"name"`
	HighTier bool   `json:"highTier"`
}

func rosterView(members []model.Member) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{Name: m.Name, HighTier: m.HighTier})
	}
	return views
}

// GetRoster handles the GET /api/teams/{team_id}/roster request.
func (h *Handler) GetRoster(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	h.respondRoster(c, team.ID)
}

type addMemberRequest struct {
	Name string `json:"name"`
}

// AddMember handles the POST /api/teams/{team_id}/roster request. Duplicate
// and blank names are silently ignored; the refreshed roster in the
// response is how the caller observes that nothing changed.
func (h *Handler) AddMember(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.AddMember(c.Request.Context(), team.ID, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.respondRoster(c, team.ID)
}

type bulkAddRequest struct {
	Text string `json:"text"`
}

// AddMembersBulk handles the POST /api/teams/{team_id}/roster/bulk request:
// a pasted block of names, one per line or comma/semicolon separated.
func (h *Handler) AddMembersBulk(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	var req bulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	names := parse.Names(req.Text)
	if err := h.store.AddMembers(c.Request.Context(), team.ID, names); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.respondRoster(c, team.ID)
}

// RemoveMember handles the DELETE /api/teams/{team_id}/roster/{name} request.
func (h *Handler) RemoveMember(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	if err := h.store.RemoveMember(c.Request.Context(), team.ID, c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.respondRoster(c, team.ID)
}

// ToggleMemberTier handles the POST /api/teams/{team_id}/roster/{name}/tier
// request, flipping the member's high/low tier flag.
func (h *Handler) ToggleMemberTier(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	if err := h.store.ToggleMemberTier(c.Request.Context(), team.ID, c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.respondRoster(c, team.ID)
}

func (h *Handler) respondRoster(c *gin.Context, teamID int64) {
	members, err := h.store.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": rosterView(members)})
}
