package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lineup-rotation-backend/internal/model"
)

// TeamResponse represents the API response for a single team.
type TeamResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Periods         int    `json:"periods"`
	PeriodSeconds   int    `json:"periodSeconds"`
	SlotSize        int    `json:"slotSize"`
	OverrideSeconds int    `json:"overrideSeconds"`
	BalanceTiers    bool   `json:"balanceTiers"`
	RosterSize      int64  `json:"rosterSize"`
}

// ListTeams handles the GET /api/teams request.
func ListTeams(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var teams []model.Team
		if err := db.Find(&teams).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
			return
		}

		type aggRow struct {
			TeamID     int64
			RosterSize int64
		}
		var aggs []aggRow
		if err := db.
			Model(&model.Member{}).
			Select("team_id as team_id, COUNT(*) as roster_size").
			Group("team_id").
			Scan(&aggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate rosters"})
			return
		}

		aggMap := make(map[int64]int64, len(aggs))
		for _, a := range aggs {
			aggMap[a.TeamID] = a.RosterSize
		}

		responses := make([]TeamResponse, 0, len(teams))
		for _, t := range teams {
			responses = append(responses, teamResponse(t, aggMap[t.ID]))
		}
		c.JSON(http.StatusOK, responses)
	}
}

func teamResponse(t model.Team, rosterSize int64) TeamResponse {
	return TeamResponse{
		ID:              t.ID,
		Name:            t.Name,
		Periods:         t.Periods,
		PeriodSeconds:   t.PeriodSeconds,
		SlotSize:        t.SlotSize,
		OverrideSeconds: t.OverrideSeconds,
		BalanceTiers:    t.BalanceTiers,
		RosterSize:      rosterSize,
	}
}

type createTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTeam handles the POST /api/teams request. New teams start with the
// configured default game settings.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.store.CreateTeam(c.Request.Context(), model.Team{
		Name:          req.Name,
		Periods:       h.defaults.Periods,
		PeriodSeconds: h.defaults.PeriodSeconds,
		SlotSize:      h.defaults.SlotSize,
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "team name already exists"})
		return
	}

	c.JSON(http.StatusCreated, teamResponse(team, 0))
}

// GetTeam handles the GET /api/teams/{team_id} request.
func (h *Handler) GetTeam(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}

	members, err := h.store.ListMembers(c.Request.Context(), team.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, teamResponse(team, int64(len(members))))
}

// teamFromPath resolves the :team_id path parameter, writing the error
// response itself when the ID is malformed or unknown.
func (h *Handler) teamFromPath(c *gin.Context) (model.Team, bool) {
	teamID, err := strconv.ParseInt(c.Param("team_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return model.Team{}, false
	}

	team, err := h.store.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "team not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return model.Team{}, false
	}
	return team, true
}
