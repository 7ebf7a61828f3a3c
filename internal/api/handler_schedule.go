package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lineup-rotation-backend/internal/model"
	"lineup-rotation-backend/internal/mw"
	"lineup-rotation-backend/internal/rotation"
)

// slotView is the API representation of one slot assignment.
type slotView struct {
	Period       int                    `json:"period"`
	Index        int                    `json:"index"`
	StartsAt     int                    `json:"startsAt"`
	EndsAt       int                    `json:"endsAt"`
	StartDisplay string                 `json:"startDisplay"`
	EndDisplay   string                 `json:"endDisplay"`
	Occupants    []rotation.Participant `json:"occupants"`
	HighCount    int                    `json:"highCount"`
	LowCount     int                    `json:"lowCount"`
}

// scheduleResponse is the flattened structure for the schedule API response.
type scheduleResponse struct {
	ID             string           `json:"id"`
	GeneratedAt    time.Time        `json:"generatedAt"`
	Periods        int              `json:"periods"`
	PeriodSeconds  int              `json:"periodSeconds"`
	SlotSize       int              `json:"slotSize"`
	BalanceTiers   bool             `json:"balanceTiers"`
	SlotSeconds    int              `json:"slotSeconds"`
	SlotDisplay    string           `json:"slotDisplay"`
	Advised        bool             `json:"advised"`
	TotalSeconds   int              `json:"totalSeconds"`
	TargetSeconds  float64          `json:"targetSeconds"`
	AverageSeconds float64          `json:"averageSeconds"`
	MaxSpread      int              `json:"maxSpread"`
	Slots          []slotView       `json:"slots"`
	Stats          []rotation.Stats `json:"stats"`
}

// GenerateSchedule handles the POST /api/teams/{team_id}/schedule request.
// The roster-size precondition is checked here, before the allocator runs,
// so a misconfigured team gets a usage error rather than a partial result.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	members, err := h.store.ListMembers(ctx, team.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(members) < team.SlotSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("roster has %d players but %d are needed on the field", len(members), team.SlotSize),
		})
		return
	}

	roster := make([]rotation.Participant, 0, len(members))
	for _, m := range members {
		roster = append(roster, rotation.Participant{Name: m.Name, HighTier: m.HighTier})
	}

	sched, err := rotation.Generate(roster, rotation.Config{
		Periods:         team.Periods,
		PeriodSeconds:   team.PeriodSeconds,
		SlotSize:        team.SlotSize,
		OverrideSeconds: team.OverrideSeconds,
		BalanceTiers:    team.BalanceTiers,
	})
	if err != nil {
		if errors.Is(err, rotation.ErrInvalidConfig) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	record, err := h.store.ReplaceSchedule(ctx, team.ID, sched)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// A new schedule resets playback and stale cached views, then tells
	// the team's subscribers.
	h.playback.Configure(team.ID, sched.TotalSeconds())
	mw.Invalidate(h.cache, fmt.Sprintf("/api/teams/%d/", team.ID))
	h.workers.Dispatch(team.ID)

	c.JSON(http.StatusCreated, scheduleResponseFrom(record, sched))
}

// GetSchedule handles the GET /api/teams/{team_id}/schedule request. With
// the `at` query parameter it instead returns the slot covering that
// elapsed game time.
func (h *Handler) GetSchedule(c *gin.Context) {
	team, ok := h.teamFromPath(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	record, err := h.store.LatestSchedule(ctx, team.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no schedule generated yet"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if atParam := c.Query("at"); atParam != "" {
		at, err := strconv.Atoi(atParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' value. Use elapsed seconds."})
			return
		}
		h.respondSlotAt(c, record, at)
		return
	}

	slots, err := h.store.ScheduleSlots(ctx, record.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp, err := storedScheduleResponse(record, slots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondSlotAt resolves the slot covering the given elapsed time. The
// remaining-in-slot figure is clamped at zero: right around a period
// rollover the caller's elapsed value can sit on the boundary and the
// subtraction must never surface as a negative countdown.
func (h *Handler) respondSlotAt(c *gin.Context, record model.ScheduleRecord, at int) {
	slot, err := h.store.SlotAt(c.Request.Context(), record.ID, at)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no slot covers this time"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	view, err := slotViewFrom(slot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	remaining := slot.EndsAt - at
	if remaining < 0 {
		remaining = 0
	}
	c.JSON(http.StatusOK, gin.H{
		"slot":             view,
		"elapsed":          at,
		"remainingInSlot":  remaining,
		"remainingDisplay": rotation.FormatSeconds(remaining),
	})
}

func scheduleResponseFrom(record model.ScheduleRecord, sched *rotation.Schedule) scheduleResponse {
	views := make([]slotView, 0, len(sched.Slots))
	for _, slot := range sched.Slots {
		views = append(views, slotView{
			Period:       slot.Period,
			Index:        slot.Index,
			StartsAt:     slot.StartsAt,
			EndsAt:       slot.EndsAt,
			StartDisplay: rotation.FormatSeconds(slot.StartsAt),
			EndDisplay:   rotation.FormatSeconds(slot.EndsAt),
			Occupants:    slot.Occupants,
			HighCount:    slot.HighCount,
			LowCount:     slot.LowCount,
		})
	}
	return scheduleResponse{
		ID:             record.ID,
		GeneratedAt:    record.GeneratedAt,
		Periods:        record.Periods,
		PeriodSeconds:  record.PeriodSeconds,
		SlotSize:       record.SlotSize,
		BalanceTiers:   record.BalanceTiers,
		SlotSeconds:    record.SlotSeconds,
		SlotDisplay:    rotation.FormatSeconds(record.SlotSeconds),
		Advised:        record.Advised,
		TotalSeconds:   record.Periods * record.PeriodSeconds,
		TargetSeconds:  record.TargetSeconds,
		AverageSeconds: record.AverageSeconds,
		MaxSpread:      record.MaxSpread,
		Slots:          views,
		Stats:          sched.Stats,
	}
}

func storedScheduleResponse(record model.ScheduleRecord, slots []model.SlotRecord) (scheduleResponse, error) {
	var stats []rotation.Stats
	if err := json.Unmarshal(record.StatsPayload, &stats); err != nil {
		return scheduleResponse{}, fmt.Errorf("corrupt stats payload for schedule %s: %w", record.ID, err)
	}

	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		view, err := slotViewFrom(slot)
		if err != nil {
			return scheduleResponse{}, err
		}
		views = append(views, view)
	}

	return scheduleResponse{
		ID:             record.ID,
		GeneratedAt:    record.GeneratedAt,
		Periods:        record.Periods,
		PeriodSeconds:  record.PeriodSeconds,
		SlotSize:       record.SlotSize,
		BalanceTiers:   record.BalanceTiers,
		SlotSeconds:    record.SlotSeconds,
		SlotDisplay:    rotation.FormatSeconds(record.SlotSeconds),
		Advised:        record.Advised,
		TotalSeconds:   record.Periods * record.PeriodSeconds,
		TargetSeconds:  record.TargetSeconds,
		AverageSeconds: record.AverageSeconds,
		MaxSpread:      record.MaxSpread,
		Slots:          views,
		Stats:          stats,
	}, nil
}

func slotViewFrom(slot model.SlotRecord) (slotView, error) {
	var occupants []rotation.Participant
	if err := json.Unmarshal(slot.OccupantsPayload, &occupants); err != nil {
		return slotView{}, fmt.Errorf("corrupt occupants payload for slot %d: %w", slot.ID, err)
	}
	return slotView{
		Period:       slot.Period,
		Index:        slot.SlotIndex,
		StartsAt:     slot.StartsAt,
		EndsAt:       slot.EndsAt,
		StartDisplay: rotation.FormatSeconds(slot.StartsAt),
		EndDisplay:   rotation.FormatSeconds(slot.EndsAt),
		Occupants:    occupants,
		HighCount:    slot.HighCount,
		LowCount:     slot.LowCount,
	}, nil
}
