package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lineup-rotation-backend/internal/model"
	"lineup-rotation-backend/internal/rotation"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateTeam(ctx context.Context, team model.Team) (model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	UpdateTeamSettings(ctx context.Context, team model.Team) error

	AddMember(ctx context.Context, teamID int64, name string) error
	AddMembers(ctx context.Context, teamID int64, names []string) error
	RemoveMember(ctx context.Context, teamID int64, name string) error
	ToggleMemberTier(ctx context.Context, teamID int64, name string) error
	ListMembers(ctx context.Context, teamID int64) ([]model.Member, error)

	ReplaceSchedule(ctx context.Context, teamID int64, sched *rotation.Schedule) (model.ScheduleRecord, error)
	LatestSchedule(ctx context.Context, teamID int64) (model.ScheduleRecord, error)
	ScheduleSlots(ctx context.Context, scheduleID string) ([]model.SlotRecord, error)
	SlotAt(ctx context.Context, scheduleID string, elapsed int) (model.SlotRecord, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) CreateTeam(ctx context.Context, team model.Team) (model.Team, error) {
	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		return model.Team{}, fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	return team, nil
}

func (s *gormStore) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	var team model.Team
	err := s.db.WithContext(ctx).First(&team, id).Error
	return team, err
}

func (s *gormStore) UpdateTeamSettings(ctx context.Context, team model.Team) error {
	return s.db.WithContext(ctx).Model(&model.Team{ID: team.ID}).
		Select("periods", "period_seconds", "slot_size", "override_seconds", "balance_tiers").
		Updates(map[string]any{
			"periods":          team.Periods,
			"period_seconds":   team.PeriodSeconds,
			"slot_size":        team.SlotSize,
			"override_seconds": team.OverrideSeconds,
			"balance_tiers":    team.BalanceTiers,
		}).Error
}

// AddMember inserts one roster entry. Empty names and duplicates are
// silently ignored so that roster editing stays forgiving.
func (s *gormStore) AddMember(ctx context.Context, teamID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	member := model.Member{TeamID: teamID, Name: name}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&member).Error
}

// AddMembers bulk-inserts roster entries with the same permissive
// semantics as AddMember.
func (s *gormStore) AddMembers(ctx context.Context, teamID int64, names []string) error {
	var members []model.Member
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		members = append(members, model.Member{TeamID: teamID, Name: name})
	}
	if len(members) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&members).Error
}

// RemoveMember deletes a roster entry by name. Removing a name that is not
// on the roster is not an error.
func (s *gormStore) RemoveMember(ctx context.Context, teamID int64, name string) error {
	return s.db.WithContext(ctx).
		Where("team_id = ? AND name = ?", teamID, name).
		Delete(&model.Member{}).Error
}

// ToggleMemberTier flips the high/low tier flag of one roster entry.
// Unknown names are silently ignored.
func (s *gormStore) ToggleMemberTier(ctx context.Context, teamID int64, name string) error {
	return s.db.WithContext(ctx).Model(&model.Member{}).
		Where("team_id = ? AND name = ?", teamID, name).
		Update("high_tier", gorm.Expr("NOT high_tier")).Error
}

func (s *gormStore) ListMembers(ctx context.Context, teamID int64) ([]model.Member, error) {
	var members []model.Member
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

// ReplaceSchedule atomically swaps a team's persisted schedule for the given
// one: the previous header and slot rows are removed and the new ones
// inserted inside a single transaction, so readers never observe a partial
// schedule.
func (s *gormStore) ReplaceSchedule(ctx context.Context, teamID int64, sched *rotation.Schedule) (model.ScheduleRecord, error) {
	statsPayload, err := json.Marshal(sched.Stats)
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("failed to marshal participant stats: %w", err)
	}

	record := model.ScheduleRecord{
		ID:             uuid.NewString(),
		TeamID:         teamID,
		GeneratedAt:    time.Now().UTC(),
		Periods:        sched.Config.Periods,
		PeriodSeconds:  sched.Config.PeriodSeconds,
		SlotSize:       sched.Config.SlotSize,
		BalanceTiers:   sched.Config.BalanceTiers,
		SlotSeconds:    sched.SlotSeconds,
		Advised:        sched.Advised,
		TargetSeconds:  sched.TargetSeconds,
		AverageSeconds: sched.AverageSeconds,
		MaxSpread:      sched.MaxSpread,
		StatsPayload:   statsPayload,
	}

	slots := make([]model.SlotRecord, 0, len(sched.Slots))
	for _, slot := range sched.Slots {
		occupants, err := json.Marshal(slot.Occupants)
		if err != nil {
			return model.ScheduleRecord{}, fmt.Errorf("failed to marshal slot occupants: %w", err)
		}
		slots = append(slots, model.SlotRecord{
			ScheduleID:       record.ID,
			Period:           slot.Period,
			SlotIndex:        slot.Index,
			StartsAt:         slot.StartsAt,
			EndsAt:           slot.EndsAt,
			HighCount:        slot.HighCount,
			LowCount:         slot.LowCount,
			OccupantsPayload: occupants,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var previous []model.ScheduleRecord
		if err := tx.Where("team_id = ?", teamID).Find(&previous).Error; err != nil {
			return fmt.Errorf("failed to look up previous schedule: %w", err)
		}
		for _, old := range previous {
			if err := tx.Where("schedule_id = ?", old.ID).Delete(&model.SlotRecord{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous slot rows: %w", err)
			}
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&model.ScheduleRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete previous schedule: %w", err)
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create schedule record: %w", err)
		}
		if err := tx.Create(&slots).Error; err != nil {
			return fmt.Errorf("failed to create slot records: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.ScheduleRecord{}, err
	}
	return record, nil
}

func (s *gormStore) LatestSchedule(ctx context.Context, teamID int64) (model.ScheduleRecord, error) {
	var record model.ScheduleRecord
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&record).Error
	return record, err
}

func (s *gormStore) ScheduleSlots(ctx context.Context, scheduleID string) ([]model.SlotRecord, error) {
	var slots []model.SlotRecord
	err := s.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("starts_at ASC").
		Find(&slots).Error
	return slots, err
}

// SlotAt returns the slot covering the given elapsed game time. Slot rows
// are contiguous and non-overlapping, so the latest row starting at or
// before the elapsed time is the covering one unless the time falls past
// the end of the game.
func (s *gormStore) SlotAt(ctx context.Context, scheduleID string, elapsed int) (model.SlotRecord, error) {
	var slot model.SlotRecord
	err := s.db.WithContext(ctx).
		Where("schedule_id = ? AND starts_at <= ?", scheduleID, elapsed).
		Order("starts_at DESC").
		First(&slot).Error
	if err != nil {
		return model.SlotRecord{}, err
	}
	if elapsed >= slot.EndsAt {
		return model.SlotRecord{}, gorm.ErrRecordNotFound
	}
	return slot, nil
}
