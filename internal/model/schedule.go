package model

import "time"

// ScheduleRecord is the persisted header of a generated rotation schedule.
// A team holds at most one: regeneration replaces the whole record and its
// slot rows in a single transaction.
type ScheduleRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	TeamID      int64     `gorm:"uniqueIndex;not null"`
	GeneratedAt time.Time `gorm:"not null"`

	// Configuration frozen at generation time.
	Periods       int  `gorm:"not null"`
	PeriodSeconds int  `gorm:"not null"`
	SlotSize      int  `gorm:"not null"`
	BalanceTiers  bool `gorm:"not null"`
	SlotSeconds   int  `gorm:"not null"`
	Advised       bool `gorm:"not null"` // false when the slot duration was overridden

	// Aggregate statistics.
	TargetSeconds  float64 `gorm:"not null"`
	AverageSeconds float64 `gorm:"not null"`
	MaxSpread      int     `gorm:"not null"`

	// Per-participant statistics (rotation.Stats slice), serialized as JSON.
	StatsPayload []byte `gorm:"not null"`

	// Associations
	Team  Team         `gorm:"constraint:OnDelete:CASCADE"`
	Slots []SlotRecord `gorm:"foreignKey:ScheduleID"`
}

// SlotRecord is one slot assignment of a persisted schedule. Start/end are
// absolute seconds from game start; rows for a schedule are contiguous and
// non-overlapping, so a point-in-time lookup by StartsAt is well-defined.
type SlotRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ScheduleID string `gorm:"index;size:36;not null"`
	Period     int    `gorm:"not null"`
	SlotIndex  int    `gorm:"not null"`
	StartsAt   int    `gorm:"not null;index"`
	EndsAt     int    `gorm:"not null"`
	HighCount  int    `gorm:"not null"`
	LowCount   int    `gorm:"not null"`

	// Occupants ([]rotation.Participant), serialized as JSON.
	OccupantsPayload []byte `gorm:"not null"`

	// Associations
	Schedule ScheduleRecord `gorm:"constraint:OnDelete:CASCADE"`
}
