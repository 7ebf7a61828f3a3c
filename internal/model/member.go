package model

import "time"

// Member is one roster entry. Names are unique within a team; the tier flag
// is editable until a schedule is generated from the roster.
type Member struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	TeamID    int64     `gorm:"uniqueIndex:idx_member_team_name;not null" json:"-"`
	Name      string    `gorm:"uniqueIndex:idx_member_team_name;size:128;not null" json:"name"`
	HighTier  bool      `gorm:"not null;default:false" json:"highTier"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Associations
	Team Team `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
