package model

import "time"

// Team is a coached group of players plus the game settings used when a
// rotation schedule is generated for it.
type Team struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Game settings. UI steps keep PeriodSeconds a multiple of 60 with a
	// floor of 60; Periods and SlotSize floor at 1. OverrideSeconds of 0
	// means "use the advisor's recommendation".
	Periods         int  `gorm:"not null;default:2" json:"periods"`
	PeriodSeconds   int  `gorm:"not null;default:1200" json:"periodSeconds"`
	SlotSize        int  `gorm:"not null;default:5" json:"slotSize"`
	OverrideSeconds int  `gorm:"not null;default:0" json:"overrideSeconds"`
	BalanceTiers    bool `gorm:"not null;default:false" json:"balanceTiers"`

	// Associations
	Members []Member `gorm:"foreignKey:TeamID" json:"-"`
}
