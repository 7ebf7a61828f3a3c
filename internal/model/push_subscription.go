package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscribers are notified when a new schedule is published for one of
// their teams.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Teams []*Team `gorm:"many2many:subscription_team_mapping;"`
}
