package models

import "time"

// ShortLinkClick represents a single click event on a short link.
// UID is a lookup key, not a foreign key constraint: rows are removed in the
// same transaction that deletes their ShortLink, so an orphan can only exist
// inside that transaction window.
// Browser and OS carry classifier fallbacks; DeviceType never does: a click
// without a classifiable device is not persisted at all.
type ShortLinkClick struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UID        string  `gorm:"size:64;not null;index:idx_short_link_clicks_uid" json:"uid"`
	Browser    string  `gorm:"size:50;not null" json:"browser"`
	OS         string  `gorm:"size:50;not null" json:"os"`
	DeviceType string  `gorm:"size:20;not null" json:"device_type"`
	IP         *string `gorm:"size:64" json:"ip,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_short_link_clicks_created_at" json:"created_at"`
}

// TableName returns the table name for ShortLinkClick
func (ShortLinkClick) TableName() string { return "short_link_clicks" }

// ShortLinkClickFilter provides filter fields for repository queries
type ShortLinkClickFilter struct {
	UID           *string
	DeviceType    *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
