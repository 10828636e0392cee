package models

import "time"

// ShortLink represents one shortened link record.
// UID is the short unique token that maps to the original URL.
// CustomerID is the owning account; every authenticated creation path sets it.
// ExpiresAt is always populated on creation (caller value or the default TTL).
// Clicks is mutated only by the visit flow, through an atomic UPDATE.
type ShortLink struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UID        string     `gorm:"size:64;not null;uniqueIndex:uk_short_links_uid" json:"uid"`
	LongLink   string     `gorm:"type:text;not null" json:"long_link"`
	CustomerID *uint      `gorm:"index:idx_short_links_customer_id" json:"customer_id,omitempty"`
	Clicks     int64      `gorm:"not null;default:0" json:"clicks"`
	ExpiresAt  *time.Time `gorm:"index:idx_short_links_expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_short_links_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for ShortLink
func (ShortLink) TableName() string { return "short_links" }

// IsExpiredAt reports whether the link is past its expiry at the given instant
func (s *ShortLink) IsExpiredAt(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// ShortLinkFilter provides filter fields for repository queries
type ShortLinkFilter struct {
	ID            *uint
	UID           *string
	CustomerID    *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	ExpiresBefore *time.Time
}
