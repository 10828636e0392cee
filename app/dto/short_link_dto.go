package dto

// CreateShortLinkRequest defines input for shortening a URL.
// CustomAlias is used verbatim when present; charset and length are enforced
// by the alias validator, nothing is normalized.
// ExpiresAt is RFC3339; when absent the default TTL applies.
type CreateShortLinkRequest struct {
	LongLink    string `json:"long_link" validate:"required,max=2048"`
	CustomAlias string `json:"custom_alias,omitempty" validate:"omitempty,alias"`
	ExpiresAt   string `json:"expires_at,omitempty" validate:"omitempty"`
}

// ShortLinkDTO is the API representation of one short link
type ShortLinkDTO struct {
	UID       string `json:"uid"`
	LongLink  string `json:"long_link"`
	ShortLink string `json:"short_link"`
	Clicks    int64  `json:"clicks"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// ListShortLinksResponse wraps a customer's links
type ListShortLinksResponse struct {
	Links []ShortLinkDTO `json:"links"`
	Total int            `json:"total"`
}

// ClickEventDTO is the API representation of one recorded click
type ClickEventDTO struct {
	UID        string `json:"uid"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"device_type"`
	IP         string `json:"ip,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// ClickInfoResponse combines a short link with its recorded clicks
type ClickInfoResponse struct {
	Link   ShortLinkDTO    `json:"link"`
	Clicks []ClickEventDTO `json:"clicks"`
}
