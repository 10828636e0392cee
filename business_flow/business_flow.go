// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
)

// ClientMetadata holds client-related information extracted from the request
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// ClickEvent is the raw material for one click record. Handlers enqueue it
// on the analytics channel; the click workers classify and persist it after
// the redirect has already been answered.
type ClickEvent struct {
	UID       string
	UserAgent string
	IPAddress string
	Timestamp time.Time
}

// ToShortLinkDTO converts a short link model to its API representation
func ToShortLinkDTO(link models.ShortLink, baseURL string) dto.ShortLinkDTO {
	d := dto.ShortLinkDTO{
		UID:       link.UID,
		LongLink:  link.LongLink,
		ShortLink: baseURL + "/" + link.UID,
		Clicks:    link.Clicks,
		CreatedAt: link.CreatedAt.Format(time.RFC3339),
	}
	if link.ExpiresAt != nil {
		d.ExpiresAt = link.ExpiresAt.Format(time.RFC3339)
	}
	return d
}

// ToClickEventDTO converts a persisted click event to its API representation
func ToClickEventDTO(click models.ShortLinkClick) dto.ClickEventDTO {
	d := dto.ClickEventDTO{
		UID:        click.UID,
		Browser:    click.Browser,
		OS:         click.OS,
		DeviceType: click.DeviceType,
		Timestamp:  click.CreatedAt.Format(time.RFC3339),
	}
	if click.IP != nil {
		d.IP = *click.IP
	}
	return d
}
