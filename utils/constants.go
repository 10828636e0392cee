package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Short link constants
const (
	// DefaultLinkTTL is applied when a creation request carries no expiry (3 days)
	DefaultLinkTTL = 3 * 24 * time.Hour

	// DefaultUIDLength is the length of generated short link identifiers
	DefaultUIDLength = 8

	// MaxAliasLength bounds caller-supplied custom aliases
	MaxAliasLength = 64
)

// Click classification fallbacks. Device type has none: a click whose
// device cannot be classified is not recorded.
const (
	FallbackBrowser = "chrome"
	FallbackOS      = "windows"

	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
