package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/mileusna/useragent"
)

// ClickRecorder turns a raw ClickEvent into a persisted ShortLinkClick.
// It is invoked from the analytics workers only: a failure here is logged by
// the worker and swallowed, it never reaches the visitor.
type ClickRecorder interface {
	Record(ctx context.Context, event ClickEvent) error
}

type ClickRecorderImpl struct {
	clickRepo repository.ShortLinkClickRepository
}

func NewClickRecorder(clickRepo repository.ShortLinkClickRepository) ClickRecorder {
	return &ClickRecorderImpl{clickRepo: clickRepo}
}

func (r *ClickRecorderImpl) Record(ctx context.Context, event ClickEvent) error {
	browser, os, device, err := ClassifyUserAgent(event.UserAgent)
	if err != nil {
		return err
	}

	click := &models.ShortLinkClick{
		UID:        event.UID,
		Browser:    browser,
		OS:         os,
		DeviceType: device,
		CreatedAt:  event.Timestamp,
	}
	if event.IPAddress != "" {
		click.IP = utils.ToPtr(event.IPAddress)
	}

	if err := r.clickRepo.Save(ctx, click); err != nil {
		return NewBusinessError("CLICK_PERSIST_FAILED", "Failed to persist click event", err)
	}
	return nil
}

// ClassifyUserAgent derives browser, OS, and device type from the declared
// user agent. Browser and OS fall back to fixed defaults when the classifier
// comes up empty; device type has no fallback and an unclassifiable device
// makes the whole click unrecordable.
func ClassifyUserAgent(rawUA string) (browser, os, device string, err error) {
	ua := useragent.Parse(rawUA)

	browser = strings.ToLower(ua.Name)
	if browser == "" {
		browser = utils.FallbackBrowser
	}
	os = strings.ToLower(ua.OS)
	if os == "" {
		os = utils.FallbackOS
	}

	switch {
	case ua.Mobile:
		device = utils.DeviceMobile
	case ua.Tablet:
		device = utils.DeviceTablet
	case ua.Desktop:
		device = utils.DeviceDesktop
	default:
		return "", "", "", ErrUnknownDeviceType
	}
	return browser, os, device, nil
}
