package businessflow

import (
	"context"

	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
)

// ShortLinkVisitFlow resolves a short link for redirection.
// The expiry check runs against the same read as the lookup, the click
// counter is bumped with a single atomic UPDATE, and only then is the target
// URL handed back. Click event recording is not this flow's concern; it runs
// on the analytics pipeline and never blocks or fails a visit.
// Public flow, no authentication required.
type ShortLinkVisitFlow interface {
	Visit(ctx context.Context, uid string) (string, error)
}

type ShortLinkVisitFlowImpl struct {
	repo repository.ShortLinkRepository
}

func NewShortLinkVisitFlow(repo repository.ShortLinkRepository) ShortLinkVisitFlow {
	return &ShortLinkVisitFlowImpl{repo: repo}
}

func (f *ShortLinkVisitFlowImpl) Visit(ctx context.Context, uid string) (string, error) {
	row, err := f.repo.ByUID(ctx, uid)
	if err != nil {
		return "", NewBusinessError("SHORT_LINK_LOOKUP_FAILED", "Failed to lookup short link", err)
	}
	if row == nil {
		return "", ErrShortLinkNotFound
	}
	if row.IsExpiredAt(utils.UTCNow()) {
		return "", ErrShortLinkExpired
	}
	if err := f.repo.IncrementClicksByUID(ctx, uid); err != nil {
		return "", NewBusinessError("SHORT_LINK_TRACK_FAILED", "Failed to count short link visit", err)
	}
	return row.LongLink, nil
}
