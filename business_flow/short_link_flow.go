package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"gorm.io/gorm"
)

// uidRetryLimit bounds generation attempts when a random identifier collides
const uidRetryLimit = 5

// ShortLinkFlow provides the use cases of the alias registry: creating,
// listing, and deleting short links, and reading their click analytics.
// Deletion cascades over click events inside one transaction, so a deleted
// link can never leave orphaned analytics behind.
type ShortLinkFlow interface {
	Create(ctx context.Context, customerID uint, req *dto.CreateShortLinkRequest) (*dto.ShortLinkDTO, error)
	List(ctx context.Context, customerID uint) (*dto.ListShortLinksResponse, error)
	Delete(ctx context.Context, customerID uint, uid string) error
	ClickInfo(ctx context.Context, uid string) (*dto.ClickInfoResponse, error)
}

type ShortLinkFlowImpl struct {
	linkRepo   repository.ShortLinkRepository
	clickRepo  repository.ShortLinkClickRepository
	db         *gorm.DB
	baseURL    string
	defaultTTL time.Duration
	uidLength  int
}

func NewShortLinkFlow(
	linkRepo repository.ShortLinkRepository,
	clickRepo repository.ShortLinkClickRepository,
	db *gorm.DB,
	baseURL string,
	defaultTTL time.Duration,
	uidLength int,
) ShortLinkFlow {
	if defaultTTL <= 0 {
		defaultTTL = utils.DefaultLinkTTL
	}
	if uidLength <= 0 {
		uidLength = utils.DefaultUIDLength
	}
	return &ShortLinkFlowImpl{
		linkRepo:   linkRepo,
		clickRepo:  clickRepo,
		db:         db,
		baseURL:    baseURL,
		defaultTTL: defaultTTL,
		uidLength:  uidLength,
	}
}

func (f *ShortLinkFlowImpl) Create(ctx context.Context, customerID uint, req *dto.CreateShortLinkRequest) (*dto.ShortLinkDTO, error) {
	expiresAt, err := f.resolveExpiry(req.ExpiresAt)
	if err != nil {
		return nil, NewBusinessError("VALIDATION_ERROR", "expires_at must be RFC3339", err)
	}

	if req.CustomAlias != "" {
		link, err := f.insert(ctx, customerID, req.LongLink, req.CustomAlias, expiresAt)
		if err != nil {
			return nil, err
		}
		d := ToShortLinkDTO(*link, f.baseURL)
		return &d, nil
	}

	// Generated identifiers may collide; retry with a fresh draw. The unique
	// index decides, the existence pre-check merely keeps the common case cheap.
	for attempt := 0; attempt < uidRetryLimit; attempt++ {
		uid, err := utils.GenerateUID(f.uidLength)
		if err != nil {
			return nil, NewBusinessError("UID_GENERATION_FAILED", "Failed to generate identifier", err)
		}
		link, err := f.insert(ctx, customerID, req.LongLink, uid, expiresAt)
		if IsAliasTaken(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		d := ToShortLinkDTO(*link, f.baseURL)
		return &d, nil
	}
	return nil, NewBusinessError("UID_GENERATION_FAILED", "Failed to find a free identifier", fmt.Errorf("exhausted %d attempts", uidRetryLimit))
}

func (f *ShortLinkFlowImpl) insert(ctx context.Context, customerID uint, longLink, uid string, expiresAt time.Time) (*models.ShortLink, error) {
	exists, err := f.linkRepo.Exists(ctx, models.ShortLinkFilter{UID: &uid})
	if err != nil {
		return nil, NewBusinessError("SHORT_LINK_LOOKUP_FAILED", "Failed to check alias availability", err)
	}
	if exists {
		return nil, ErrAliasTaken
	}

	link := &models.ShortLink{
		UID:        uid,
		LongLink:   longLink,
		CustomerID: &customerID,
		Clicks:     0,
		ExpiresAt:  &expiresAt,
	}
	if err := f.linkRepo.Save(ctx, link); err != nil {
		// A concurrent creation can slip past the pre-check; the unique
		// index on uid reports it here.
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrAliasTaken
		}
		return nil, NewBusinessError("CREATE_SHORT_LINK_FAILED", "Failed to create short link", err)
	}
	return link, nil
}

func (f *ShortLinkFlowImpl) resolveExpiry(raw string) (time.Time, error) {
	if raw == "" {
		return utils.UTCNowAdd(f.defaultTTL), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// List returns every link owned by the customer. An empty result is a valid
// answer, not an error.
func (f *ShortLinkFlowImpl) List(ctx context.Context, customerID uint) (*dto.ListShortLinksResponse, error) {
	rows, err := f.linkRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("LIST_SHORT_LINKS_FAILED", "Failed to list short links", err)
	}
	resp := &dto.ListShortLinksResponse{
		Links: make([]dto.ShortLinkDTO, 0, len(rows)),
		Total: len(rows),
	}
	for _, row := range rows {
		resp.Links = append(resp.Links, ToShortLinkDTO(*row, f.baseURL))
	}
	return resp, nil
}

// Delete removes a link and all of its click events. The click events go
// first, then the record, both inside one transaction.
func (f *ShortLinkFlowImpl) Delete(ctx context.Context, customerID uint, uid string) error {
	row, err := f.linkRepo.ByUID(ctx, uid)
	if err != nil {
		return NewBusinessError("SHORT_LINK_LOOKUP_FAILED", "Failed to lookup short link", err)
	}
	if row == nil {
		return ErrShortLinkNotFound
	}
	if row.CustomerID == nil || *row.CustomerID != customerID {
		return ErrNotLinkOwner
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clickRepo.DeleteByUID(txCtx, uid); err != nil {
			return err
		}
		return f.linkRepo.DeleteByUID(txCtx, uid)
	})
	if err != nil {
		return NewBusinessError("DELETE_SHORT_LINK_FAILED", "Failed to delete short link", err)
	}
	return nil
}

func (f *ShortLinkFlowImpl) ClickInfo(ctx context.Context, uid string) (*dto.ClickInfoResponse, error) {
	row, err := f.linkRepo.ByUID(ctx, uid)
	if err != nil {
		return nil, NewBusinessError("SHORT_LINK_LOOKUP_FAILED", "Failed to lookup short link", err)
	}
	if row == nil {
		return nil, ErrShortLinkNotFound
	}

	clicks, err := f.clickRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, NewBusinessError("CLICK_LOOKUP_FAILED", "Failed to load click events", err)
	}
	if len(clicks) == 0 {
		return nil, ErrNoClicksRecorded
	}

	resp := &dto.ClickInfoResponse{
		Link:   ToShortLinkDTO(*row, f.baseURL),
		Clicks: make([]dto.ClickEventDTO, 0, len(clicks)),
	}
	for _, click := range clicks {
		resp.Clicks = append(resp.Clicks, ToClickEventDTO(*click))
	}
	return resp, nil
}
