package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/Yatagarasu/models"
	"gorm.io/gorm"
)

// ShortLinkClickRepositoryImpl implements ShortLinkClickRepository
type ShortLinkClickRepositoryImpl struct {
	*BaseRepository[models.ShortLinkClick, models.ShortLinkClickFilter]
}

func NewShortLinkClickRepository(db *gorm.DB) ShortLinkClickRepository {
	return &ShortLinkClickRepositoryImpl{BaseRepository: NewBaseRepository[models.ShortLinkClick, models.ShortLinkClickFilter](db)}
}

func (r *ShortLinkClickRepositoryImpl) ByID(ctx context.Context, id uint) (*models.ShortLinkClick, error) {
	db := r.getDB(ctx)
	var row models.ShortLinkClick
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ShortLinkClickRepositoryImpl) applyFilter(db *gorm.DB, f models.ShortLinkClickFilter) *gorm.DB {
	if f.UID != nil {
		db = db.Where("uid = ?", *f.UID)
	}
	if f.DeviceType != nil {
		db = db.Where("device_type = ?", *f.DeviceType)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *ShortLinkClickRepositoryImpl) ByFilter(ctx context.Context, filter models.ShortLinkClickFilter, orderBy string, limit, offset int) ([]*models.ShortLinkClick, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortLinkClick{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ShortLinkClick
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ShortLinkClickRepositoryImpl) Count(ctx context.Context, filter models.ShortLinkClickFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortLinkClick{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ShortLinkClickRepositoryImpl) Exists(ctx context.Context, filter models.ShortLinkClickFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ShortLinkClickRepositoryImpl) ListByUID(ctx context.Context, uid string) ([]*models.ShortLinkClick, error) {
	return r.ByFilter(ctx, models.ShortLinkClickFilter{UID: &uid}, "created_at ASC", 0, 0)
}

// DeleteByUID removes every click event recorded for the given identifier.
// Deleting zero rows is fine: a link may never have been visited.
func (r *ShortLinkClickRepositoryImpl) DeleteByUID(ctx context.Context, uid string) error {
	db := r.getDB(ctx)
	if err := db.Where("uid = ?", uid).Delete(&models.ShortLinkClick{}).Error; err != nil {
		return fmt.Errorf("failed to delete click events for uid %s: %w", uid, err)
	}
	return nil
}
