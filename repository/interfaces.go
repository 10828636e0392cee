// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CustomerRepository defines operations for customers
type CustomerRepository interface {
	Repository[models.Customer, models.CustomerFilter]
	ByEmail(ctx context.Context, email string) (*models.Customer, error)
	ByUUID(ctx context.Context, uuid uuid.UUID) (*models.Customer, error)
	UpdateLastLogin(ctx context.Context, customerID uint) error
	CountShortLinks(ctx context.Context, customerID uint) (int64, error)
}

// ShortLinkRepository defines operations for short links
type ShortLinkRepository interface {
	Repository[models.ShortLink, models.ShortLinkFilter]
	ByUID(ctx context.Context, uid string) (*models.ShortLink, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.ShortLink, error)
	IncrementClicksByUID(ctx context.Context, uid string) error
	DeleteByUID(ctx context.Context, uid string) error
}

// ShortLinkClickRepository defines operations for short link click events
type ShortLinkClickRepository interface {
	Repository[models.ShortLinkClick, models.ShortLinkClickFilter]
	ListByUID(ctx context.Context, uid string) ([]*models.ShortLinkClick, error)
	DeleteByUID(ctx context.Context, uid string) error
}
