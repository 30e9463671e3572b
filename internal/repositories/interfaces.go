package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
)

// PropertyFilters narrows public listing queries. Zero values mean no filter.
type PropertyFilters struct {
	City         string
	PropertyType string
	SalesType    string
	MinValue     *float64
	MaxValue     *float64
	MinSize      *float64
	MaxSize      *float64
	IsPetAllowed *bool
}

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id string) (*models.Property, error)
	FindActiveByID(ctx context.Context, id string) (*models.Property, error)
	FindActiveWithFilters(ctx context.Context, filters PropertyFilters, offset, limit int) ([]models.Property, int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Property, error)
	FindByOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Property, int64, error)
	Update(ctx context.Context, property *models.Property) error
	Deactivate(ctx context.Context, id string) error
}

type VisitRepository interface {
	Create(ctx context.Context, visit *models.Visit) error
	FindByID(ctx context.Context, id string) (*models.Visit, error)
	Update(ctx context.Context, visit *models.Visit) error
	FindByUser(ctx context.Context, userID string, includeCompleted, includeCancelled bool, offset, limit int) ([]models.Visit, int64, error)
	FindUpcomingByUser(ctx context.Context, userID string, after time.Time, offset, limit int) ([]models.Visit, int64, error)
	FindByProperty(ctx context.Context, propertyID string, offset, limit int) ([]models.Visit, int64, error)
	FindByPropertyOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Visit, int64, error)
	ExistsPending(ctx context.Context, userID, propertyID string) (bool, error)
	ExistsForUserAndOwner(ctx context.Context, userID, ownerID string) (bool, error)
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	FindByID(ctx context.Context, id string) (*models.Proposal, error)
	Update(ctx context.Context, proposal *models.Proposal) error
	FindByUser(ctx context.Context, userID string, offset, limit int) ([]models.Proposal, int64, error)
	FindByProperty(ctx context.Context, propertyID string, offset, limit int) ([]models.Proposal, int64, error)
	FindByPropertyOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Proposal, int64, error)
	ExistsPending(ctx context.Context, userID, propertyID string) (bool, error)
	ExistsForUserAndOwner(ctx context.Context, userID, ownerID string) (bool, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, propertyID string) error
	FindByUser(ctx context.Context, userID string, offset, limit int) ([]models.Favorite, int64, error)
	Exists(ctx context.Context, userID, propertyID string) (bool, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PropertyImage) error
	FindByID(ctx context.Context, propertyID, imageID string) (*models.PropertyImage, error)
	FindMetaByProperty(ctx context.Context, propertyID string) ([]models.PropertyImage, error)
	CountByProperty(ctx context.Context, propertyID string) (int64, error)
	NextDisplayOrder(ctx context.Context, propertyID string) (int, error)
	SetPrimary(ctx context.Context, propertyID, imageID string) error
	Delete(ctx context.Context, propertyID, imageID string) error
}

// CachedList is a stored listing page: the ordered property ids plus the
// total match count the page was cut from.
type CachedList struct {
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
}

// PropertyCache is the read-through cache for property lookups and public
// listing pages. A (nil, nil) return means cache miss.
type PropertyCache interface {
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	SetProperty(ctx context.Context, property *models.Property, expiration time.Duration) error
	GetList(ctx context.Context, key string) (*CachedList, error)
	SetList(ctx context.Context, key string, list *CachedList, expiration time.Duration) error
	InvalidateProperty(ctx context.Context, propertyID string) error
}
