package repository

import (
	"math"

	"gorm.io/gorm"
)

// Entity is implemented by every persisted model so the generic repository
// can order and identify rows without runtime attribute lookup.
type Entity interface {
	PrimaryKey() uint
	DefaultOrdering() string
}

// Meta is the pagination metadata returned alongside every list.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// Repository implements CRUD and pagination over a single entity type.
// Constraint violations propagate raw; translation to API errors happens
// once at the HTTP boundary.
type Repository[T Entity] struct {
	db *gorm.DB
}

func NewRepository[T Entity](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for entity-specific queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// GetByID returns an entity by primary key. Absence surfaces as
// gorm.ErrRecordNotFound for the caller to translate.
func (r *Repository[T]) GetByID(id uint) (*T, error) {
	var entity T
	if err := r.db.First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns one page of entities in the entity's default ordering.
func (r *Repository[T]) List(page, perPage int) ([]T, Meta, error) {
	var entity T
	return r.Paginate(r.db.Model(&entity), entity.DefaultOrdering(), page, perPage)
}

// Paginate executes the filtered query twice: an order-independent count and
// the ordered page itself, both sharing the same predicate.
func (r *Repository[T]) Paginate(query *gorm.DB, ordering string, page, perPage int) ([]T, Meta, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}

	items := make([]T, 0, perPage)
	offset := (page - 1) * perPage
	err := query.Session(&gorm.Session{}).
		Order(ordering).
		Offset(offset).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, Meta{}, err
	}

	pages := 0
	if perPage > 0 {
		pages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	meta := Meta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}
	return items, meta, nil
}

// Create persists a new entity inside its own transaction.
func (r *Repository[T]) Create(entity *T) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(entity).Error
	})
}

// Update applies only the supplied columns and returns the refreshed entity.
func (r *Repository[T]) Update(entity *T, updates map[string]any) (*T, error) {
	if len(updates) > 0 {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			return tx.Model(entity).Updates(updates).Error
		})
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID((*entity).PrimaryKey())
}

// Delete removes an entity by id, propagating gorm.ErrRecordNotFound when it
// does not exist.
func (r *Repository[T]) Delete(id uint) error {
	entity, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(entity).Error
	})
}
