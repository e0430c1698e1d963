package posgrest

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// repository is a generic GORM-based repository implementation.
// Rows are never deleted: payments and their phase records are append-only.
type repository[T interface{}] struct {
	db *gorm.DB
}

// New creates a new generic repository instance for type T.
// The repository uses the provided GORM database connection for all operations.
func New[T interface{}](db *gorm.DB) *repository[T] {
	return &repository[T]{
		db,
	}
}

// Create inserts a new entity into the database.
func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// GetByID retrieves a single entity by its ID. A missing row is nil, nil.
func (r *repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.FirstBy(ctx, "id = ?", id)
}

// FirstBy retrieves the first entity matching the condition. A missing row is nil, nil.
func (r *repository[T]) FirstBy(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetBy retrieves entities matching a specific field value, oldest first.
// The key parameter is the condition, and value is the value to match.
func (r *repository[T]) GetBy(ctx context.Context, key string, value interface{}) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where(key, value).Order("created_at").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// UpdateColumns updates the given columns of the entity identified by ID.
func (r *repository[T]) UpdateColumns(ctx context.Context, id string, columns map[string]interface{}) error {
	var entity T
	return r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(columns).Error
}

// UpdateSelected writes the named columns of entity, keyed by its primary key.
// Going through the struct keeps field serializers in effect.
func (r *repository[T]) UpdateSelected(ctx context.Context, entity *T, columns ...string) error {
	return r.db.WithContext(ctx).Model(entity).Select(columns).Updates(entity).Error
}
