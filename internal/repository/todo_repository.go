package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todoapi/internal/model"
)

// TodoRepository defines todo persistence operations. Every lookup is scoped
// by the creator id; there is deliberately no way to reach another user's
// records through this interface.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Todo, error)
	FindByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*model.Todo, error)
	// DeleteByIDAndCreator removes the matching todo and returns the removed
	// record in a single transaction, so a concurrent delete cannot slip
	// between a separate find and delete.
	DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*model.Todo, error)
	// UpdateByIDAndCreator applies the given column updates and returns the
	// post-update record, again as one transaction.
	UpdateByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID, updates map[string]interface{}) (*model.Todo, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) FindByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND creator_id = ?", id, creatorID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) DeleteByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockedTodoQuery(tx, id, creatorID).First(&todo).Error; err != nil {
			return err
		}
		return ensureDeleted(tx.Where("id = ?", todo.ID).Delete(&model.Todo{}))
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) UpdateByIDAndCreator(ctx context.Context, id, creatorID uuid.UUID, updates map[string]interface{}) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockedTodoQuery(tx, id, creatorID).First(&todo).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Todo{}).Where("id = ?", todo.ID).Updates(updates).Error; err != nil {
			return err
		}
		// Re-read so the caller sees the post-update document.
		return tx.Where("id = ?", todo.ID).First(&todo).Error
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// lockedTodoQuery scopes a query to one creator's todo and takes a row lock
// so find-and-delete and find-and-update stay atomic under concurrent requests.
func lockedTodoQuery(tx *gorm.DB, id, creatorID uuid.UUID) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND creator_id = ?", id, creatorID)
}

// ensureDeleted treats a delete that matched no rows as a missing record.
func ensureDeleted(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
