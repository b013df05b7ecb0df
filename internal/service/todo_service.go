package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapi/internal/cache"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const todoListCacheTTL = time.Minute

// TodoService exposes owner-scoped todo operations. Id parameters arrive as
// raw path strings; a structurally invalid id is reported as not-found, the
// same outcome as a miss.
type TodoService interface {
	Create(ctx context.Context, creatorID uuid.UUID, text string) (*model.Todo, error)
	List(ctx context.Context, creatorID uuid.UUID) ([]model.Todo, error)
	Get(ctx context.Context, creatorID uuid.UUID, id string) (*model.Todo, error)
	Delete(ctx context.Context, creatorID uuid.UUID, id string) (*model.Todo, error)
	Update(ctx context.Context, creatorID uuid.UUID, id string, text *string, completed *bool) (*model.Todo, error)
}

type todoService struct {
	repo  repository.TodoRepository
	cache *cache.Client
}

// NewTodoService builds a TodoService with repository and cache.
func NewTodoService(repo repository.TodoRepository, cache *cache.Client) TodoService {
	return &todoService{repo: repo, cache: cache}
}

func (s *todoService) cacheKey(creatorID uuid.UUID) string {
	return fmt.Sprintf("todos:%s", creatorID)
}

func (s *todoService) Create(ctx context.Context, creatorID uuid.UUID, text string) (*model.Todo, error) {
	todo := &model.Todo{
		ID:        uuid.New(),
		Text:      text,
		CreatorID: creatorID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(creatorID))
	return todo, nil
}

func (s *todoService) List(ctx context.Context, creatorID uuid.UUID) ([]model.Todo, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(creatorID)); data != nil {
		var cached []model.Todo
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	todos, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(todos); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(creatorID), payload, todoListCacheTTL)
	}
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, creatorID uuid.UUID, id string) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}
	todo, err := s.repo.FindByIDAndCreator(ctx, todoID, creatorID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, creatorID uuid.UUID, id string) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}
	todo, err := s.repo.DeleteByIDAndCreator(ctx, todoID, creatorID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(creatorID))
	return todo, nil
}

// Update applies a partial change restricted to text and completed. The
// completed/completedAt pairing is derived here before the persistence call:
// completed=true stamps the current epoch millis, anything else forces the
// pair back to false/null.
func (s *todoService) Update(ctx context.Context, creatorID uuid.UUID, id string, text *string, completed *bool) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}

	updates := map[string]interface{}{}
	if text != nil {
		updates["text"] = *text
	}
	if completed != nil && *completed {
		updates["completed"] = true
		updates["completed_at"] = time.Now().UnixMilli()
	} else {
		updates["completed"] = false
		updates["completed_at"] = nil
	}

	todo, err := s.repo.UpdateByIDAndCreator(ctx, todoID, creatorID, updates)
	if err != nil {
		return nil, translateNotFound(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(creatorID))
	return todo, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTodoNotFound
	}
	return err
}
