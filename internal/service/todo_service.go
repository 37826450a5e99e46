package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
	"github.com/Tomlord1122/todo-expert/internal/repository"
	"github.com/Tomlord1122/todo-expert/internal/weather"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// --- Service Interface ---

// TodoService defines the operations for managing todos.
type TodoService interface {
	// SaveTodo creates a todo owned by the caller, stamped with today's
	// weather.
	SaveTodo(ctx context.Context, identity domain.AuthIdentity, req TodoSaveRequest) (*TodoSaveResponse, error)

	// GetTodos returns one page of todos, most recently modified first.
	// page is 1-indexed.
	GetTodos(ctx context.Context, page, size int) (*TodoPage, error)

	// GetTodo retrieves a single todo with its owner.
	GetTodo(ctx context.Context, id uint) (*TodoResponse, error)
}

// --- Service Implementation ---

type todoService struct {
	store           repository.Store
	weather         weather.Provider
	fallbackWeather string
}

// NewTodoService creates a TodoService. fallbackWeather is stored when the
// weather provider cannot answer.
func NewTodoService(store repository.Store, provider weather.Provider, fallbackWeather string) TodoService {
	return &todoService{
		store:           store,
		weather:         provider,
		fallbackWeather: fallbackWeather,
	}
}

// --- Method Implementations ---

func (s *todoService) SaveTodo(ctx context.Context, identity domain.AuthIdentity, req TodoSaveRequest) (*TodoSaveResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.InvalidRequest(msgTitleRequired)
	}
	if strings.TrimSpace(req.Contents) == "" {
		return nil, apperror.InvalidRequest(msgContentsRequired)
	}

	// Fetched before the transaction so no connection is held during the
	// outbound call.
	todayWeather := s.todayWeather(ctx)

	var todo *domain.Todo
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		owner, err := findUser(tx, identity.ID)
		if err != nil {
			return err
		}
		todo = domain.NewTodo(req.Title, req.Contents, todayWeather, *owner)
		if err := tx.Todos().Create(todo); err != nil {
			return fmt.Errorf("create todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TodoSaveResponse{
		ID:       todo.ID,
		Title:    todo.Title,
		Contents: todo.Contents,
		Weather:  todo.Weather,
		User:     toUserResponse(todo.User),
	}, nil
}

func (s *todoService) todayWeather(ctx context.Context) string {
	if s.weather == nil {
		return s.fallbackWeather
	}
	w, err := s.weather.TodayWeather(ctx)
	if err != nil {
		log.Printf("Weather lookup failed, storing %q instead: %v", s.fallbackWeather, err)
		return s.fallbackWeather
	}
	return w
}

func (s *todoService) GetTodos(ctx context.Context, page, size int) (*TodoPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	var (
		todos []domain.Todo
		total int64
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		todos, total, err = tx.Todos().FindPage(pageOffset(page, size), size)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	content := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		content = append(content, toTodoResponse(todo))
	}

	return &TodoPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// pageOffset converts a 1-indexed page to a row offset, saturating at
// math.MaxInt instead of overflowing.
func pageOffset(page, size int) int {
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

func (s *todoService) GetTodo(ctx context.Context, id uint) (*TodoResponse, error) {
	var todo *domain.Todo
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		todo, err = tx.Todos().FindByIDWithUser(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.InvalidRequest(msgTodoNotFound)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toTodoResponse(*todo)
	return &response, nil
}
