package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Tomlord1122/todo-expert/internal/domain"

	"gorm.io/gorm"
)

// memoryStore keeps everything in process memory. A transaction holds the
// store lock for its whole duration and restores a snapshot when the
// callback fails. It backs STORAGE_DRIVER=memory and the tests.
type memoryStore struct {
	mu   sync.Mutex
	now  func() time.Time
	data *memoryData
}

type memoryData struct {
	users    map[uint]domain.User
	todos    map[uint]domain.Todo
	managers map[uint]domain.Manager
	comments map[uint]domain.Comment
	nextID   uint
}

func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock stamps CreatedAt/UpdatedAt from now.
func NewMemoryStoreWithClock(now func() time.Time) Store {
	return &memoryStore{
		now: now,
		data: &memoryData{
			users:    map[uint]domain.User{},
			todos:    map[uint]domain.Todo{},
			managers: map[uint]domain.Manager{},
			comments: map[uint]domain.Comment{},
		},
	}
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:    make(map[uint]domain.User, len(d.users)),
		todos:    make(map[uint]domain.Todo, len(d.todos)),
		managers: make(map[uint]domain.Manager, len(d.managers)),
		comments: make(map[uint]domain.Comment, len(d.comments)),
		nextID:   d.nextID,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.todos {
		c.todos[k] = v
	}
	for k, v := range d.managers {
		c.managers[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	return c
}

func (d *memoryData) id() uint {
	d.nextID++
	return d.nextID
}

// memoryTx is the Store handed to a transaction callback; the lock is
// already held.
type memoryTx struct {
	store *memoryStore
}

func (s *memoryStore) Users() UserRepository       { return memoryUsers{&memoryTx{store: s}} }
func (s *memoryStore) Todos() TodoRepository       { return memoryTodos{&memoryTx{store: s}} }
func (s *memoryStore) Managers() ManagerRepository { return memoryManagers{&memoryTx{store: s}} }
func (s *memoryStore) Comments() CommentRepository { return memoryComments{&memoryTx{store: s}} }

func (s *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(memoryTx{store: s}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (t memoryTx) Users() UserRepository       { return memoryUsers{&t} }
func (t memoryTx) Todos() TodoRepository       { return memoryTodos{&t} }
func (t memoryTx) Managers() ManagerRepository { return memoryManagers{&t} }
func (t memoryTx) Comments() CommentRepository { return memoryComments{&t} }

// Transaction inside a transaction joins the outer one.
func (t memoryTx) Transaction(_ context.Context, fn func(tx Store) error) error {
	return fn(t)
}

// users

type memoryUsers struct{ tx *memoryTx }

func (r memoryUsers) Create(user *domain.User) error {
	d := r.tx.store.data
	for _, u := range d.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	now := r.tx.store.now()
	user.ID = d.id()
	user.CreatedAt, user.UpdatedAt = now, now
	d.users[user.ID] = *user
	return nil
}

func (r memoryUsers) FindByID(id uint) (*domain.User, error) {
	u, ok := r.tx.store.data.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memoryUsers) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.tx.store.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memoryUsers) ExistsByEmail(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	return err == nil, nil
}

func (r memoryUsers) Update(user *domain.User) error {
	d := r.tx.store.data
	if _, ok := d.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, u := range d.users {
		if id != user.ID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UpdatedAt = r.tx.store.now()
	d.users[user.ID] = *user
	return nil
}

// todos

type memoryTodos struct{ tx *memoryTx }

func (r memoryTodos) Create(todo *domain.Todo) error {
	d := r.tx.store.data
	owner, ok := d.users[todo.UserID]
	if !ok {
		return gorm.ErrForeignKeyViolated
	}
	now := r.tx.store.now()
	todo.ID = d.id()
	todo.CreatedAt, todo.UpdatedAt = now, now
	todo.User = owner
	stored := *todo
	stored.User = domain.User{}
	d.todos[todo.ID] = stored
	return nil
}

func (r memoryTodos) FindByIDWithUser(id uint) (*domain.Todo, error) {
	d := r.tx.store.data
	todo, ok := d.todos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	todo.User = d.users[todo.UserID]
	return &todo, nil
}

func (r memoryTodos) FindPage(offset, limit int) ([]domain.Todo, int64, error) {
	d := r.tx.store.data
	all := make([]domain.Todo, 0, len(d.todos))
	for _, todo := range d.todos {
		todo.User = d.users[todo.UserID]
		all = append(all, todo)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	if offset < 0 || offset >= len(all) {
		return []domain.Todo{}, total, nil
	}
	end := offset + limit
	if limit < 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// managers

type memoryManagers struct{ tx *memoryTx }

func (r memoryManagers) Create(manager *domain.Manager) error {
	d := r.tx.store.data
	if _, ok := d.todos[manager.TodoID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	user, ok := d.users[manager.UserID]
	if !ok {
		return gorm.ErrForeignKeyViolated
	}
	for _, m := range d.managers {
		if m.TodoID == manager.TodoID && m.UserID == manager.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	now := r.tx.store.now()
	manager.ID = d.id()
	manager.CreatedAt, manager.UpdatedAt = now, now
	manager.User = user
	stored := *manager
	stored.User = domain.User{}
	stored.Todo = domain.Todo{}
	d.managers[manager.ID] = stored
	return nil
}

func (r memoryManagers) FindByID(id uint) (*domain.Manager, error) {
	d := r.tx.store.data
	m, ok := d.managers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.User = d.users[m.UserID]
	return &m, nil
}

func (r memoryManagers) FindAllByTodoID(todoID uint) ([]domain.Manager, error) {
	d := r.tx.store.data
	managers := []domain.Manager{}
	for _, m := range d.managers {
		if m.TodoID == todoID {
			m.User = d.users[m.UserID]
			managers = append(managers, m)
		}
	}
	sort.Slice(managers, func(i, j int) bool { return managers[i].ID < managers[j].ID })
	return managers, nil
}

func (r memoryManagers) ExistsByTodoIDAndUserID(todoID, userID uint) (bool, error) {
	for _, m := range r.tx.store.data.managers {
		if m.TodoID == todoID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryManagers) Delete(manager *domain.Manager) error {
	delete(r.tx.store.data.managers, manager.ID)
	return nil
}

// comments

type memoryComments struct{ tx *memoryTx }

func (r memoryComments) Create(comment *domain.Comment) error {
	d := r.tx.store.data
	if _, ok := d.todos[comment.TodoID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := d.users[comment.UserID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	now := r.tx.store.now()
	comment.ID = d.id()
	comment.CreatedAt, comment.UpdatedAt = now, now
	d.comments[comment.ID] = *comment
	return nil
}

func (r memoryComments) FindByID(id uint) (*domain.Comment, error) {
	c, ok := r.tx.store.data.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r memoryComments) DeleteByID(id uint) error {
	delete(r.tx.store.data.comments, id)
	return nil
}
