package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-expert/internal/audit"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/service"
)

// HealthChecker reports storage health for /health.
type HealthChecker interface {
	Health() map[string]string
}

// Dependencies are the collaborators the HTTP layer dispatches to.
type Dependencies struct {
	AuthService         service.AuthService
	TodoService         service.TodoService
	ManagerService      service.ManagerService
	UserService         service.UserService
	UserAdminService    service.UserAdminService
	CommentAdminService service.CommentAdminService
	Resolver            *auth.Resolver
	Audit               audit.Recorder
	// Health may be nil when storage has nothing to report.
	Health HealthChecker
}

type Server struct {
	port int

	authService         service.AuthService
	todoService         service.TodoService
	managerService      service.ManagerService
	userService         service.UserService
	userAdminService    service.UserAdminService
	commentAdminService service.CommentAdminService

	resolver *auth.Resolver
	audit    audit.Recorder
	health   HealthChecker
	now      func() time.Time
}

func New(port int, deps Dependencies) *Server {
	recorder := deps.Audit
	if recorder == nil {
		recorder = audit.NewLogRecorder(nil)
	}
	return &Server{
		port:                port,
		authService:         deps.AuthService,
		todoService:         deps.TodoService,
		managerService:      deps.ManagerService,
		userService:         deps.UserService,
		userAdminService:    deps.UserAdminService,
		commentAdminService: deps.CommentAdminService,
		resolver:            deps.Resolver,
		audit:               recorder,
		health:              deps.Health,
		now:                 time.Now,
	}
}

// NewServer builds the *http.Server listening on port.
func NewServer(port int, deps Dependencies) *http.Server {
	appServer := New(port, deps)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
