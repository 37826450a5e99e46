package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/todo-expert/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)

	r.Get("/health", s.healthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.signupHandler)
		r.Post("/signin", s.signinHandler)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.getTodosHandler)
		r.Get("/{todoId}", s.getTodoHandler)
		r.Get("/{todoId}/managers", s.getManagersHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/", s.saveTodoHandler)
			r.Post("/{todoId}/managers", s.saveManagerHandler)
			r.Delete("/{todoId}/managers/{managerId}", s.deleteManagerHandler)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{userId}", s.getUserHandler)
		r.With(s.authenticate).Put("/", s.changePasswordHandler)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Patch("/users/{userId}", s.adminOnly("changeUserRole", s.changeUserRoleHandler))
		r.Delete("/comments/{commentId}", s.adminOnly("deleteComment", s.deleteCommentHandler))
	})

	return r
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World from Todo Expert!"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "up", "message": "in-memory storage"})
		return
	}
	healthStats := s.health.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

// --- auth ---

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to sign up")
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Signin(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to sign in")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// --- todos ---

func (s *Server) saveTodoHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req service.TodoSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todoResp, err := s.todoService.SaveTodo(r.Context(), identity, req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create todo")
		return
	}
	respondWithJSON(w, http.StatusCreated, todoResp)
}

func (s *Server) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page", 1)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	size, ok := queryInt(r, "size", service.DefaultPageSize)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid size parameter")
		return
	}

	todos, err := s.todoService.GetTodos(r.Context(), page, size)
	if err != nil {
		respondWithServiceError(w, err, "Failed to retrieve todos")
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "todoId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return
	}

	todo, err := s.todoService.GetTodo(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, "Failed to retrieve todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

// --- managers ---

func (s *Server) saveManagerHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	todoID, ok := idParam(r, "todoId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return
	}

	var req service.ManagerSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.managerService.SaveManager(r.Context(), identity, todoID, req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to assign manager")
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

func (s *Server) getManagersHandler(w http.ResponseWriter, r *http.Request) {
	todoID, ok := idParam(r, "todoId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return
	}

	managers, err := s.managerService.GetManagers(r.Context(), todoID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to retrieve managers")
		return
	}
	respondWithJSON(w, http.StatusOK, managers)
}

func (s *Server) deleteManagerHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	todoID, ok := idParam(r, "todoId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid todo ID provided")
		return
	}
	managerID, ok := idParam(r, "managerId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid manager ID provided")
		return
	}

	if err := s.managerService.DeleteManager(r.Context(), identity, todoID, managerID); err != nil {
		respondWithServiceError(w, err, "Failed to remove manager")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- users ---

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to retrieve user")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.userService.ChangePassword(r.Context(), identity.ID, req); err != nil {
		respondWithServiceError(w, err, "Failed to change password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- admin ---

func (s *Server) changeUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(r, "userId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}

	var req service.UserRoleChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.userAdminService.ChangeUserRole(r.Context(), userID, req); err != nil {
		respondWithServiceError(w, err, "Failed to change user role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, ok := idParam(r, "commentId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid comment ID provided")
		return
	}

	if err := s.commentAdminService.DeleteComment(r.Context(), commentID); err != nil {
		respondWithServiceError(w, err, "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
