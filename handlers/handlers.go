package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmorenoc/TaskAgenda/auth"
	"github.com/dmorenoc/TaskAgenda/middleware"
	"github.com/dmorenoc/TaskAgenda/models"
	"github.com/dmorenoc/TaskAgenda/storage"
)

// Handlers holds the stores and the token issuer, allowing the handler
// methods to share them.
type Handlers struct {
	Users  *storage.UserStore
	Tasks  *storage.TaskStore
	Issuer *auth.Issuer
	Logger *log.Logger
}

// NewHandlers is a constructor for the Handlers struct.
func NewHandlers(users *storage.UserStore, tasks *storage.TaskStore, issuer *auth.Issuer, logger *log.Logger) *Handlers {
	return &Handlers{Users: users, Tasks: tasks, Issuer: issuer, Logger: logger}
}

// Routes builds the API router: open registration and login endpoints, plus
// the token-protected task endpoints.
func (h *Handlers) Routes() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.RegisterUser).Methods("POST")
	api.HandleFunc("/login", h.LoginUser).Methods("POST")

	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(middleware.Auth(h.Issuer, h.Logger))
	tasks.HandleFunc("", h.GetTasks).Methods("GET")
	tasks.HandleFunc("", h.CreateTask).Methods("POST")
	tasks.HandleFunc("/{id}", h.UpdateTask).Methods("PUT")
	tasks.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")

	return router
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// actingUser retrieves the verified username the auth middleware put in the
// request context.
func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := r.Context().Value(middleware.UserKey).(string)
	if !ok || username == "" {
		respondWithError(w, http.StatusUnauthorized, "Acceso denegado")
		return "", false
	}
	return username, true
}

// RegisterUser handles a new user registration.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.Logger.Debug("bad register payload", "err", err)
		respondWithError(w, http.StatusBadRequest, "Petición inválida")
		return
	}
	defer r.Body.Close()

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Usuario y contraseña son obligatorios")
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		h.Logger.Error("password hashing failed", "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error al registrar")
		return
	}

	if err := h.Users.Register(creds.Username, hash); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			respondWithError(w, http.StatusBadRequest, "El usuario ya existe")
			return
		}
		h.Logger.Error("register failed", "user", creds.Username, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error al registrar")
		return
	}

	h.Logger.Info("user registered", "user", creds.Username)
	respondWithJSON(w, http.StatusCreated, map[string]any{"success": true})
}

// LoginUser handles user authentication and returns a signed token.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.Logger.Debug("bad login payload", "err", err)
		respondWithError(w, http.StatusBadRequest, "Petición inválida")
		return
	}
	defer r.Body.Close()

	token, err := h.Issuer.Login(creds.Username, creds.Password)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		respondWithError(w, http.StatusBadRequest, "Usuario no encontrado")
		return
	case errors.Is(err, models.ErrInvalidCredentials):
		respondWithError(w, http.StatusBadRequest, "Contraseña incorrecta")
		return
	case err != nil:
		h.Logger.Error("login failed", "user", creds.Username, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error en el login")
		return
	}

	h.Logger.Info("login", "user", creds.Username)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    token,
		"username": creds.Username,
	})
}

// GetTasks returns the acting user's tasks. Ownership filtering happens
// here, at the service boundary; other users' rows never leave the server.
// Optional query parameters narrow the result: status matches exactly, q is
// a case-insensitive substring match on name and materia.
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	username, ok := actingUser(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	query := strings.ToLower(r.URL.Query().Get("q"))

	tasks := []models.Task{}
	for _, t := range h.Tasks.LoadAll() {
		if t.Owner != username {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.Materia), query) {
			continue
		}
		tasks = append(tasks, t)
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

// CreateTask stores a new task owned by the acting user. The owner always
// comes from the verified token; a client-supplied owner field is discarded.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := actingUser(w, r)
	if !ok {
		return
	}

	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondWithError(w, http.StatusBadRequest, "Petición inválida")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(t.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "El nombre es obligatorio")
		return
	}
	if !validDate(t.Date) {
		respondWithError(w, http.StatusBadRequest, "Fecha inválida")
		return
	}

	t.Owner = username
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := h.Tasks.Append(t); err != nil {
		if errors.Is(err, models.ErrDuplicateTask) {
			respondWithError(w, http.StatusBadRequest, "La tarea ya existe")
			return
		}
		h.Logger.Error("create task failed", "user", username, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error al crear")
		return
	}

	h.Logger.Info("task created", "user", username, "id", t.ID)
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "id": t.ID})
}

// UpdateTask merges a partial task into an existing one. Only the owner may
// edit; id and owner are immutable.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := actingUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "Petición inválida")
		return
	}
	defer r.Body.Close()

	if patch.Date != nil && !validDate(*patch.Date) {
		respondWithError(w, http.StatusBadRequest, "Fecha inválida")
		return
	}

	switch err := h.Tasks.Update(id, username, patch); {
	case errors.Is(err, models.ErrTaskNotFound):
		respondWithError(w, http.StatusNotFound, "No encontrada")
		return
	case errors.Is(err, models.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "No autorizado")
		return
	case err != nil:
		h.Logger.Error("update task failed", "user", username, "id", id, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error al actualizar")
		return
	}

	h.Logger.Info("task updated", "user", username, "id", id)
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteTask removes a task. Only the owner may delete.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	username, ok := actingUser(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	switch err := h.Tasks.Delete(id, username); {
	case errors.Is(err, models.ErrTaskNotFound):
		respondWithError(w, http.StatusNotFound, "No encontrada")
		return
	case errors.Is(err, models.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "No autorizado")
		return
	case err != nil:
		h.Logger.Error("delete task failed", "user", username, "id", id, "err", err)
		respondWithError(w, http.StatusInternalServerError, "Error al eliminar")
		return
	}

	h.Logger.Info("task deleted", "user", username, "id", id)
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
