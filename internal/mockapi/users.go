package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mymentor/mymentor-go/internal/model/user"
	"github.com/mymentor/mymentor-go/pkg/utils"
)

func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	s.mu.Lock()
	acct, ok := s.accounts[email]
	s.mu.Unlock()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}

	utils.RespondJSON(w, http.StatusOK, user.Response{Usuario: acct.User, Mensaje: "ok"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]user.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		users = append(users, acct.User)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	utils.RespondJSON(w, http.StatusOK, user.ListResponse{Usuarios: users, Mensaje: "ok"})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		LastName    string `json:"last_name"`
		PhoneNumber int64  `json:"phone_number"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		Admin       bool   `json:"admin"`
		Enabled     bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if len(payload.Password) < 8 {
		utils.RespondError(w, http.StatusBadRequest, "password too short")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[payload.Email]; exists {
		utils.RespondError(w, http.StatusConflict, "el email ya está registrado")
		return
	}

	// Every new account gets the general consultation assignment.
	u := user.User{
		UUID:        uuid.NewString(),
		Name:        payload.Name,
		LastName:    payload.LastName,
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
		Admin:       payload.Admin,
		Enabled:     payload.Enabled,
		Asesores: []user.Asesor{
			{ID: s.allocID(), Professional: s.pros[0]},
		},
	}
	s.accounts[u.Email] = &account{User: u, password: payload.Password}

	utils.RespondJSON(w, http.StatusCreated, user.Response{Usuario: u, Mensaje: "usuario creado"})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")

	var payload user.User
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, oldEmail := s.findByUUID(targetUUID)
	if acct == nil {
		utils.RespondError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}

	// The uuid and advisor assignments are server-owned.
	updated := payload
	updated.UUID = acct.UUID
	updated.Asesores = acct.Asesores
	if updated.Email == "" {
		updated.Email = acct.Email
	}

	if updated.Email != oldEmail {
		delete(s.accounts, oldEmail)
	}
	s.accounts[updated.Email] = &account{User: updated, password: acct.password}

	utils.RespondJSON(w, http.StatusOK, user.Response{Usuario: updated, Mensaje: "usuario actualizado"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, email := s.findByUUID(targetUUID)
	if acct == nil {
		utils.RespondError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	delete(s.accounts, email)

	utils.RespondJSON(w, http.StatusOK, map[string]string{"mensaje": "usuario eliminado"})
}

// findByUUID locates an account by uuid. Callers must hold s.mu.
func (s *Server) findByUUID(id string) (*account, string) {
	for email, acct := range s.accounts {
		if acct.UUID == id {
			return acct, email
		}
	}
	return nil, ""
}
