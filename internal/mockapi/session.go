package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/mymentor/mymentor-go/pkg/utils"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[payload.Email]
	s.mu.Unlock()

	if !ok || acct.password != payload.Password || !acct.Enabled {
		utils.RespondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	token, err := issueToken(s.secret, acct.Email, s.tokenTTL)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "no se pudo emitir el token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "login correcto",
		"email":   acct.Email,
		"token":   token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless here; logout just acknowledges.
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "sesión cerrada"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	email := callerEmail(r)

	s.mu.Lock()
	_, ok := s.accounts[email]
	s.mu.Unlock()
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "cuenta desconocida")
		return
	}

	token, err := issueToken(s.secret, email, s.tokenTTL)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "no se pudo emitir el token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}
