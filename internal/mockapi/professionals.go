package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mymentor/mymentor-go/internal/model/user"
	"github.com/mymentor/mymentor-go/pkg/utils"
)

func (s *Server) handleProfessionalsPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		utils.RespondError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size := 10
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			utils.RespondError(w, http.StatusBadRequest, "invalid size")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := (len(s.pros) + size - 1) / size
	start := (page - 1) * size
	if start > len(s.pros) {
		start = len(s.pros)
	}
	end := start + size
	if end > len(s.pros) {
		end = len(s.pros)
	}

	items := make([]user.Professional, end-start)
	copy(items, s.pros[start:end])

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"professionals": items,
		"total_pages":   total,
		"mensaje":       "ok",
	})
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	areas := make([]user.Area, len(s.areas))
	copy(areas, s.areas)
	s.mu.Unlock()

	utils.RespondJSON(w, http.StatusOK, map[string]any{"areas": areas, "mensaje": "ok"})
}

type professionalPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AreaID      int    `json:"area_id"`
}

func (s *Server) handleCreateProfessional(w http.ResponseWriter, r *http.Request) {
	var payload professionalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	area, ok := s.areaByID(payload.AreaID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown area")
		return
	}

	p := user.Professional{
		ID:          s.allocID(),
		Name:        payload.Name,
		Description: payload.Description,
		Area:        area,
	}
	s.pros = append(s.pros, p)

	utils.RespondJSON(w, http.StatusCreated, map[string]any{"professional": p, "mensaje": "asesor creado"})
}

func (s *Server) handleUpdateProfessional(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var payload professionalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pros {
		if s.pros[i].ID != id {
			continue
		}
		if payload.Name != "" {
			s.pros[i].Name = payload.Name
		}
		s.pros[i].Description = payload.Description
		if area, ok := s.areaByID(payload.AreaID); ok {
			s.pros[i].Area = area
		}
		utils.RespondJSON(w, http.StatusOK, map[string]any{"professional": s.pros[i], "mensaje": "asesor actualizado"})
		return
	}

	utils.RespondError(w, http.StatusNotFound, "asesor no encontrado")
}

func (s *Server) handleDeleteProfessional(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pros {
		if s.pros[i].ID == id {
			s.pros = append(s.pros[:i], s.pros[i+1:]...)
			utils.RespondJSON(w, http.StatusOK, map[string]string{"mensaje": "asesor eliminado"})
			return
		}
	}

	utils.RespondError(w, http.StatusNotFound, "asesor no encontrado")
}

// areaByID resolves an area. Callers must hold s.mu.
func (s *Server) areaByID(id int) (user.Area, bool) {
	for _, a := range s.areas {
		if a.ID == id {
			return a, true
		}
	}
	return user.Area{}, false
}
