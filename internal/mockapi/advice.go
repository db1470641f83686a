package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	advicemodel "github.com/mymentor/mymentor-go/internal/model/advice"
	"github.com/mymentor/mymentor-go/pkg/utils"
)

func (s *Server) handleListAdvisorys(w http.ResponseWriter, r *http.Request) {
	asesorID, err := strconv.Atoi(chi.URLParam(r, "asesorID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid asesor id")
		return
	}

	s.mu.Lock()
	var list []advicemodel.Advice
	for _, a := range s.advices {
		if a.asesorID == asesorID {
			list = append(list, a.Advice)
		}
	}
	s.mu.Unlock()

	// The production backend answers 404 when an asesor has no threads yet;
	// the client is expected to read that as an empty list.
	if len(list) == 0 {
		utils.RespondJSON(w, http.StatusNotFound, map[string]string{"mensaje": "sin asesorías para este asesor"})
		return
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	utils.RespondJSON(w, http.StatusOK, advicemodel.ListResponse{Advisorys: list, Mensaje: "ok"})
}

func (s *Server) handleCreateAdvice(w http.ResponseWriter, r *http.Request) {
	var req advicemodel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Ask) == "" {
		utils.RespondError(w, http.StatusBadRequest, "ask is required")
		return
	}

	answer, modelName := cannedAnswer(req.APIType, req.Ask)

	s.mu.Lock()
	defer s.mu.Unlock()

	a := &storedAdvice{
		Advice: advicemodel.Advice{
			ID:          s.allocID(),
			Description: describe(req.Ask),
			Details: []advicemodel.Detail{{
				ID:         s.allocID(),
				LineNumber: 1,
				Question:   req.Ask,
				Answer:     answer,
				Model:      modelName,
			}},
		},
		asesorID: req.UserProfessionalID,
	}
	s.advices[a.ID] = a

	utils.RespondJSON(w, http.StatusCreated, advicemodel.Response{Advice: a.Advice, Mensaje: "asesoría creada"})
}

func (s *Server) handleUpdateAdvice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req advicemodel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Ask) == "" {
		utils.RespondError(w, http.StatusBadRequest, "ask is required")
		return
	}

	answer, modelName := cannedAnswer(req.APIType, req.Ask)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.advices[id]
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "asesoría no encontrada")
		return
	}

	a.Details = append(a.Details, advicemodel.Detail{
		ID:         s.allocID(),
		LineNumber: len(a.Details) + 1,
		Question:   req.Ask,
		Answer:     answer,
		Model:      modelName,
	})

	utils.RespondJSON(w, http.StatusOK, advicemodel.Response{Advice: a.Advice, Mensaje: "asesoría actualizada"})
}

func (s *Server) handleGetAdvice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	a, ok := s.advices[id]
	s.mu.Unlock()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "asesoría no encontrada")
		return
	}

	utils.RespondJSON(w, http.StatusOK, advicemodel.Response{Advice: a.Advice, Mensaje: "ok"})
}

func (s *Server) handleDeleteAdvice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	_, ok := s.advices[id]
	delete(s.advices, id)
	s.mu.Unlock()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "asesoría no encontrada")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"mensaje": "asesoría eliminada"})
}

// cannedAnswer fakes the generative backend. The model names mirror what the
// production service reports per api_type.
func cannedAnswer(apiType, ask string) (answer, modelName string) {
	switch apiType {
	case "openai":
		modelName = "gpt-4o"
	default:
		modelName = "claude-3-5-sonnet"
	}
	answer = fmt.Sprintf("Sobre tu consulta %q: esta es una respuesta de prueba generada por %s.", describe(ask), modelName)
	return answer, modelName
}

// describe derives the thread description from the opening question.
func describe(ask string) string {
	runes := []rune(strings.TrimSpace(ask))
	if len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return string(runes)
}
