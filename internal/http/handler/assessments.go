package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"discoverme/internal/assessment"
	"discoverme/internal/auth"
)

type AssessmentHandler struct {
	Svc *assessment.Service
}

type assessmentDTO struct {
	ID             uint64    `json:"id"`
	Instrument     string    `json:"instrument"`
	Responses      []int     `json:"responses"`
	Score          int       `json:"score"`
	Interpretation string    `json:"interpretation"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func assessmentToDTO(a *assessment.Assessment) assessmentDTO {
	return assessmentDTO{
		ID:             a.ID,
		Instrument:     string(a.Instrument),
		Responses:      a.Responses,
		Score:          a.Score,
		Interpretation: assessment.Interpret(a.Instrument, a.Score),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func instrumentFromPath(w http.ResponseWriter, r *http.Request) (assessment.Instrument, bool) {
	inst := assessment.Instrument(chi.URLParam(r, "instrument"))
	if !inst.Valid() {
		http.Error(w, "unknown instrument", http.StatusNotFound)
		return "", false
	}
	return inst, true
}

type assessmentReq struct {
	Responses []int `json:"responses"`
}

func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	inst, ok := instrumentFromPath(w, r)
	if !ok {
		return
	}

	var req assessmentReq
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Svc.Create(r.Context(), uid, inst, req.Responses)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assessmentToDTO(a))
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	inst, ok := instrumentFromPath(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.List(r.Context(), uid, inst)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]assessmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, assessmentToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	inst, ok := instrumentFromPath(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	a, err := h.Svc.Get(r.Context(), uid, id, inst)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessmentToDTO(a))
}

func (h *AssessmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	inst, ok := instrumentFromPath(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req assessmentReq
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Svc.Update(r.Context(), uid, id, inst, req.Responses)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessmentToDTO(a))
}

func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	inst, ok := instrumentFromPath(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Svc.Delete(r.Context(), uid, id, inst); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
