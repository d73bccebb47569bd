package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/insight"
)

type InsightHandler struct {
	Svc *insight.Service
}

type insightDTO struct {
	ID           uint64    `json:"id"`
	TriggerWord  string    `json:"trigger_word"`
	TimeQuantity int       `json:"time_quantity"`
	TimeFrame    string    `json:"time_frame"`
	MoodCount    int       `json:"mood_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func insightToDTO(i *insight.Insight) insightDTO {
	return insightDTO{
		ID:           i.ID,
		TriggerWord:  i.TriggerWord,
		TimeQuantity: i.TimeQuantity,
		TimeFrame:    string(i.TimeFrame),
		MoodCount:    i.MoodCount,
		CreatedAt:    i.CreatedAt,
	}
}

type insightReq struct {
	TriggerWord  string `json:"trigger_word"`
	TimeQuantity int    `json:"time_quantity"`
	TimeFrame    string `json:"time_frame"`
	MoodCount    int    `json:"mood_count"`
}

func (req insightReq) toInput() insight.Input {
	return insight.Input{
		TriggerWord:  req.TriggerWord,
		TimeQuantity: req.TimeQuantity,
		TimeFrame:    insight.TimeFrame(req.TimeFrame),
		MoodCount:    req.MoodCount,
	}
}

func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req insightReq
	if !decode(w, r, &req) {
		return
	}
	i, err := h.Svc.Create(r.Context(), uid, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, insightToDTO(i))
}

// Generate derives mood_count from the caller's logged moods instead of
// accepting it from the payload.
func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req insightReq
	if !decode(w, r, &req) {
		return
	}
	i, err := h.Svc.Generate(r.Context(), uid, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, insightToDTO(i))
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rows, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]insightDTO, 0, len(rows))
	for i := range rows {
		out = append(out, insightToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	i, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, insightToDTO(i))
}

func (h *InsightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
