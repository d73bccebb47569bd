package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/suggestion"
)

type SuggestionHandler struct {
	Svc *suggestion.Service
}

type suggestionDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func suggestionToDTO(s *suggestion.Suggestion) suggestionDTO {
	return suggestionDTO{ID: s.ID, Text: s.Text, Completed: s.Completed, CreatedAt: s.CreatedAt}
}

func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rows, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]suggestionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, suggestionToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	s, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestionToDTO(s))
}

type suggestionReq struct {
	Completed bool `json:"completed"`
}

func (h *SuggestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req suggestionReq
	if !decode(w, r, &req) {
		return
	}
	s, err := h.Svc.SetCompleted(r.Context(), uid, id, req.Completed)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestionToDTO(s))
}

func (h *SuggestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
