package handler

import (
	"net/http"

	"discoverme/internal/auth"
	"discoverme/internal/mood"
)

type MoodHandler struct {
	Svc *mood.Service
}

type moodDTO struct {
	ID              uint64 `json:"id"`
	MoodType        string `json:"mood_type"`
	MoodDescription string `json:"mood_description"`
}

func moodToDTO(m *mood.Mood) moodDTO {
	return moodDTO{ID: m.ID, MoodType: m.MoodType, MoodDescription: m.MoodDescription}
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.ListCatalog(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]moodDTO, 0, len(rows))
	for i := range rows {
		out = append(out, moodToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *MoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, err := h.Svc.GetCatalog(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, moodToDTO(m))
}

type moodReq struct {
	MoodType        string `json:"mood_type"`
	MoodDescription string `json:"mood_description"`
}

func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req moodReq
	if !decode(w, r, &req) {
		return
	}
	m, err := h.Svc.CreateCatalog(r.Context(), claims.Role == auth.RoleAdmin, req.MoodType, req.MoodDescription)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, moodToDTO(m))
}

func (h *MoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req moodReq
	if !decode(w, r, &req) {
		return
	}
	m, err := h.Svc.UpdateCatalog(r.Context(), claims.Role == auth.RoleAdmin, id, req.MoodType, req.MoodDescription)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, moodToDTO(m))
}

func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Svc.DeleteCatalog(r.Context(), claims.Role == auth.RoleAdmin, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
