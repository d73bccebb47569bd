package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/journal"
)

type JournalHandler struct {
	Svc *journal.Service
}

type entryDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func entryToDTO(e *journal.Entry) entryDTO {
	return entryDTO{ID: e.ID, Title: e.Title, Content: e.Content, CreatedAt: e.CreatedAt}
}

type entryReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req entryReq
	if !decode(w, r, &req) {
		return
	}
	e, err := h.Svc.Create(r.Context(), uid, journal.Input{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entryToDTO(e))
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rows, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]entryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, entryToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	e, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entryToDTO(e))
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req entryReq
	if !decode(w, r, &req) {
		return
	}
	e, err := h.Svc.Update(r.Context(), uid, id, journal.Input{Title: req.Title, Content: req.Content})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entryToDTO(e))
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
