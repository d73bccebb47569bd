package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/mood"
)

type MoodLogHandler struct {
	Svc *mood.Service
}

type moodLogDTO struct {
	ID         uint64    `json:"id"`
	Mood       moodDTO   `json:"mood"`
	DateLogged time.Time `json:"date_logged"`
	Notes      string    `json:"notes,omitempty"`
}

func moodLogToDTO(l *mood.MoodLog) moodLogDTO {
	return moodLogDTO{
		ID:         l.ID,
		Mood:       moodToDTO(&l.Mood),
		DateLogged: l.DateLogged,
		Notes:      l.Notes,
	}
}

type moodLogReq struct {
	Mood  uint64 `json:"mood"`
	Notes string `json:"notes"`
}

func (h *MoodLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req moodLogReq
	if !decode(w, r, &req) {
		return
	}
	l, err := h.Svc.CreateLog(r.Context(), uid, mood.LogInput{MoodID: req.Mood, Notes: req.Notes})
	if err != nil {
		respondError(w, err)
		return
	}
	l, err = h.Svc.GetLog(r.Context(), uid, l.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, moodLogToDTO(l))
}

func (h *MoodLogHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rows, err := h.Svc.ListLogs(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]moodLogDTO, 0, len(rows))
	for i := range rows {
		out = append(out, moodLogToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *MoodLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	l, err := h.Svc.GetLog(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, moodLogToDTO(l))
}

func (h *MoodLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req moodLogReq
	if !decode(w, r, &req) {
		return
	}
	l, err := h.Svc.UpdateLog(r.Context(), uid, id, mood.LogInput{MoodID: req.Mood, Notes: req.Notes})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, moodLogToDTO(l))
}

func (h *MoodLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Svc.DeleteLog(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
