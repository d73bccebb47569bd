package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/goal"
)

type GoalHandler struct {
	Svc *goal.Service
}

type goalDTO struct {
	ID           uint64     `json:"id"`
	Category     string     `json:"category"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Completed    bool       `json:"completed"`
	CompletedOn  *time.Time `json:"completed_on"`
	StartDate    time.Time  `json:"start_date"`
	TimesPerDay  int        `json:"times_per_day"`
	DaysPerWeek  int        `json:"days_per_week"`
	Duration     int        `json:"duration"`
	DurationUnit string     `json:"duration_unit"`
}

func goalToDTO(g *goal.Goal) goalDTO {
	return goalDTO{
		ID:           g.ID,
		Category:     string(g.Category),
		Title:        g.Title,
		Description:  g.Description,
		Completed:    g.Completed,
		CompletedOn:  g.CompletedOn,
		StartDate:    g.StartDate,
		TimesPerDay:  g.TimesPerDay,
		DaysPerWeek:  g.DaysPerWeek,
		Duration:     g.Duration,
		DurationUnit: string(g.DurationUnit),
	}
}

type goalReq struct {
	Category     string `json:"category"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Completed    bool   `json:"completed"`
	TimesPerDay  int    `json:"times_per_day"`
	DaysPerWeek  int    `json:"days_per_week"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"duration_unit"`
}

func (req goalReq) toInput() goal.Input {
	return goal.Input{
		Category:     goal.Category(req.Category),
		Title:        req.Title,
		Description:  req.Description,
		Completed:    req.Completed,
		TimesPerDay:  req.TimesPerDay,
		DaysPerWeek:  req.DaysPerWeek,
		Duration:     req.Duration,
		DurationUnit: goal.DurationUnit(req.DurationUnit),
	}
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req goalReq
	if !decode(w, r, &req) {
		return
	}
	g, err := h.Svc.Create(r.Context(), uid, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goalToDTO(g))
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rows, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]goalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, goalToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	g, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goalToDTO(g))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req goalReq
	if !decode(w, r, &req) {
		return
	}
	g, err := h.Svc.Update(r.Context(), uid, id, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goalToDTO(g))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
