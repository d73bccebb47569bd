package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/goal"
)

type TaskHandler struct {
	Svc *goal.Service
}

type taskDTO struct {
	ID          uint64     `json:"id"`
	Goal        uint64     `json:"goal"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedOn *time.Time `json:"completed_on"`
}

func taskToDTO(t *goal.Task) taskDTO {
	return taskDTO{
		ID:          t.ID,
		Goal:        t.GoalID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedOn: t.CompletedOn,
	}
}

type taskReq struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Create lives under /goals/{id}/tasks; ownership of the parent goal is
// verified by the service.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	goalID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req taskReq
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Svc.CreateTask(r.Context(), uid, goalID, goal.TaskInput{Text: req.Text, Completed: req.Completed})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, taskToDTO(t))
}

func (h *TaskHandler) ListForGoal(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	goalID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	rows, err := h.Svc.ListTasks(r.Context(), uid, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]taskDTO, 0, len(rows))
	for i := range rows {
		out = append(out, taskToDTO(&rows[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	t, err := h.Svc.GetTask(r.Context(), uid, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, taskToDTO(t))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req taskReq
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Svc.UpdateTask(r.Context(), uid, id, goal.TaskInput{Text: req.Text, Completed: req.Completed})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, taskToDTO(t))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Svc.DeleteTask(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
