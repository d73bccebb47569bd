package handler

import (
	"net/http"
	"time"

	"discoverme/internal/auth"
	"discoverme/internal/user"
)

type MeHandler struct {
	Users *user.Service
}

type meDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	u, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	})
}

type profileDTO struct {
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pronouns   string `json:"pronouns"`
	FirstLogin bool   `json:"first_login"`
}

func profileToDTO(p *user.Profile) profileDTO {
	return profileDTO{
		Location:   p.Location,
		Occupation: p.Occupation,
		City:       p.City,
		State:      p.State,
		Pronouns:   p.Pronouns,
		FirstLogin: p.FirstLogin,
	}
}

func (h *MeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	p, err := h.Users.GetProfile(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profileToDTO(p))
}

func (h *MeHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req user.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}

	p, err := h.Users.UpdateProfile(r.Context(), uid, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profileToDTO(p))
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *MeHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req changePasswordReq
	if !decode(w, r, &req) {
		return
	}

	if err := h.Users.ChangePassword(r.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
