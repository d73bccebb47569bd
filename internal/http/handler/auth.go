package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"discoverme/internal/auth"
	"discoverme/internal/domain"
	"discoverme/internal/user"
)

type AuthHandler struct {
	Users *user.Service
	JWT   *auth.JWT
}

type registerReq struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenPair struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Users.Register(r.Context(), user.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if _, ok := domain.AsValidation(err); ok {
			respondError(w, err)
			return
		}
		// unexpected failures never leak internals through registration
		log.Error().Err(err).Msg("registration failed")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	h.issueTokens(w, http.StatusCreated, u)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	u, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	h.issueTokens(w, http.StatusOK, u)
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if !decode(w, r, &req) {
		return
	}

	uid, err := h.JWT.VerifyRefresh(req.Refresh)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	u, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	h.issueTokens(w, http.StatusOK, u)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, status int, u *user.User) {
	token, err := h.JWT.Sign(u.ID, u.Role)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	refresh, err := h.JWT.SignRefresh(u.ID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, status, tokenPair{Token: token, Refresh: refresh})
}
