package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oral0005/backend-posylka/internal/api/middleware"
	"github.com/oral0005/backend-posylka/internal/usecase"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var params usecase.RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	u, err := h.registerUC.Execute(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": u.ID})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	result, err := h.loginUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		// Bad credentials come back as 401, not the generic 403 mapping.
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.getProfileUC.Execute(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}

func (h *Handlers) SendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		http.Error(w, `{"error": "phone_number is required"}`, http.StatusBadRequest)
		return
	}

	if err := h.sendVerificationUC.Execute(r.Context(), req.PhoneNumber); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "verification code sent"})
}

func (h *Handlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Code        string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" || req.Code == "" {
		http.Error(w, `{"error": "phone_number and code are required"}`, http.StatusBadRequest)
		return
	}

	if err := h.checkVerificationUC.Execute(r.Context(), req.PhoneNumber, req.Code); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "phone number verified"})
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationsUC.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationsUC.MarkRead(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
