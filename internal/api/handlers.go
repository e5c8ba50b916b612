package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oral0005/backend-posylka/internal/api/middleware"
	"github.com/oral0005/backend-posylka/internal/domain/post"
	"github.com/oral0005/backend-posylka/internal/usecase"
)

// Handlers binds the lifecycle use cases to HTTP. Each handler decodes,
// delegates and renders; every rule lives in the use case layer.
type Handlers struct {
	createPostUC   *usecase.CreatePost
	updatePostUC   *usecase.UpdatePost
	deletePostUC   *usecase.DeletePost
	cancelPostUC   *usecase.CancelPost
	getPostsUC     *usecase.GetPosts
	listRequestsUC *usecase.ListPendingRequests

	requestActivationUC *usecase.RequestActivation
	acceptRequestUC     *usecase.AcceptRequest
	rejectRequestUC     *usecase.RejectRequest
	markDeliveredUC     *usecase.MarkDelivered
	confirmCompletionUC *usecase.ConfirmCompletion
	rateUserUC          *usecase.RateUser

	registerUC          *usecase.Register
	loginUC             *usecase.Login
	getProfileUC        *usecase.GetProfile
	sendVerificationUC  *usecase.SendVerification
	checkVerificationUC *usecase.CheckVerification

	notificationsUC  *usecase.Notifications
	recommendPriceUC *usecase.RecommendPrice
}

type HandlersDeps struct {
	CreatePost        *usecase.CreatePost
	UpdatePost        *usecase.UpdatePost
	DeletePost        *usecase.DeletePost
	CancelPost        *usecase.CancelPost
	GetPosts          *usecase.GetPosts
	ListRequests      *usecase.ListPendingRequests
	RequestActivation *usecase.RequestActivation
	AcceptRequest     *usecase.AcceptRequest
	RejectRequest     *usecase.RejectRequest
	MarkDelivered     *usecase.MarkDelivered
	ConfirmCompletion *usecase.ConfirmCompletion
	RateUser          *usecase.RateUser
	Register          *usecase.Register
	Login             *usecase.Login
	GetProfile        *usecase.GetProfile
	SendVerification  *usecase.SendVerification
	CheckVerification *usecase.CheckVerification
	Notifications     *usecase.Notifications
	RecommendPrice    *usecase.RecommendPrice
}

func NewHandlers(deps HandlersDeps) *Handlers {
	return &Handlers{
		createPostUC:        deps.CreatePost,
		updatePostUC:        deps.UpdatePost,
		deletePostUC:        deps.DeletePost,
		cancelPostUC:        deps.CancelPost,
		getPostsUC:          deps.GetPosts,
		listRequestsUC:      deps.ListRequests,
		requestActivationUC: deps.RequestActivation,
		acceptRequestUC:     deps.AcceptRequest,
		rejectRequestUC:     deps.RejectRequest,
		markDeliveredUC:     deps.MarkDelivered,
		confirmCompletionUC: deps.ConfirmCompletion,
		rateUserUC:          deps.RateUser,
		registerUC:          deps.Register,
		loginUC:             deps.Login,
		getProfileUC:        deps.GetProfile,
		sendVerificationUC:  deps.SendVerification,
		checkVerificationUC: deps.CheckVerification,
		notificationsUC:     deps.Notifications,
		recommendPriceUC:    deps.RecommendPrice,
	}
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var params usecase.CreatePostParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := h.createPostUC.Execute(r.Context(), middleware.UserID(r.Context()), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	kind := post.Kind(r.URL.Query().Get("kind"))

	posts, err := h.getPostsUC.List(r.Context(), kind)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

func (h *Handlers) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.getPostsUC.ListByOwner(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getPostsUC.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var params usecase.UpdatePostParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	updated, err := h.updatePostUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.deletePostUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handlers) CancelPost(w http.ResponseWriter, r *http.Request) {
	if err := h.cancelPostUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handlers) RequestActivation(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestActivationUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, req)
}

func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.listRequestsUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

func (h *Handlers) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	updated, err := h.acceptRequestUC.Execute(r.Context(),
		middleware.UserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	err := h.rejectRequestUC.Execute(r.Context(),
		middleware.UserID(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "requestID"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *Handlers) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	updated, err := h.markDeliveredUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) ConfirmCompletion(w http.ResponseWriter, r *http.Request) {
	updated, err := h.confirmCompletionUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) RatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	err := h.rateUserUC.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), req.Rating)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}

func (h *Handlers) RecommendedPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.recommendPriceUC.Execute(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]float64{"recommended_price": price})
}
