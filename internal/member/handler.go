package member

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lendify/pkg/response"
)

// Handler handles HTTP requests for member operations
type Handler struct {
	service *Service
}

// NewHandler creates a new member handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for member endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}

// Create handles POST /members
// @Summary      Register a new member
// @Description  Register a member with name, email and optional phone
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body CreateMemberRequest true "Member registration request"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /members [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyInUse):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrEmailRequired):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create member")
		}
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// GetByID handles GET /members/{id}
// @Summary      Get member by ID
// @Tags         members
// @Produce      json
// @Param        id path int true "Member ID"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /members/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	member, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get member")
		return
	}

	response.JSON(w, http.StatusOK, member.ToResponse())
}

// List handles GET /members
// @Summary      List all members
// @Tags         members
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Router       /members [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list members")
		return
	}

	memberResponses := make([]*MemberResponse, len(members))
	for i, member := range members {
		memberResponses[i] = member.ToResponse()
	}

	response.JSON(w, http.StatusOK, memberResponses)
}
