package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lendify/pkg/response"
)

// Handler handles HTTP requests for item operations
type Handler struct {
	service *Service
}

// NewHandler creates a new item handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for item endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)

	return r
}

// Create handles POST /items
// @Summary      Add a new item
// @Description  Add a lendable item to the catalog
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body CreateItemRequest true "Item creation request"
// @Success      201 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidType):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create item")
		}
		return
	}

	response.JSON(w, http.StatusCreated, item.ToResponse())
}

// GetByID handles GET /items/{id}
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get item")
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}

// List handles GET /items
// @Summary      List items
// @Description  List catalog items, optionally filtered by type and availability
// @Tags         items
// @Produce      json
// @Param        type query string false "Item type filter"
// @Param        available query bool false "Availability filter"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /items [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Type: ItemType(r.URL.Query().Get("type"))}

	if v := r.URL.Query().Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "Invalid availability filter")
			return
		}
		filter.Available = &available
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list items")
		return
	}

	itemResponses := make([]*ItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = item.ToResponse()
	}

	response.JSON(w, http.StatusOK, itemResponses)
}

// Update handles PUT /items/{id}
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path int true "Item ID"
// @Param        request body UpdateItemRequest true "Item update request"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidType):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update item")
		}
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}
