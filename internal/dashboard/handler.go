package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lendify/internal/loan"
	"lendify/pkg/response"
)

// Handler handles HTTP requests for dashboard and reporting operations
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for dashboard endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/notifications", h.Notifications)
	r.Get("/overdue", h.Overdue)
	r.Get("/stats", h.Stats)
	r.Get("/current-borrows", h.CurrentBorrows)

	return r
}

// Notifications handles GET /dashboard/notifications
// @Summary      Overdue notifications
// @Description  All currently overdue loans plus an alert flag, intended for periodic polling
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.APIResponse{data=NotificationsResponse}
// @Router       /dashboard/notifications [get]
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.Notifications(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to compute notifications")
		return
	}

	response.JSON(w, http.StatusOK, notifications)
}

// Overdue handles GET /dashboard/overdue
// @Summary      List overdue loans
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]loan.LoanResponse}
// @Router       /dashboard/overdue [get]
func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.service.Overdue(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list overdue loans")
		return
	}

	response.JSON(w, http.StatusOK, overdue)
}

// Stats handles GET /dashboard/stats
// @Summary      Dashboard statistics
// @Description  Overall counters, most borrowed items, top borrowers and loans by type
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.APIResponse{data=StatsResponse}
// @Router       /dashboard/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to compute statistics")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// CurrentBorrows handles GET /dashboard/current-borrows
// @Summary      List current borrows
// @Description  All active loans, optionally restricted by borrow date range
// @Tags         dashboard
// @Produce      json
// @Param        startDate query string false "Borrow date range start (YYYY-MM-DD)"
// @Param        endDate query string false "Borrow date range end (YYYY-MM-DD, inclusive)"
// @Success      200 {object} response.APIResponse{data=[]loan.LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /dashboard/current-borrows [get]
func (h *Handler) CurrentBorrows(w http.ResponseWriter, r *http.Request) {
	from, to, err := loan.ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	borrows, err := h.service.CurrentBorrows(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, loan.ErrInvalidDateRange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list current borrows")
		return
	}

	response.JSON(w, http.StatusOK, borrows)
}

// History handles GET /loans/history
// @Summary      Loan history
// @Description  Full loan history filtered by borrow date range and status, most recent first
// @Tags         dashboard
// @Produce      json
// @Param        startDate query string false "Borrow date range start (YYYY-MM-DD)"
// @Param        endDate query string false "Borrow date range end (YYYY-MM-DD, inclusive)"
// @Param        status query string false "Status filter (active, returned or overdue)"
// @Success      200 {object} response.APIResponse{data=[]loan.LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /loans/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	from, to, err := loan.ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	history, err := h.service.History(r.Context(), from, to, r.URL.Query().Get("status"))
	if err != nil {
		switch {
		case errors.Is(err, loan.ErrInvalidDateRange), errors.Is(err, loan.ErrInvalidStatus):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to load loan history")
		}
		return
	}

	response.JSON(w, http.StatusOK, history)
}
