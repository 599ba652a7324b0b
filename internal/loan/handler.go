package loan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lendify/internal/item"
	"lendify/pkg/response"
)

// Handler handles HTTP requests for loan operations
type Handler struct {
	service *Service
}

// NewHandler creates a new loan handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for loan endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/borrow", h.Borrow)
	r.Post("/return", h.Return)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Get("/available/items", h.AvailableItems)
	r.Get("/borrowed/by/{memberId}", h.BorrowedByMember)

	return r
}

// Borrow handles POST /loans/borrow
// @Summary      Borrow an item
// @Description  Create an active loan for an available item
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        request body BorrowRequest true "Borrow request"
// @Success      201 {object} response.APIResponse{data=LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /loans/borrow [post]
func (h *Handler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		response.BadRequest(w, "Invalid due date")
		return
	}

	loan, err := h.service.Borrow(r.Context(), req.ItemID, req.BorrowerMemberID, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrItemUnavailable):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrInvalidDueDate):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to borrow item")
		}
		return
	}

	response.JSON(w, http.StatusCreated, loan.ToResponse(h.service.Now()))
}

// Return handles POST /loans/return
// @Summary      Return a borrowed item
// @Description  Close an active loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        request body ReturnRequest true "Return request"
// @Success      200 {object} response.APIResponse{data=LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /loans/return [post]
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	var req ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	loan, err := h.service.Return(r.Context(), req.LoanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoanNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyReturned):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to return item")
		}
		return
	}

	response.JSON(w, http.StatusOK, loan.ToResponse(h.service.Now()))
}

// List handles GET /loans
// @Summary      List loans
// @Description  List loans filtered by status (active/returned/overdue), member and borrow date range
// @Tags         loans
// @Produce      json
// @Param        status query string false "Status filter (active, returned or overdue)"
// @Param        memberId query int false "Borrower member ID"
// @Param        startDate query string false "Borrow date range start (YYYY-MM-DD)"
// @Param        endDate query string false "Borrow date range end (YYYY-MM-DD, inclusive)"
// @Success      200 {object} response.APIResponse{data=[]LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /loans [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{Status: r.URL.Query().Get("status")}

	if v := r.URL.Query().Get("memberId"); v != "" {
		memberID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid member ID")
			return
		}
		q.MemberID = memberID
	}

	from, to, err := ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	q.From, q.To = from, to

	loans, now, err := h.service.List(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidDateRange):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to list loans")
		}
		return
	}

	response.JSON(w, http.StatusOK, toResponses(loans, now))
}

// GetByID handles GET /loans/{id}
// @Summary      Get loan by ID
// @Tags         loans
// @Produce      json
// @Param        id path int true "Loan ID"
// @Success      200 {object} response.APIResponse{data=LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /loans/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	loan, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLoanNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get loan")
		return
	}

	response.JSON(w, http.StatusOK, loan.ToResponse(h.service.Now()))
}

// AvailableItems handles GET /loans/available/items
// @Summary      List available items
// @Description  List items with no active loan, with owner details
// @Tags         loans
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]item.ItemResponse}
// @Router       /loans/available/items [get]
func (h *Handler) AvailableItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.AvailableItems(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list available items")
		return
	}

	itemResponses := make([]*item.ItemResponse, len(items))
	for i, it := range items {
		itemResponses[i] = it.ToResponse()
	}

	response.JSON(w, http.StatusOK, itemResponses)
}

// BorrowedByMember handles GET /loans/borrowed/by/{memberId}
// @Summary      List a member's active loans
// @Tags         loans
// @Produce      json
// @Param        memberId path int true "Member ID"
// @Success      200 {object} response.APIResponse{data=[]LoanResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /loans/borrowed/by/{memberId} [get]
func (h *Handler) BorrowedByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(chi.URLParam(r, "memberId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	loans, now, err := h.service.BorrowedByMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list borrowed items")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(loans, now))
}

func toResponses(loans []*Loan, now time.Time) []*LoanResponse {
	responses := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = l.ToResponse(now)
	}
	return responses
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseDateRange parses optional startDate/endDate query parameters. The
// end date is inclusive: a loan borrowed any time on that day matches.
func ParseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if startStr != "" {
		parsed, err := parseDate(startStr)
		if err != nil {
			return nil, nil, errors.New("invalid start date")
		}
		from = &parsed
	}
	if endStr != "" {
		parsed, err := parseDate(endStr)
		if err != nil {
			return nil, nil, errors.New("invalid end date")
		}
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	return from, to, nil
}
