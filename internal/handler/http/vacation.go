package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/vacation"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type vacationHandlerImpl struct {
	vacationService vacation.VacationService
}

func NewVacationHandler(vacationService vacation.VacationService) VacationHandler {
	return &vacationHandlerImpl{
		vacationService: vacationService,
	}
}

// Submit implements VacationHandler.
func (h *vacationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req vacation.SubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.vacationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request submitted successfully", result)
}

// List implements VacationHandler.
func (h *vacationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := vacation.VacationFilter{
		RequestedBy: optionalQuery(r, "requested_by"),
		TypeID:      optionalQuery(r, "type_id"),
		Status:      optionalQuery(r, "status"),
	}

	if y := query.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		filter.Year = &year
	}

	// Pagination
	if p := query.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := query.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.vacationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Vacations, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

// Get implements VacationHandler.
func (h *vacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.vacationService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Balance implements VacationHandler.
func (h *vacationHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	req := vacation.BalanceRequest{TypeID: r.URL.Query().Get("type_id")}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		req.Year = year
	}

	result, err := h.vacationService.Balance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements VacationHandler.
func (h *vacationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req vacation.DecideRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.vacationService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request "+result.Status, result)
}

// Cancel implements VacationHandler.
func (h *vacationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.vacationService.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request cancelled", result)
}
