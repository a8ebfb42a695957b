package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)

	// Entries
	CreateEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)

	// Reports
	EmployeeReport(w http.ResponseWriter, r *http.Request)
	ProjectReport(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

func (h *overtimeHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req overtime.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime entry created successfully", result)
}

func (h *overtimeHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := overtime.ListEntriesRequest{
		EmployeeID: query.Get("employee_id"),
		ProjectID:  query.Get("project_id"),
		Month:      query.Get("month"),
		Year:       query.Get("year"),
	}

	results, err := h.overtimeService.ListEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *overtimeHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.overtimeService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req overtime.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.overtimeService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime entry updated successfully", result)
}

func (h *overtimeHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.overtimeService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Overtime entry deleted successfully"})
}

func (h *overtimeHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.EmployeeMonthlyReport(r.Context(), monthlyReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) ProjectReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.ProjectMonthlyReport(r.Context(), monthlyReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthlyReportRequest(r *http.Request) overtime.MonthlyReportRequest {
	return overtime.MonthlyReportRequest{
		SubjectID: chi.URLParam(r, "id"),
		Month:     r.URL.Query().Get("month"),
		Year:      r.URL.Query().Get("year"),
	}
}
