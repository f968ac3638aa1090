package payrollhandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"folha/internal/domain/payroll"
	"folha/internal/requestctx"
	"folha/internal/transport/http/api"
)

type Handler struct {
	Lifecycle    *payroll.Lifecycle
	Orchestrator *payroll.Orchestrator
	Entries      payroll.EntryStore
	Slips        payroll.SlipStore
	TaxTables    payroll.TaxTableStore
	Directory    payroll.EmployeeDirectory
}

func NewHandler(
	lifecycle *payroll.Lifecycle,
	orchestrator *payroll.Orchestrator,
	entries payroll.EntryStore,
	slips payroll.SlipStore,
	taxTables payroll.TaxTableStore,
	directory payroll.EmployeeDirectory,
) *Handler {
	return &Handler{
		Lifecycle:    lifecycle,
		Orchestrator: orchestrator,
		Entries:      entries,
		Slips:        slips,
		TaxTables:    taxTables,
		Directory:    directory,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/periods", h.handleCreatePeriod)
		r.Get("/periods", h.handleListPeriods)
		r.Get("/periods/{periodID}", h.handleGetPeriod)
		r.Post("/periods/{periodID}/close", h.handleClosePeriod)
		r.Post("/periods/{periodID}/calculate", h.handleCalculate)
		r.Get("/periods/{periodID}/slips", h.handleListSlips)
		r.Get("/periods/{periodID}/employees/{employeeID}/slip", h.handleGetSlip)
		r.Get("/periods/{periodID}/employees/{employeeID}/entries", h.handleListEntries)
		r.Get("/periods/{periodID}/employees/{employeeID}/payslip.pdf", h.handleDownloadPayslip)
		r.Get("/tax-tables", h.handleListTaxTables)
	})
}

type periodPayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload periodPayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
		return
	}

	period, err := h.Lifecycle.Create(r.Context(), payload.Month, payload.Year)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidPeriod):
			api.Fail(w, r, http.StatusBadRequest, "INVALID_PERIOD", err.Error())
		case errors.Is(err, payroll.ErrDuplicatePeriod):
			api.Fail(w, r, http.StatusConflict, "DUPLICATE_PERIOD", "a period for that month and year already exists")
		default:
			api.Fail(w, r, http.StatusInternalServerError, "PERIOD_CREATE_FAILED", "failed to create period")
		}
		return
	}
	api.Created(w, r, period)
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Lifecycle.List(r.Context())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "PERIOD_LIST_FAILED", "failed to list periods")
		return
	}
	api.Success(w, r, periods)
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Lifecycle.Get(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "period not found")
			return
		}
		api.Fail(w, r, http.StatusInternalServerError, "PERIOD_GET_FAILED", "failed to load period")
		return
	}
	api.Success(w, r, period)
}

func (h *Handler) handleClosePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Lifecycle.Close(r.Context(), chi.URLParam(r, "periodID"), actorID(r))
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrPeriodNotFound):
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "period not found")
		case errors.Is(err, payroll.ErrPeriodClosed):
			api.Fail(w, r, http.StatusConflict, "PERIOD_CLOSED", "period is already closed")
		default:
			api.Fail(w, r, http.StatusInternalServerError, "PERIOD_CLOSE_FAILED", "failed to close period")
		}
		return
	}
	api.Success(w, r, period)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	finalize, _ := strconv.ParseBool(r.URL.Query().Get("finalize"))
	result, err := h.Orchestrator.Calculate(r.Context(), chi.URLParam(r, "periodID"), actorID(r), finalize)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrPeriodNotFound):
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "period not found")
		case errors.Is(err, payroll.ErrPeriodClosed):
			api.Fail(w, r, http.StatusConflict, "PERIOD_CLOSED", "closed periods cannot be recalculated")
		default:
			api.Fail(w, r, http.StatusInternalServerError, "CALCULATION_FAILED", "payroll calculation failed")
		}
		return
	}
	api.Success(w, r, result)
}

func (h *Handler) handleListSlips(w http.ResponseWriter, r *http.Request) {
	slips, err := h.Slips.ListSlips(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "SLIP_LIST_FAILED", "failed to list pay slips")
		return
	}
	api.Success(w, r, slips)
}

func (h *Handler) handleGetSlip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.Slips.GetSlip(r.Context(), chi.URLParam(r, "periodID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, payroll.ErrSlipNotFound) {
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "pay slip not found")
			return
		}
		api.Fail(w, r, http.StatusInternalServerError, "SLIP_GET_FAILED", "failed to load pay slip")
		return
	}
	api.Success(w, r, slip)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Entries.ListEntries(r.Context(), chi.URLParam(r, "periodID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "ENTRY_LIST_FAILED", "failed to list entries")
		return
	}
	api.Success(w, r, entries)
}

func (h *Handler) handleListTaxTables(w http.ResponseWriter, r *http.Request) {
	taxType := r.URL.Query().Get("type")
	if taxType != payroll.TaxTypeINSS && taxType != payroll.TaxTypeIRRF {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_TAX_TYPE", "type must be inss or irrf")
		return
	}
	rows, err := h.TaxTables.ListTaxTables(r.Context(), taxType)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "TAX_TABLE_LIST_FAILED", "failed to list tax tables")
		return
	}
	api.Success(w, r, rows)
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	period, err := h.Lifecycle.Get(r.Context(), periodID)
	if err != nil {
		api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "period not found")
		return
	}
	slip, err := h.Slips.GetSlip(r.Context(), periodID, employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "pay slip not found")
		return
	}
	info, err := h.Directory.FindActiveEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "employee not found")
		return
	}
	entries, err := h.Entries.ListEntries(r.Context(), periodID, employeeID)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "PAYSLIP_PDF_FAILED", "failed to load entries")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", info.FirstName, info.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", period.Month, period.Year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", slip.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Entries")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range entries {
		sign := "+"
		if entry.Type == payroll.EntryTypeDeduction {
			sign = "-"
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s %s  %s%s", entry.Code, entry.Description, sign, entry.Amount.StringFixed(2)))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", slip.GrossSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", slip.TotalDeductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("FGTS deposit: %s", slip.FGTSAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", slip.NetSalary.StringFixed(2)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%d-%02d.pdf", period.Year, period.Month))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "PAYSLIP_PDF_FAILED", "failed to render payslip")
	}
}

func actorID(r *http.Request) string {
	if actor, ok := requestctx.GetActor(r.Context()); ok {
		return actor.UserID
	}
	return ""
}
