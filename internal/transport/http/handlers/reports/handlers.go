package reportshandler

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folha/internal/domain/reports"
	"folha/internal/transport/http/api"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Reports: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/periods/{periodID}/summary", h.handlePeriodSummary)
		r.Get("/periods/{periodID}/register.csv", h.handleExportRegister)
	})
}

func (h *Handler) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.PeriodSummary(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "SUMMARY_FAILED", "failed to build period summary")
		return
	}
	api.Success(w, r, summary)
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	register, err := h.Reports.RegisterRows(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "EXPORT_FAILED", "failed to export register")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=payroll-register.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_id", "first_name", "last_name", "gross", "deductions", "net", "status"}); err != nil {
		slog.Warn("register header write failed", "err", err)
	}
	for _, row := range register {
		record := []string{
			row.EmployeeID,
			row.FirstName,
			row.LastName,
			row.GrossSalary.StringFixed(2),
			row.TotalDeductions.StringFixed(2),
			row.NetSalary.StringFixed(2),
			row.Status,
		}
		if err := writer.Write(record); err != nil {
			slog.Warn("register row write failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("register flush failed", "err", err)
	}
}
