package employeehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"folha/internal/domain/audit"
	"folha/internal/domain/employee"
	"folha/internal/requestctx"
	"folha/internal/transport/http/api"
)

type Handler struct {
	Employees *employee.Service
	Audit     *audit.Service
}

func NewHandler(employees *employee.Service, auditor *audit.Service) *Handler {
	return &Handler{Employees: employees, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Patch("/{employeeID}", h.handleUpdate)
		r.Put("/{employeeID}/salary", h.handleChangeSalary)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.NewEmployee
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
		return
	}

	created, err := h.Employees.Create(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrEmailTaken):
			api.Fail(w, r, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		case errors.Is(err, employee.ErrInvalid):
			api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		default:
			api.Fail(w, r, http.StatusInternalServerError, "EMPLOYEE_CREATE_FAILED", "failed to create employee")
		}
		return
	}

	h.Audit.Record(r.Context(), actorID(r), "employee.create", "employee", created.ID, "employee registered")
	api.Created(w, r, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "EMPLOYEE_LIST_FAILED", "failed to list employees")
		return
	}
	api.Success(w, r, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "employee not found")
			return
		}
		api.Fail(w, r, http.StatusInternalServerError, "EMPLOYEE_GET_FAILED", "failed to load employee")
		return
	}
	api.Success(w, r, found)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch employee.Patch
	if err := api.DecodeJSON(r, &patch); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	updated, err := h.Employees.Update(r.Context(), employeeID, patch)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "employee not found")
		case errors.Is(err, employee.ErrInvalid):
			api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		default:
			api.Fail(w, r, http.StatusInternalServerError, "EMPLOYEE_UPDATE_FAILED", "failed to update employee")
		}
		return
	}

	h.Audit.Record(r.Context(), actorID(r), "employee.update", "employee", employeeID, "employee updated")
	api.Success(w, r, updated)
}

type salaryPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) handleChangeSalary(w http.ResponseWriter, r *http.Request) {
	var payload salaryPayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Employees.ChangeSalary(r.Context(), employeeID, payload.Amount); err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, r, http.StatusNotFound, "NOT_FOUND", "employee not found")
		case errors.Is(err, employee.ErrInvalid):
			api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		default:
			api.Fail(w, r, http.StatusInternalServerError, "SALARY_UPDATE_FAILED", "failed to update salary")
		}
		return
	}

	h.Audit.Record(r.Context(), actorID(r), "employee.salary.change", "employee", employeeID, "base salary changed")
	api.Success(w, r, map[string]string{"status": "updated"})
}

func actorID(r *http.Request) string {
	if actor, ok := requestctx.GetActor(r.Context()); ok {
		return actor.UserID
	}
	return ""
}
