package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stafflink/staffdex/internal/domain"
	employeeuc "github.com/stafflink/staffdex/internal/usecase/employee"
	healthuc "github.com/stafflink/staffdex/internal/usecase/health"
	searchuc "github.com/stafflink/staffdex/internal/usecase/search"
)

// headerTenantID carries the tenant identifier on every request.
const headerTenantID = "X-Tenant-ID"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the directory and search API over HTTP.
type Server struct {
	search        *searchuc.Service
	employees     *employeeuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	employees *employeeuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		employees: employees,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrTenantRequired, http.StatusBadRequest, ErrorCodeTenantRequired),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrEmployeeNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Post("/search", s.SearchEmployees)

	r.Route("/employees", func(r chirouter.Router) {
		r.Post("/", s.CreateEmployee)
		r.Get("/", s.ListEmployees)
		r.Get("/{id}", s.GetEmployee)
		r.Put("/{id}", s.UpdateEmployee)
		r.Delete("/{id}", s.DeleteEmployee)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchEmployees handles POST /search.
func (s *Server) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := queryFromRequest(req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), tenantID(r), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateEmployee handles POST /employees.
func (s *Server) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	emp, err := s.employees.Create(r.Context(), tenantID(r), employeeInput(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/employees/"+emp.ID())
	writeJSON(w, http.StatusCreated, employeeToResponse(&emp))
}

// GetEmployee handles GET /employees/{id}.
func (s *Server) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := s.employees.Get(r.Context(), tenantID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employeeToResponse(&emp))
}

// UpdateEmployee handles PUT /employees/{id}.
func (s *Server) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	emp, err := s.employees.Update(r.Context(), tenantID(r), chirouter.URLParam(r, "id"), employeeInput(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employeeToResponse(&emp))
}

// DeleteEmployee handles DELETE /employees/{id}.
func (s *Server) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := s.employees.Delete(r.Context(), tenantID(r), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEmployees handles GET /employees.
func (s *Server) ListEmployees(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 0)

	emps, total, err := s.employees.List(r.Context(), tenantID(r), page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]EmployeeResponse, len(emps))
	for i := range emps {
		items[i] = employeeToResponse(&emps[i])
	}

	if pageSize <= 0 {
		pageSize = employeeuc.DefaultPageSize
	}
	writeJSON(w, http.StatusOK, EmployeeListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  (page-1)*pageSize+len(items) < total,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func tenantID(r *http.Request) string {
	return r.Header.Get(headerTenantID)
}

func employeeInput(req EmployeeRequest) employeeuc.Input {
	return employeeuc.Input{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Title:      req.Title,
		Department: req.Department,
		Email:      req.Email,
		PhotoURL:   req.PhotoURL,
		Skills:     req.Skills,
		Active:     req.Active,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTenantRequired,
		domain.ErrValidation,
		domain.ErrEmployeeNotFound,
		domain.ErrAlreadyExists,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
