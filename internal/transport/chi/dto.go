package chi

import (
	domemp "github.com/stafflink/staffdex/internal/domain/employee"
	"github.com/stafflink/staffdex/internal/domain/search/query"
)

// ErrorCode is a machine-readable error discriminator.
type ErrorCode string

const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeTenantRequired   ErrorCode = "tenant_required"
	ErrorCodeNotFound         ErrorCode = "employee_not_found"
	ErrorCodeAlreadyExists    ErrorCode = "already_exists"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query    string         `json:"query"`
	Filters  *SearchFilters `json:"filters,omitempty"`
	Page     int            `json:"page,omitempty"`
	PageSize int            `json:"page_size,omitempty"`
	Options  *SearchOptions `json:"options,omitempty"`
}

// SearchFilters narrows search results by structured attributes.
type SearchFilters struct {
	Department string   `json:"department,omitempty"`
	Title      string   `json:"title,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

// SearchOptions tunes ranking behavior per request.
type SearchOptions struct {
	ExactWeight     float64 `json:"exact_weight,omitempty"`
	FuzzyWeight     float64 `json:"fuzzy_weight,omitempty"`
	PartialWeight   float64 `json:"partial_weight,omitempty"`
	FuzzyThreshold  float64 `json:"fuzzy_threshold,omitempty"`
	IncludeInactive bool    `json:"include_inactive,omitempty"`
}

// EmployeeRequest is the create/update body for a directory entry.
type EmployeeRequest struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Title      string   `json:"title,omitempty"`
	Department string   `json:"department,omitempty"`
	Email      string   `json:"email"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Active     bool     `json:"active"`
}

// EmployeeResponse is the wire form of a directory entry.
type EmployeeResponse struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Title      string   `json:"title,omitempty"`
	Department string   `json:"department,omitempty"`
	Email      string   `json:"email"`
	PhotoURL   string   `json:"photo_url,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Active     bool     `json:"active"`
}

// EmployeeListResponse is a page of directory entries.
type EmployeeListResponse struct {
	Items    []EmployeeResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	HasMore  bool               `json:"has_more"`
}

func queryFromRequest(req SearchRequest) (query.Query, error) {
	var filters query.Filters
	if f := req.Filters; f != nil {
		filters = query.NewFilters(f.Department, f.Title, f.Skills, f.Active)
	}

	var opts query.Options
	if o := req.Options; o != nil {
		opts = query.Options{
			Weights: query.Weights{
				Exact:   o.ExactWeight,
				Fuzzy:   o.FuzzyWeight,
				Partial: o.PartialWeight,
			},
			FuzzyThreshold:  o.FuzzyThreshold,
			IncludeInactive: o.IncludeInactive,
		}
	}

	return query.New(req.Query, filters, req.Page, req.PageSize, opts)
}

func employeeToResponse(e *domemp.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID(),
		FirstName:  e.FirstName(),
		LastName:   e.LastName(),
		Title:      e.Title(),
		Department: e.Department(),
		Email:      e.Email(),
		PhotoURL:   e.PhotoURL(),
		Skills:     e.Skills(),
		Active:     e.Active(),
	}
}
