package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 error document. All API errors are written in
// this shape with Content-Type application/problem+json.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// TraceID carries the request ID so clients can quote it in reports.
	TraceID string `json:"traceId"`

	// Errors holds field-level validation failures for 400 responses.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError pins a validation failure to a specific request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Problem type URIs.
const (
	ProblemTypeValidation      = "https://api.hazardroute.io/problems/validation-error"
	ProblemTypeUnauthorized    = "https://api.hazardroute.io/problems/unauthorized"
	ProblemTypeNotFound        = "https://api.hazardroute.io/problems/not-found"
	ProblemTypeConflict        = "https://api.hazardroute.io/problems/conflict"
	ProblemTypeTooManyRequests = "https://api.hazardroute.io/problems/too-many-requests"
	ProblemTypeInternal        = "https://api.hazardroute.io/problems/internal-error"
)

// NewProblem builds a Problem skeleton; callers fill Detail as needed.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return &Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		TraceID: traceID,
	}
}

// Write serialises the Problem onto w with problem+json content type.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblemWithDetail(problemType, title string, status int, traceID, detail string) *Problem {
	p := NewProblem(problemType, title, status, traceID)
	p.Detail = detail
	return p
}

// NewBadRequest builds a 400 validation problem with field errors.
func NewBadRequest(traceID, detail string, errors []FieldError) *Problem {
	p := newProblemWithDetail(ProblemTypeValidation, "Validation error", http.StatusBadRequest, traceID, detail)
	p.Errors = errors
	return p
}

// NewUnauthorized builds a 401 problem.
func NewUnauthorized(traceID, detail string) *Problem {
	return newProblemWithDetail(ProblemTypeUnauthorized, "Unauthorized", http.StatusUnauthorized, traceID, detail)
}

// NewNotFound builds a 404 problem.
func NewNotFound(traceID, detail string) *Problem {
	return newProblemWithDetail(ProblemTypeNotFound, "Not found", http.StatusNotFound, traceID, detail)
}

// NewConflict builds a 409 problem.
func NewConflict(traceID, detail string) *Problem {
	return newProblemWithDetail(ProblemTypeConflict, "Conflict", http.StatusConflict, traceID, detail)
}

// NewTooManyRequests builds a 429 problem.
func NewTooManyRequests(traceID, detail string) *Problem {
	return newProblemWithDetail(ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests, traceID, detail)
}

// NewInternalError builds a 500 problem.
func NewInternalError(traceID, detail string) *Problem {
	return newProblemWithDetail(ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, traceID, detail)
}
