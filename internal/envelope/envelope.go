// Package envelope builds the uniform API response shapes.
package envelope

import (
	"time"

	"github.com/hrmslite/hrms/internal/apperr"
)

const DefaultMessage = "Success"

// Meta is pagination metadata attached to list responses.
type Meta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Success is the success shape. Meta is only set for list responses.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Failure is the error shape.
type Failure struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Details   []apperr.Detail `json:"details"`
	Timestamp string          `json:"timestamp"`
}

// Wrap returns a success envelope; an empty message becomes "Success".
func Wrap(data any, message string) Success {
	if message == "" {
		message = DefaultMessage
	}
	return Success{Success: true, Message: message, Data: data}
}

// List returns a success envelope carrying pagination meta.
func List(data any, meta Meta) Success {
	return Success{Success: true, Message: DefaultMessage, Data: data, Meta: &meta}
}

// Error returns an error envelope stamped with now.
func Error(message, code string, details []apperr.Detail, now time.Time) Failure {
	if details == nil {
		details = []apperr.Detail{}
	}
	return Failure{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Details:   details,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// Paginate derives pagination meta. Callers validate page and perPage >= 1.
func Paginate(page, perPage, total int) Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Offset converts page/perPage to a zero-based row offset.
func Offset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// Page is a validated page request.
type Page struct {
	Page    int
	PerPage int
}

// Offset returns the zero-based row offset for the page.
func (p Page) Offset() int { return Offset(p.Page, p.PerPage) }

// Meta derives pagination meta for total rows.
func (p Page) Meta(total int) Meta { return Paginate(p.Page, p.PerPage, total) }
