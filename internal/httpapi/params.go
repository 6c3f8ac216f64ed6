package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/hrm"
)

// pageLimit is the per_page default and ceiling of one list endpoint.
type pageLimit struct {
	def int
	max int
}

var (
	employeePages   = pageLimit{def: 20, max: 500}
	attendancePages = pageLimit{def: 20, max: 100}
	holidayPages    = pageLimit{def: 100, max: 200}
	catalogPages    = pageLimit{def: 50, max: 100}
)

// query collects typed query parameters and their validation failures.
type query struct {
	r       *http.Request
	details []apperr.Detail
}

func newQuery(r *http.Request) *query {
	return &query{r: r}
}

func (q *query) fail(field, message string) {
	q.details = append(q.details, apperr.Detail{Field: field, Message: message})
}

func (q *query) raw(name string) (string, bool) {
	v := strings.TrimSpace(q.r.URL.Query().Get(name))
	return v, v != ""
}

func (q *query) page(limit pageLimit) envelope.Page {
	p := envelope.Page{Page: 1, PerPage: limit.def}
	if n := q.integer("page"); n != nil {
		if *n < 1 {
			q.fail("page", "must be greater than or equal to 1")
		} else {
			p.Page = *n
		}
	}
	if n := q.integer("per_page"); n != nil {
		switch {
		case *n < 1:
			q.fail("per_page", "must be greater than or equal to 1")
		case *n > limit.max:
			q.fail("per_page", fmt.Sprintf("must be less than or equal to %d", limit.max))
		default:
			p.PerPage = *n
		}
	}
	return p
}

func (q *query) integer(name string) *int {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, "must be a valid integer")
		return nil
	}
	return &n
}

func (q *query) id(name string) *int64 {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		q.fail(name, "must be a positive integer")
		return nil
	}
	return &n
}

func (q *query) flag(name string) *bool {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, "must be a valid boolean")
		return nil
	}
	return &b
}

func (q *query) text(name string) *string {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (q *query) oneOf(name string, allowed ...string) *string {
	v := q.text(name)
	if v == nil {
		return nil
	}
	for _, a := range allowed {
		if *v == a {
			return v
		}
	}
	q.fail(name, "must be one of: "+strings.Join(allowed, ", "))
	return nil
}

func (q *query) date(name string) *hrm.Date {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	d, err := hrm.ParseDate(v)
	if err != nil {
		q.fail(name, "must be a valid date (YYYY-MM-DD)")
		return nil
	}
	return &d
}

// requiredDate is date with a missing value reported as a failure.
func (q *query) requiredDate(name string) hrm.Date {
	if _, ok := q.raw(name); !ok {
		q.fail(name, "Field required")
		return hrm.Date{}
	}
	if d := q.date(name); d != nil {
		return *d
	}
	return hrm.Date{}
}

func (q *query) err() error {
	if len(q.details) == 0 {
		return nil
	}
	return apperr.Validation("Validation error", q.details...)
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.FieldInvalid(name, "must be a positive integer")
	}
	return id, nil
}
