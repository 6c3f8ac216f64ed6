package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/audit"
	"github.com/hrmslite/hrms/internal/envelope"
	"github.com/hrmslite/hrms/internal/obs"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, envelope.Wrap(data, message))
}

func writeList(w http.ResponseWriter, data any, page envelope.Page, total int) {
	writeJSON(w, http.StatusOK, envelope.List(data, page.Meta(total)))
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError renders err as the error envelope. Errors outside the apperr
// taxonomy are logged and collapsed to a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae, ok := apperr.As(err)
	if !ok || ae.Status >= http.StatusInternalServerError {
		obs.Error("request_failed", map[string]any{
			"request_id": audit.RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
		ae = apperr.Internal()
	}
	message := ae.Message
	if message == "" {
		message = http.StatusText(ae.Status)
	}
	if ae.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, ae.Status, envelope.Error(message, ae.Code, ae.Details, time.Now()))
}

// decodeJSON reads exactly one JSON object into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return apperr.FieldInvalid("body", "unexpected data after JSON body")
		}
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		tooLargeErr *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return apperr.FieldInvalid("body", "request body is required")
	case errors.As(err, &tooLargeErr):
		return &apperr.Error{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    apperr.CodeBadRequest,
			Message: fmt.Sprintf("Request body exceeds %d bytes", tooLargeErr.Limit),
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.FieldInvalid("body", "malformed JSON")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.FieldInvalid(field, fmt.Sprintf("must be of type %s", typeErr.Type))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperr.FieldInvalid(field, "extra fields not permitted")
	default:
		return apperr.FieldInvalid("body", err.Error())
	}
}
