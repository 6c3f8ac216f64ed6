package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hrmslite/hrms/internal/apperr"
	"github.com/hrmslite/hrms/internal/auth"
	"github.com/hrmslite/hrms/internal/hrm"
	"github.com/hrmslite/hrms/internal/patch"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Dates and clock times validate as their wire strings; zero is empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d := field.Interface().(hrm.Date)
		if d.IsZero() {
			return ""
		}
		return d.String()
	}, hrm.Date{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		c := field.Interface().(hrm.Clock)
		if c.IsZero() {
			return ""
		}
		return c.String()
	}, hrm.Clock{})

	// Absent or null patch fields are skipped by omitempty.
	registerPatchField[string](v)
	registerPatchField[int](v)
	registerPatchField[int64](v)
	registerPatchField[float64](v)
	registerPatchField[bool](v)
	registerPatchField[hrm.Date](v)
	registerPatchField[hrm.Clock](v)
	registerPatchField[[]int64](v)

	_ = v.RegisterValidation("hrms_email", func(fl validator.FieldLevel) bool {
		email := strings.TrimSpace(fl.Field().String())
		if auth.IsLocalEmail(auth.NormalizeEmail(email)) {
			return true
		}
		return v.Var(email, "email") == nil
	})
	return v
}

func registerPatchField[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		f := field.Interface().(patch.Field[T])
		if !f.HasValue() {
			return nil
		}
		return f.Value
	}, patch.Field[T]{})
}

// bind decodes the body into dst and validates its tags.
func (a *API) bind(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return a.check(dst)
}

func (a *API) check(dst any) error {
	err := a.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]apperr.Detail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.Detail{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return apperr.Validation("Validation error", details...)
}

func fieldMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email", "hrms_email":
		return "value is not a valid email address"
	default:
		return "is invalid"
	}
}
