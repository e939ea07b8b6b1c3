package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/capacity-api/internal/errs"
	"github.com/labstack/echo/v4"
)

type rangeRequest struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}

func (r *rangeRequest) Validate() error {
	return Struct(r)
}

type customRequest struct{}

func (customRequest) Validate() error {
	return CustomValidationErrors{{Field: "window", Message: "is too wide"}}
}

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	req := &rangeRequest{}
	if err := BindAndValidate(newContext("/x?from=2024-01-01&to=2024-02-01"), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.From != "2024-01-01" || req.To != "2024-02-01" {
		t.Fatalf("bound %+v", req)
	}
}

func TestBindAndValidate_FieldErrorsUseQueryNames(t *testing.T) {
	err := BindAndValidate(newContext("/x?from=01-01-2024"), &rangeRequest{})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Detail != "Validation failed" {
		t.Fatalf("detail = %q", httpErr.Detail)
	}

	want := map[string]string{
		"from": "must be a date in YYYY-MM-DD format",
		"to":   "is required",
	}
	if len(httpErr.Errors) != len(want) {
		t.Fatalf("errors = %+v", httpErr.Errors)
	}
	for _, fe := range httpErr.Errors {
		if want[fe.Field] != fe.Error {
			t.Fatalf("field %q: error = %q, want %q", fe.Field, fe.Error, want[fe.Field])
		}
	}
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext("/x"), &customRequest{})

	httpErr := asHTTPError(t, err)
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "window" {
		t.Fatalf("errors = %+v", httpErr.Errors)
	}
}

func TestLayoutHint(t *testing.T) {
	if got := layoutHint("2006-01-02"); got != "YYYY-MM-DD" {
		t.Fatalf("layoutHint = %q", got)
	}
}
