package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type recordingResponseHandler struct {
	JSONResponseHandler
	attributes []interface{}
}

func (h *recordingResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	h.attributes = append(h.attributes, result)
	h.JSONResponseHandler.AddAttributes(txn, result)
}

func newTransactionContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("capacity-api-test"),
		newrelic.ConfigEnabled(false),
	)
	if err != nil {
		t.Fatalf("new relic application: %v", err)
	}
	txn := app.StartTransaction("GET /capacity")
	t.Cleanup(txn.End)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(newrelic.NewContext(req.Context(), txn))
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestHandleRequestAddsAttributesOnceWithResult(t *testing.T) {
	c, rec := newTransactionContext(t, "/capacity?date_from=2024-01-01&date_to=2024-01-31")
	rh := &recordingResponseHandler{JSONResponseHandler: JSONResponseHandler{status: http.StatusOK}}

	result := []string{"a", "b"}
	err := handleRequest(c, NewGetCapacityRequest(), func(echo.Context, *GetCapacityRequest) (interface{}, error) {
		return result, nil
	}, rh)
	if err != nil {
		t.Fatalf("handleRequest: %v", err)
	}

	if len(rh.attributes) != 1 {
		t.Fatalf("AddAttributes called %d times, want 1", len(rh.attributes))
	}
	if got, ok := rh.attributes[0].([]string); !ok || len(got) != len(result) {
		t.Fatalf("AddAttributes received %#v, want the handler result", rh.attributes[0])
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleRequestSkipsAttributesOnValidationFailure(t *testing.T) {
	c, _ := newTransactionContext(t, "/capacity?date_from=2024-01-01")
	rh := &recordingResponseHandler{JSONResponseHandler: JSONResponseHandler{status: http.StatusOK}}

	err := handleRequest(c, NewGetCapacityRequest(), func(echo.Context, *GetCapacityRequest) (interface{}, error) {
		t.Error("handler must not run when validation fails")
		return nil, nil
	}, rh)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if len(rh.attributes) != 0 {
		t.Fatalf("AddAttributes called %d times, want 0", len(rh.attributes))
	}
}

func TestJSONResponseHandlerAddAttributesNilSafe(t *testing.T) {
	JSONResponseHandler{}.AddAttributes(nil, []int{1})
	JSONResponseHandler{}.AddAttributes(&newrelic.Transaction{}, nil)
}
