package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// NewRequest creates a new HTTP request for testing. Strings are sent as the
// raw body; any other non-nil value is JSON encoded.
func NewRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		if b != "" {
			reader = strings.NewReader(b)
		}
	default:
		bodyBytes, _ := json.Marshal(b)
		reader = bytes.NewReader(bodyBytes)
	}

	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// Serve runs a request through handler and returns the recorder.
func Serve(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

// DecodeJSON decodes a recorded response body into v.
func DecodeJSON(w *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v)
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Helper()
	Errorf(format string, args ...any)
}, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
