package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerPreservesFlusher(t *testing.T) {
	rec := httptest.NewRecorder()

	var sawFlusher bool
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		sawFlusher = ok
		if ok {
			w.WriteHeader(http.StatusOK)
			f.Flush()
		}
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/assistant/query", nil))

	if !sawFlusher {
		t.Fatal("expected the wrapped writer to implement http.Flusher")
	}
	if !rec.Flushed {
		t.Error("expected Flush to reach the underlying writer")
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
