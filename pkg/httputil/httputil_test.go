package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/forcefield/pkg/errors"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]int{"n": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["n"] != 3 {
		t.Errorf("body = %v", body)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid graph", errors.New(errors.ErrCodeInvalidGraph, "bad"), http.StatusBadRequest},
		{"invalid theme", errors.New(errors.ErrCodeInvalidTheme, "bad"), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeGraphNotFound, "gone"), http.StatusNotFound},
		{"internal", errors.New(errors.ErrCodeInternal, "boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForError(tt.err); got != tt.want {
				t.Errorf("StatusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", "nope"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != string(errors.ErrCodeInvalidTheme) {
		t.Errorf("code = %q", body.Code)
	}
	if !strings.Contains(body.Error, "nope") {
		t.Errorf("error message = %q", body.Error)
	}
}

func TestReadBodyLimit(t *testing.T) {
	big := bytes.Repeat([]byte("x"), MaxBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big))

	if _, err := ReadBody(req); err == nil {
		t.Error("expected error for oversized body")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok"))
	data, err := ReadBody(req)
	if err != nil || string(data) != "ok" {
		t.Errorf("ReadBody() = %q, %v", data, err)
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a": 1}`))
	var dst map[string]int
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("DecodeJSON() failed: %v", err)
	}
	if dst["a"] != 1 {
		t.Errorf("dst = %v", dst)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad"))
	if err := DecodeJSON(req, &dst); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid-input code, got %v", err)
	}
}

func TestObserveMiddleware(t *testing.T) {
	handler := Observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
