package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Status string `json:"status"`
}

func TestGetJSON(t *testing.T) {
	t.Run("accepted status decodes", func(t *testing.T) {
		var gotMethod, gotAccept string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAccept = r.Header.Get("Accept")
			w.WriteHeader(http.StatusGone)
			_, _ = w.Write([]byte(`{"status":"expired"}`))
		}))
		defer ts.Close()

		var p payload
		code, err := GetJSON(context.Background(), ts.Client(), ts.URL+"/share/abc", &p, http.StatusOK, http.StatusGone)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != http.StatusGone {
			t.Fatalf("code = %d, want 410", code)
		}
		if p.Status != "expired" {
			t.Fatalf("status = %q, want expired", p.Status)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if gotAccept != "application/json" {
			t.Fatalf("Accept = %q, want application/json", gotAccept)
		}
	})

	t.Run("unexpected status -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("busy"))
		}))
		defer ts.Close()

		code, err := GetJSON(context.Background(), nil, ts.URL, &payload{}, http.StatusOK)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if code != http.StatusServiceUnavailable {
			t.Fatalf("code = %d, want 503", code)
		}
		if !strings.Contains(err.Error(), "request failed: 503") || !strings.Contains(err.Error(), "busy") {
			t.Fatalf("error = %q, want status and body", err.Error())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer ts.Close()

		_, err := GetJSON(context.Background(), nil, ts.URL, &payload{}, http.StatusOK)
		if err == nil || !strings.Contains(err.Error(), "decode response") {
			t.Fatalf("error = %v, want decode error", err)
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := GetJSON(context.Background(), nil, ts.URL, &payload{}, http.StatusOK)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if strings.Contains(err.Error(), "request failed") {
			t.Fatalf("got wrong kind of error: %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := GetJSON(ctx, nil, ts.URL, &payload{}, http.StatusOK)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}
