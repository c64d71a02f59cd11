package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "exhibit-test" {
			t.Errorf("User-Agent = %q", got)
		}
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"artworks":[]}`))
		case "/missing":
			http.NotFound(w, r)
		case "/boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	c := NewClient(map[string]string{"User-Agent": "exhibit-test"})
	ctx := context.Background()

	body, err := c.Get(ctx, srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Get(/ok) error: %v", err)
	}
	if string(body) != `{"artworks":[]}` {
		t.Errorf("Get(/ok) body = %q", body)
	}

	if _, err := c.Get(ctx, srv.URL+"/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(/missing) error = %v, want ErrNotFound", err)
	}

	_, err = c.Get(ctx, srv.URL+"/boom")
	if !errors.Is(err, ErrNetwork) || !IsRetryable(err) {
		t.Errorf("Get(/boom) error = %v, want retryable ErrNetwork", err)
	}

	_, err = c.Get(ctx, srv.URL+"/forbidden")
	if !errors.Is(err, ErrNetwork) || IsRetryable(err) {
		t.Errorf("Get(/forbidden) error = %v, want permanent ErrNetwork", err)
	}
}

func TestClient_GetUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(nil).Get(context.Background(), url)
	if !IsRetryable(err) {
		t.Errorf("Get(closed server) error = %v, want retryable", err)
	}
}
