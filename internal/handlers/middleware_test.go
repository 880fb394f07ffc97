package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wordscramble/internal/security"
)

func TestRequirePlayer(t *testing.T) {
	secret := []byte("test-secret")
	m := NewMiddleware(secret, security.NewRateLimiter(10, time.Minute))

	var gotToken string
	handler := m.RequirePlayer(func(w http.ResponseWriter, r *http.Request) {
		gotToken = GetPlayerToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/play/state", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/play/state", nil)
		req.AddCookie(&http.Cookie{Name: PlayerCookieName, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid cookie", func(t *testing.T) {
		signed, err := security.SignPlayerToken(secret, "session-123", time.Hour)
		if err != nil {
			t.Fatalf("SignPlayerToken() error = %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/play/state", nil)
		req.AddCookie(&http.Cookie{Name: PlayerCookieName, Value: signed})
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotToken != "session-123" {
			t.Errorf("token = %q, want %q", gotToken, "session-123")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := security.SignPlayerToken([]byte("other-secret"), "session-123", time.Hour)
		if err != nil {
			t.Fatalf("SignPlayerToken() error = %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/play/state", nil)
		req.AddCookie(&http.Cookie{Name: PlayerCookieName, Value: signed})
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestRateLimit(t *testing.T) {
	m := NewMiddleware([]byte("secret"), security.NewRateLimiter(2, time.Minute))
	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bank/words/add", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bank/words/add", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// A different IP has its own bucket.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/bank/words/add", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct", "192.168.1.5:51234", "", "192.168.1.5"},
		{"behind proxy", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"no port", "192.168.1.5", "", "192.168.1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
