package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tilboard/internal/auth"
	"tilboard/internal/httputil"
)

func TestAuthMiddleware(t *testing.T) {
	tokens, err := auth.NewJWTProvider("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTProvider: %v", err)
	}
	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Auth(tokens)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{"valid token", "/api/projects", "Bearer " + token, http.StatusOK, "user-1"},
		{"missing header", "/api/projects", "", http.StatusUnauthorized, ""},
		{"not bearer", "/api/projects", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "/api/projects", "Bearer garbage", http.StatusUnauthorized, ""},
		{"health is public", "/health", "", http.StatusOK, ""},
		{"login is public", "/api/auth/login", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user id = %q, want %q", gotUserID, tt.wantUserID)
			}
		})
	}
}
