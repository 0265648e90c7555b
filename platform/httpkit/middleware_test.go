package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type testJWTConfig struct {
	secret string
}

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

const testSecret = "test-secret-for-middleware"

func signToken(t *testing.T, secret, tokenType string, sub string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"type": tokenType,
		"role": "rt",
		"exp":  time.Now().Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthTestRouter(cfg testJWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(cfg), func(c *gin.Context) {
		userID := c.MustGet(ContextUserIDKey).(uuid.UUID)
		role := c.MustGet(ContextRoleKey).(string)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	cfg := testJWTConfig{secret: testSecret}
	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		query      string
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + signToken(t, testSecret, "access", userID.String(), time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing secret",
			authHeader: "Bearer " + signToken(t, "other-secret", "access", userID.String(), time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, testSecret, "access", userID.String(), -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected",
			authHeader: "Bearer " + signToken(t, testSecret, "refresh", userID.String(), time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed subject",
			authHeader: "Bearer " + signToken(t, testSecret, "access", "not-a-uuid", time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token via query param",
			query:      "?token=" + signToken(t, testSecret, "access", userID.String(), time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
	}

	r := newAuthTestRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected"+tt.query, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		role       interface{}
		setRole    bool
		allowed    []string
		wantStatus int
	}{
		{name: "role allowed", role: "admin", setRole: true, allowed: []string{"admin", "rw"}, wantStatus: http.StatusOK},
		{name: "second role allowed", role: "rw", setRole: true, allowed: []string{"admin", "rw"}, wantStatus: http.StatusOK},
		{name: "role denied", role: "penduduk", setRole: true, allowed: []string{"admin"}, wantStatus: http.StatusForbidden},
		{name: "role missing", setRole: false, allowed: []string{"admin"}, wantStatus: http.StatusForbidden},
		{name: "role wrong type", role: 42, setRole: true, allowed: []string{"admin"}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/guarded", func(c *gin.Context) {
				if tt.setRole {
					c.Set(ContextRoleKey, tt.role)
				}
			}, RequireRole(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123", wantOK: true},
		{name: "empty header", header: "", wantOK: false},
		{name: "missing prefix", header: "abc123", wantOK: false},
		{name: "prefix only", header: "Bearer ", wantOK: false},
		{name: "prefix with spaces", header: "Bearer    ", wantOK: false},
		{name: "lowercase prefix rejected", header: "bearer abc123", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
