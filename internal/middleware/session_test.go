package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cart", SessionAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}
	return token
}

func doRequest(r *gin.Engine, authorization string) int {
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSessionAuthDisabledWithoutSecret(t *testing.T) {
	if code := doRequest(newRouter(""), ""); code != http.StatusOK {
		t.Fatalf("expected 200 with auth disabled, got %d", code)
	}
}

func TestSessionAuthAcceptsDeviceToken(t *testing.T) {
	token := signed(t, testSecret, jwt.MapClaims{
		"sub": SessionSubject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if code := doRequest(newRouter(testSecret), "Bearer "+token); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestSessionAuthRejects(t *testing.T) {
	r := newRouter(testSecret)
	expired := signed(t, testSecret, jwt.MapClaims{
		"sub": SessionSubject,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongSecret := signed(t, "other", jwt.MapClaims{"sub": SessionSubject})
	wrongSubject := signed(t, testSecret, jwt.MapClaims{"sub": "admin"})

	cases := map[string]string{
		"missing":       "",
		"not bearer":    "Token abc",
		"garbage":       "Bearer abc.def.ghi",
		"expired":       "Bearer " + expired,
		"wrong secret":  "Bearer " + wrongSecret,
		"wrong subject": "Bearer " + wrongSubject,
	}
	for name, header := range cases {
		if code := doRequest(r, header); code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, code)
		}
	}
}
