package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"codecup/internal/middleware"
)

// CreateSession issues the bearer token accepted by middleware.SessionAuth.
// There are no accounts; the token only proves the caller talked to this
// server.
func CreateSession(jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/session"
		defer handlePanic(c, route)

		if jwtSecret == "" {
			respondWithError(c, http.StatusNotFound, route, "sessions are disabled")
			return
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"sub": middleware.SessionSubject,
			"iat": now.Unix(),
			"exp": now.Add(ttl).Unix(),
		}

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":     signed,
			"expiresIn": int64(ttl.Seconds()),
		})
	}
}
