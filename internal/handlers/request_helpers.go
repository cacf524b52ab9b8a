package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"codecup/internal/models"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondWithLedgerError maps the ledger sentinel errors onto HTTP statuses.
func respondWithLedgerError(c *gin.Context, route string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, err.Error())
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidCustomization):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, models.ErrInsufficientPoints),
		errors.Is(err, models.ErrCardIncomplete),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrEmptyCart):
		respondWithError(c, http.StatusConflict, route, err.Error())
	default:
		log.Printf("[%s] [ERROR] %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "internal server error")
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
