package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

type updateProfileRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

type updateProfileFieldRequest struct {
	Value string `json:"value"`
}

func GetProfile(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /profile"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, s.Profile.Get())
	}
}

// UpdateProfile replaces the contact details. The image URI is kept; it is
// edited with PATCH /profile/profile_image_uri.
func UpdateProfile(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /profile"
		defer handlePanic(c, route)

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updated := s.Profile.UpdateDetails(models.UserProfile{
			FullName:    strings.TrimSpace(req.FullName),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Email:       strings.TrimSpace(req.Email),
			Address:     strings.TrimSpace(req.Address),
		})
		c.JSON(http.StatusOK, updated)
	}
}

// UpdateProfileField edits a single field by its storage name, e.g.
// PATCH /profile/phone_number.
func UpdateProfileField(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /profile/:field"
		defer handlePanic(c, route)

		var req updateProfileFieldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updated, err := s.Profile.UpdateField(c.Param("field"), strings.TrimSpace(req.Value))
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
