package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

func GetLoyalty(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /loyalty"
		defer handlePanic(c, route)

		account := s.Loyalty.Account()
		c.JSON(http.StatusOK, gin.H{
			"account":      account,
			"cardComplete": account.CardComplete(),
		})
	}
}

func GetPointsHistory(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /loyalty/history"
		defer handlePanic(c, route)

		history := s.Loyalty.History()
		if history == nil {
			history = []models.PointsEntry{}
		}
		c.JSON(http.StatusOK, history)
	}
}

func GetRewards(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /rewards"
		defer handlePanic(c, route)

		rewards := s.Loyalty.Rewards()
		if rewards == nil {
			rewards = []models.RewardItem{}
		}
		c.JSON(http.StatusOK, rewards)
	}
}

func RedeemReward(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /rewards/:id/redeem"
		defer handlePanic(c, route)

		account, reward, err := s.RedeemReward(c.Param("id"))
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"account": account,
			"reward":  reward,
		})
	}
}

func RedeemFreeItem(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /loyalty/stamps/redeem"
		defer handlePanic(c, route)

		account, err := s.RedeemFreeItem()
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"account": account})
	}
}

func ResetStamps(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /loyalty/stamps"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, gin.H{"account": s.Loyalty.ResetStamps()})
	}
}
