// Package shop coordinates the ledgers for operations that span more than
// one of them: checkout, order completion and reward redemption.
package shop

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"codecup/internal/cart"
	"codecup/internal/catalog"
	"codecup/internal/kvstore"
	"codecup/internal/loyalty"
	"codecup/internal/metrics"
	"codecup/internal/models"
	"codecup/internal/orders"
	"codecup/internal/profile"
	"codecup/internal/search"
)

type Service struct {
	Catalog *catalog.Provider
	Cart    *cart.Ledger
	Orders  *orders.Ledger
	Loyalty *loyalty.Ledger
	Recent  *search.RecentLog
	Profile *profile.Store
	Metrics *metrics.Recorder

	PointsRate float64
}

// Open loads every ledger from the writer's store.
func Open(ctx context.Context, writer *kvstore.Writer, provider *catalog.Provider, rec *metrics.Recorder, pointsRate float64) *Service {
	return &Service{
		Catalog:    provider,
		Cart:       cart.New(ctx, writer),
		Orders:     orders.New(ctx, writer),
		Loyalty:    loyalty.New(ctx, writer, provider.Rewards()),
		Recent:     search.NewRecentLog(ctx, writer),
		Profile:    profile.New(ctx, writer),
		Metrics:    rec,
		PointsRate: pointsRate,
	}
}

// AddToCart looks the product up in the catalog before adding it.
func (s *Service) AddToCart(productID string, c models.Customization, quantity int) (models.CartLine, error) {
	product, err := s.Catalog.ByID(productID)
	if err != nil {
		return models.CartLine{}, err
	}
	line, err := s.Cart.AddLine(product, c, quantity)
	if err != nil {
		return models.CartLine{}, err
	}
	s.Metrics.CartLinesAdded.Inc()
	return line, nil
}

// Search runs query against the catalog and remembers non-blank queries.
func (s *Service) Search(query string) []models.Product {
	results := s.Catalog.Search(query)
	if strings.TrimSpace(query) != "" {
		s.Recent.Add(query)
		s.Metrics.Searches.Inc()
	}
	return results
}

// Checkout turns the cart into an ongoing order and empties the cart. A blank
// address falls back to the profile address.
func (s *Service) Checkout(address string) (models.Order, error) {
	if strings.TrimSpace(address) == "" {
		address = s.Profile.Get().Address
	}

	lines := s.Cart.Drain()
	if len(lines) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	var total float64
	for _, line := range lines {
		total += line.LineTotal
	}

	order, err := s.Orders.CreateFromCart(lines, models.RoundPrice(total), address)
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}
	s.Metrics.OrdersCreated.Inc()
	return order, nil
}

// CompleteOrder marks the order completed. Points and a stamp are awarded
// only by the call that changes the status, so repeating it never accrues
// twice; such calls return a nil entry.
func (s *Service) CompleteOrder(id string) (models.Order, *models.PointsEntry, error) {
	order, changed, err := s.Orders.MarkCompleted(id)
	if err != nil {
		return order, nil, err
	}
	if !changed {
		return order, nil, nil
	}

	entry, account := s.Loyalty.AccrueOrder(order, s.PointsRate)
	order, err = s.Orders.RecordPoints(id, entry.PointsEarned)
	if err != nil {
		return order, nil, err
	}

	s.Metrics.OrdersCompleted.Inc()
	s.Metrics.PointsAwarded.Add(float64(entry.PointsEarned))
	log.Printf("[SHOP] [INFO] order %s completed: +%d points, %d/%d stamps",
		id, entry.PointsEarned, account.Stamps, account.MaxStamps)
	return order, &entry, nil
}

func (s *Service) RedeemReward(rewardID string) (models.LoyaltyAccount, models.RewardItem, error) {
	reward, err := s.Loyalty.RewardByID(rewardID)
	if err != nil {
		return s.Loyalty.Account(), models.RewardItem{}, err
	}
	account, err := s.Loyalty.Redeem(reward)
	if err != nil {
		return account, reward, err
	}
	s.Metrics.RewardsRedeemed.WithLabelValues("points").Inc()
	return account, reward, nil
}

func (s *Service) RedeemFreeItem() (models.LoyaltyAccount, error) {
	account, err := s.Loyalty.RedeemFreeItem()
	if err != nil {
		return account, err
	}
	s.Metrics.RewardsRedeemed.WithLabelValues("stamps").Inc()
	return account, nil
}

// SeedDemo fills empty order and points ledgers with sample data.
func (s *Service) SeedDemo(now time.Time) {
	address := models.DefaultProfile().Address
	seededOrders := s.Orders.Seed([]models.Order{
		{
			ID:          "demo-1",
			Summary:     "Americano",
			Status:      models.OrderOngoing,
			CreatedAt:   now.Add(-45 * time.Minute).UTC(),
			TotalAmount: 3.00,
			Address:     address,
		},
		{
			ID:          "demo-2",
			Summary:     "Cafe Latte",
			Status:      models.OrderOngoing,
			CreatedAt:   now.Add(-90 * time.Minute).UTC(),
			TotalAmount: 3.50,
			Address:     address,
		},
	})
	seededHistory := s.Loyalty.SeedHistory([]models.PointsEntry{
		{ID: "demo-1", CoffeeName: "Americano", Date: "24 June", Time: "12:30 PM", PointsEarned: 12},
		{ID: "demo-2", CoffeeName: "Cafe Latte", Date: "24 June", Time: "11:45 AM", PointsEarned: 10},
	})
	log.Printf("[SHOP] [INFO] demo seed: orders=%t history=%t", seededOrders, seededHistory)
}
