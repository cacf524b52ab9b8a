package orders

import (
	"encoding/json"
	"strings"

	"codecup/internal/models"
)

type legacyOrder struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`
	CoffeeName  string  `json:"coffeeName"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
	Points      int     `json:"loyaltyPointsEarned"`
	Items       []struct {
		Coffee struct {
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"coffee"`
		Quantity  int     `json:"quantity"`
		ItemPrice float64 `json:"itemPrice"`
	} `json:"items"`
}

// migrateLegacy reads the old bare order array, where statuses are upper-case
// enum names and single-coffee orders only carry coffeeName and price.
func migrateLegacy(data []byte) ([]models.Order, error) {
	var old []legacyOrder
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(old))
	for _, o := range old {
		if o.ID == "" {
			continue
		}
		status := models.OrderStatus(strings.ToLower(o.Status))
		if !status.Valid() {
			status = models.OrderOngoing
		}

		var lines []models.OrderLine
		for _, item := range o.Items {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			lines = append(lines, models.OrderLine{
				ProductID:     item.Coffee.ID,
				Name:          item.Coffee.Name,
				Customization: models.Customization{}.Normalize(),
				Quantity:      qty,
				UnitPrice:     item.ItemPrice,
				LineTotal:     models.RoundPrice(item.ItemPrice * float64(qty)),
			})
		}

		total := o.TotalAmount
		if total == 0 {
			total = o.Price
		}
		summary := o.CoffeeName
		if summary == "" {
			summary = summarize(lines)
		}

		orders = append(orders, models.Order{
			ID:           o.ID,
			Lines:        lines,
			Summary:      summary,
			Status:       status,
			TotalAmount:  models.RoundPrice(total),
			Address:      o.Address,
			PointsEarned: o.Points,
		})
	}
	return orders, nil
}
