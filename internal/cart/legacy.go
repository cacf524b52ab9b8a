package cart

import (
	"encoding/json"
	"strconv"
	"strings"

	"codecup/internal/models"
)

var legacySweetness = map[string]models.Sweetness{
	"NO_SUGAR": models.SweetNone,
	"LIGHT":    models.SweetLight,
	"NORMAL":   models.SweetNormal,
	"EXTRA":    models.SweetExtra,
}

// migrateLegacy converts the old string-map cart rows, e.g.
// {"coffeeId":"mocha","coffeePrice":"4.0","shotType":"DOUBLE","quantity":"2",...}.
// Rows that cannot be interpreted are skipped.
func migrateLegacy(data []byte) ([]models.CartLine, error) {
	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	var lines []models.CartLine
	for _, row := range rows {
		productID := strings.TrimSpace(row["coffeeId"])
		if productID == "" {
			continue
		}
		quantity, err := strconv.Atoi(row["quantity"])
		if err != nil || quantity < 1 {
			quantity = 1
		}
		basePrice, _ := strconv.ParseFloat(row["coffeePrice"], 64)

		c := models.Customization{
			Shot:      models.ShotType(strings.ToLower(row["shotType"])),
			Size:      models.Size(strings.ToLower(row["size"])),
			Milk:      models.Milk(strings.ToLower(row["milkType"])),
			Sweetness: legacySweetness[strings.ToUpper(row["sweetness"])],
		}
		if hot, err := strconv.ParseBool(row["isHot"]); err == nil && !hot {
			c.Temperature = models.TempCold
			if ice, err := strconv.Atoi(row["iceLevel"]); err == nil {
				c.IceLevel = ice
			}
		}
		c = c.Normalize()
		if c.Validate() != nil {
			continue
		}

		product := models.Product{ID: productID, Name: row["coffeeName"], UnitPrice: basePrice}
		unit := models.UnitPriceFor(product, c)
		if total, err := strconv.ParseFloat(row["totalPrice"], 64); err == nil && total > 0 {
			unit = models.RoundPrice(total / float64(quantity))
		}

		key := models.LineKey(productID, c)
		if idx := indexOf(lines, key); idx >= 0 {
			lines[idx].Quantity += quantity
			lines[idx].LineTotal = models.RoundPrice(lines[idx].UnitPrice * float64(lines[idx].Quantity))
			continue
		}
		lines = append(lines, models.CartLine{
			Key:           key,
			ProductID:     productID,
			ProductName:   product.Name,
			UnitPrice:     unit,
			Customization: c,
			Quantity:      quantity,
			LineTotal:     models.RoundPrice(unit * float64(quantity)),
		})
	}
	return lines, nil
}
