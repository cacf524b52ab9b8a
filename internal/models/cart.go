package models

// CartLine is one distinct (product, customization) entry in the cart.
// LineTotal always equals UnitPrice × Quantity rounded to cents.
type CartLine struct {
	Key           string        `json:"key"`
	ProductID     string        `json:"productId"`
	ProductName   string        `json:"productName"`
	UnitPrice     float64       `json:"unitPrice"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
	LineTotal     float64       `json:"lineTotal"`
}

// LineKey builds the merge key for a product and a normalized customization.
func LineKey(productID string, c Customization) string {
	return productID + "_" + c.Key()
}

// UnitPriceFor is the product price with the customization modifiers applied.
func UnitPriceFor(p Product, c Customization) float64 {
	return RoundPrice(p.UnitPrice + c.PriceModifier())
}
