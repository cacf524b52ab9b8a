package models

import "math"

// Product is a catalog entry. Products are created once when the catalog
// loads and never mutated afterwards.
type Product struct {
	ID          string     `bson:"_id" json:"id" yaml:"id"`
	Name        string     `bson:"name" json:"name" yaml:"name"`
	UnitPrice   float64    `bson:"unitPrice" json:"unitPrice" yaml:"price"`
	Description string     `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
	Category    string     `bson:"category" json:"category" yaml:"category"`
	Rating      float64    `bson:"rating" json:"rating" yaml:"rating"`
	IsPopular   bool       `bson:"isPopular" json:"isPopular" yaml:"popular"`
	Ingredients StringList `bson:"ingredients" json:"ingredients" yaml:"ingredients"`
}

// RoundPrice rounds an amount to whole cents.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
