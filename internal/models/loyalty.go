package models

// MaxStamps is the number of stamps on a full loyalty card.
const MaxStamps = 8

// LoyaltyAccount holds the point balance and the stamp card.
type LoyaltyAccount struct {
	Points    int `json:"points"`
	Stamps    int `json:"stamps"`
	MaxStamps int `json:"maxStamps"`
}

// CardComplete reports whether the card qualifies for a free item.
func (a LoyaltyAccount) CardComplete() bool {
	return a.Stamps >= MaxStamps
}

// PointsEntry is one line of the points history. Redemptions are stored with
// a negative PointsEarned.
type PointsEntry struct {
	ID           string `json:"id"`
	CoffeeName   string `json:"coffeeName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PointsEarned int    `json:"pointsEarned"`
}

// RewardItem is a drink that can be bought with points.
type RewardItem struct {
	ID             string `json:"id" yaml:"id"`
	ProductID      string `json:"productId" yaml:"productId"`
	CoffeeName     string `json:"coffeeName" yaml:"coffeeName"`
	PointsRequired int    `json:"pointsRequired" yaml:"points"`
	ValidUntil     string `json:"validUntil" yaml:"validUntil"`
}
