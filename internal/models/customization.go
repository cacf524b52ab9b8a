package models

import (
	"fmt"
	"strings"
)

type ShotType string

const (
	ShotSingle ShotType = "single"
	ShotDouble ShotType = "double"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

type Temperature string

const (
	TempHot  Temperature = "hot"
	TempCold Temperature = "cold"
)

type Milk string

const (
	MilkRegular Milk = "regular"
	MilkAlmond  Milk = "almond"
	MilkSoy     Milk = "soy"
	MilkOat     Milk = "oat"
)

type Sweetness string

const (
	SweetNone   Sweetness = "none"
	SweetLight  Sweetness = "light"
	SweetNormal Sweetness = "normal"
	SweetExtra  Sweetness = "extra"
)

const (
	MinIceLevel     = 1
	MaxIceLevel     = 3
	DefaultIceLevel = MaxIceLevel
)

var shotModifiers = map[ShotType]float64{
	ShotSingle: 0,
	ShotDouble: 0.5,
}

var sizeModifiers = map[Size]float64{
	SizeSmall:  -0.25,
	SizeMedium: 0,
	SizeLarge:  0.5,
}

// Customization describes how a drink is prepared. Only the shot and size
// affect the price; milk, sweetness and ice are cosmetic.
type Customization struct {
	Shot        ShotType    `json:"shot"`
	Size        Size        `json:"size"`
	Temperature Temperature `json:"temperature"`
	IceLevel    int         `json:"iceLevel,omitempty"`
	Milk        Milk        `json:"milk"`
	Sweetness   Sweetness   `json:"sweetness"`
}

// Normalize fills unset options with the defaults shown on the detail screen
// and clears the ice level for hot drinks.
func (c Customization) Normalize() Customization {
	c.Shot = ShotType(strings.ToLower(strings.TrimSpace(string(c.Shot))))
	c.Size = Size(strings.ToLower(strings.TrimSpace(string(c.Size))))
	c.Temperature = Temperature(strings.ToLower(strings.TrimSpace(string(c.Temperature))))
	c.Milk = Milk(strings.ToLower(strings.TrimSpace(string(c.Milk))))
	c.Sweetness = Sweetness(strings.ToLower(strings.TrimSpace(string(c.Sweetness))))

	if c.Shot == "" {
		c.Shot = ShotSingle
	}
	if c.Size == "" {
		c.Size = SizeMedium
	}
	if c.Temperature == "" {
		c.Temperature = TempHot
	}
	if c.Milk == "" {
		c.Milk = MilkRegular
	}
	if c.Sweetness == "" {
		c.Sweetness = SweetNormal
	}
	switch c.Temperature {
	case TempHot:
		c.IceLevel = 0
	case TempCold:
		if c.IceLevel == 0 {
			c.IceLevel = DefaultIceLevel
		}
	}
	return c
}

// Validate reports ErrInvalidCustomization for any option outside the menu.
// Call it on a normalized value.
func (c Customization) Validate() error {
	if _, ok := shotModifiers[c.Shot]; !ok {
		return fmt.Errorf("shot %q: %w", c.Shot, ErrInvalidCustomization)
	}
	if _, ok := sizeModifiers[c.Size]; !ok {
		return fmt.Errorf("size %q: %w", c.Size, ErrInvalidCustomization)
	}
	switch c.Temperature {
	case TempHot:
	case TempCold:
		if c.IceLevel < MinIceLevel || c.IceLevel > MaxIceLevel {
			return fmt.Errorf("ice level %d: %w", c.IceLevel, ErrInvalidCustomization)
		}
	default:
		return fmt.Errorf("temperature %q: %w", c.Temperature, ErrInvalidCustomization)
	}
	switch c.Milk {
	case MilkRegular, MilkAlmond, MilkSoy, MilkOat:
	default:
		return fmt.Errorf("milk %q: %w", c.Milk, ErrInvalidCustomization)
	}
	switch c.Sweetness {
	case SweetNone, SweetLight, SweetNormal, SweetExtra:
	default:
		return fmt.Errorf("sweetness %q: %w", c.Sweetness, ErrInvalidCustomization)
	}
	return nil
}

// PriceModifier is the amount added to the product's unit price.
func (c Customization) PriceModifier() float64 {
	return shotModifiers[c.Shot] + sizeModifiers[c.Size]
}

// Key identifies the customization inside a cart line key.
func (c Customization) Key() string {
	return fmt.Sprintf("%s-%s-%s%d-%s-%s", c.Shot, c.Size, c.Temperature, c.IceLevel, c.Milk, c.Sweetness)
}
