// Package catalog serves the fixed coffee menu.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"codecup/internal/models"
)

// Provider answers lookups over an immutable product list.
type Provider struct {
	products []models.Product
	rewards  []models.RewardItem
}

// New copies products and rewards; callers may reuse their slices.
func New(products []models.Product, rewards []models.RewardItem) *Provider {
	return &Provider{
		products: append([]models.Product(nil), products...),
		rewards:  append([]models.RewardItem(nil), rewards...),
	}
}

// Default is the built-in four-coffee menu.
func Default() *Provider {
	return New(defaultProducts, defaultRewards)
}

type catalogFile struct {
	Products []models.Product    `yaml:"products"`
	Rewards  []models.RewardItem `yaml:"rewards"`
}

// LoadFile reads a YAML menu. Rewards fall back to the built-in list when the
// file has none.
func LoadFile(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return build(path, file.Products, file.Rewards)
}

// build validates products loaded from source. Categories default to hot
// coffee and rewards fall back to the built-in list.
func build(source string, products []models.Product, rewards []models.RewardItem) (*Provider, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog %s: no products", source)
	}

	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("catalog %s: product %d needs id and name", source, i)
		}
		if p.UnitPrice <= 0 {
			return nil, fmt.Errorf("catalog %s: product %s needs a positive price", source, p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate product id %s", source, p.ID)
		}
		seen[p.ID] = true
		if p.Category == "" {
			products[i].Category = CategoryHotCoffee
		}
	}

	if len(rewards) == 0 {
		rewards = defaultRewards
	}
	return New(products, rewards), nil
}

// All returns the products in catalog order.
func (p *Provider) All() []models.Product {
	return append([]models.Product(nil), p.products...)
}

func (p *Provider) ByID(id string) (models.Product, error) {
	for _, product := range p.products {
		if product.ID == id {
			return product, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
}

func (p *Provider) Popular() []models.Product {
	var out []models.Product
	for _, product := range p.products {
		if product.IsPopular {
			out = append(out, product)
		}
	}
	return out
}

// Rewards lists the drinks that can be redeemed with points.
func (p *Provider) Rewards() []models.RewardItem {
	return append([]models.RewardItem(nil), p.rewards...)
}

// Search matches query case-insensitively against name, description,
// category and ingredients. A blank query matches nothing.
func (p *Provider) Search(query string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []models.Product{}
	}

	out := []models.Product{}
	for _, product := range p.products {
		if matches(product, needle) {
			out = append(out, product)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPopular != b.IsPopular {
			return a.IsPopular
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Name < b.Name
	})
	return out
}

func matches(p models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) {
		return true
	}
	for _, ingredient := range p.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return true
		}
	}
	return false
}
