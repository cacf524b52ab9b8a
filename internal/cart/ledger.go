// Package cart holds the shopping cart: an ordered list of line items merged
// by product and customization.
package cart

import (
	"context"
	"fmt"
	"log"
	"sync"

	"codecup/internal/kvstore"
	"codecup/internal/models"
	"codecup/internal/observe"
)

// Ledger is safe for concurrent use. Every mutation is persisted through the
// writer and published to subscribers before the lock is released.
type Ledger struct {
	mu     sync.Mutex
	lines  []models.CartLine
	writer *kvstore.Writer
	feed   observe.Feed[[]models.CartLine]
}

// New loads the persisted cart. A missing or unreadable blob yields an empty
// cart.
func New(ctx context.Context, writer *kvstore.Writer) *Ledger {
	l := &Ledger{writer: writer}
	l.lines = load(ctx, writer.Store())
	log.Printf("[CART] [INFO] loaded %d lines", len(l.lines))
	return l
}

func load(ctx context.Context, store kvstore.Store) []models.CartLine {
	raw, ok, err := store.Get(ctx, kvstore.KeyCartItems)
	if err != nil {
		log.Println("[CART] [ERROR] reading cart failed, starting empty:", err)
		return nil
	}
	if !ok {
		return nil
	}

	var lines []models.CartLine
	if err := kvstore.DecodeBlob(raw, &lines, func(legacy []byte) error {
		migrated, err := migrateLegacy(legacy)
		lines = migrated
		return err
	}); err != nil {
		log.Println("[CART] [WARN] stored cart unreadable, starting empty:", err)
		return nil
	}
	return lines
}

// AddLine adds quantity units of product prepared as c. A line with the same
// key absorbs the quantity instead of a new line being appended.
func (l *Ledger) AddLine(product models.Product, c models.Customization, quantity int) (models.CartLine, error) {
	if quantity <= 0 {
		return models.CartLine{}, fmt.Errorf("add %s x%d: %w", product.ID, quantity, models.ErrInvalidQuantity)
	}
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return models.CartLine{}, err
	}

	key := models.LineKey(product.ID, c)
	unit := models.UnitPriceFor(product, c)
	added := models.RoundPrice(unit * float64(quantity))

	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines()
	for i := range lines {
		if lines[i].Key == key {
			lines[i].Quantity += quantity
			lines[i].LineTotal = models.RoundPrice(lines[i].LineTotal + added)
			l.commit(lines)
			log.Printf("[CART] [INFO] merged %d into %s, quantity %d", quantity, key, lines[i].Quantity)
			return lines[i], nil
		}
	}

	line := models.CartLine{
		Key:           key,
		ProductID:     product.ID,
		ProductName:   product.Name,
		UnitPrice:     unit,
		Customization: c,
		Quantity:      quantity,
		LineTotal:     added,
	}
	lines = append(lines, line)
	l.commit(lines)
	log.Printf("[CART] [INFO] added %s x%d", key, quantity)
	return line, nil
}

// UpdateQuantity sets the quantity of an existing line, keeping the per-unit
// price implied by its current total. A quantity below 1 removes the line and
// reports removed=true.
func (l *Ledger) UpdateQuantity(key string, quantity int) (line models.CartLine, removed bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines()
	idx := indexOf(lines, key)
	if idx < 0 {
		return models.CartLine{}, false, fmt.Errorf("cart line %q: %w", key, models.ErrNotFound)
	}

	if quantity < 1 {
		removedLine := lines[idx]
		lines = append(lines[:idx], lines[idx+1:]...)
		l.commit(lines)
		log.Printf("[CART] [INFO] quantity %d removed %s", quantity, key)
		return removedLine, true, nil
	}

	unit := lines[idx].LineTotal / float64(lines[idx].Quantity)
	lines[idx].Quantity = quantity
	lines[idx].LineTotal = models.RoundPrice(unit * float64(quantity))
	l.commit(lines)
	log.Printf("[CART] [INFO] %s quantity set to %d", key, quantity)
	return lines[idx], false, nil
}

// RemoveLine deletes the line with key; unknown keys are ignored.
func (l *Ledger) RemoveLine(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines()
	idx := indexOf(lines, key)
	if idx < 0 {
		return
	}
	lines = append(lines[:idx], lines[idx+1:]...)
	l.commit(lines)
	log.Println("[CART] [INFO] removed", key)
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.commit(nil)
	log.Println("[CART] [INFO] cleared")
}

// Drain empties the cart and returns what it held, in one step, so a
// concurrent add cannot slip between reading and clearing at checkout.
func (l *Ledger) Drain() []models.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines()
	if len(lines) > 0 {
		l.commit(nil)
		log.Printf("[CART] [INFO] drained %d lines", len(lines))
	}
	return lines
}

// Lines returns a copy of the cart in insertion order.
func (l *Ledger) Lines() []models.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLines()
}

func (l *Ledger) Line(key string) (models.CartLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := indexOf(l.lines, key); idx >= 0 {
		return l.lines[idx], nil
	}
	return models.CartLine{}, fmt.Errorf("cart line %q: %w", key, models.ErrNotFound)
}

func (l *Ledger) TotalPrice() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, line := range l.lines {
		total += line.LineTotal
	}
	return models.RoundPrice(total)
}

func (l *Ledger) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}
	return count
}

// Subscribe delivers the cart after every mutation.
func (l *Ledger) Subscribe() (<-chan []models.CartLine, func()) {
	return l.feed.Subscribe()
}

// commit must be called with mu held.
func (l *Ledger) commit(lines []models.CartLine) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	l.lines = lines

	raw, err := kvstore.EncodeBlob(lines)
	if err != nil {
		log.Println("[CART] [ERROR] encoding cart failed:", err)
	} else {
		l.writer.Put(kvstore.KeyCartItems, raw)
	}
	l.feed.Publish(l.copyLines())
}

func (l *Ledger) copyLines() []models.CartLine {
	return append([]models.CartLine(nil), l.lines...)
}

func indexOf(lines []models.CartLine, key string) int {
	for i := range lines {
		if lines[i].Key == key {
			return i
		}
	}
	return -1
}
