// Package orders keeps the order list, most recent first.
package orders

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"codecup/internal/kvstore"
	"codecup/internal/models"
	"codecup/internal/observe"
)

type Ledger struct {
	mu     sync.Mutex
	orders []models.Order
	writer *kvstore.Writer
	feed   observe.Feed[[]models.Order]
	now    func() time.Time
}

func New(ctx context.Context, writer *kvstore.Writer) *Ledger {
	l := &Ledger{writer: writer, now: time.Now}
	l.orders = load(ctx, writer.Store())
	log.Printf("[ORDER] [INFO] loaded %d orders", len(l.orders))
	return l
}

func load(ctx context.Context, store kvstore.Store) []models.Order {
	raw, ok, err := store.Get(ctx, kvstore.KeyOrders)
	if err != nil {
		log.Println("[ORDER] [ERROR] reading orders failed, starting empty:", err)
		return nil
	}
	if !ok {
		return nil
	}

	var orders []models.Order
	if err := kvstore.DecodeBlob(raw, &orders, func(legacy []byte) error {
		migrated, err := migrateLegacy(legacy)
		orders = migrated
		return err
	}); err != nil {
		log.Println("[ORDER] [WARN] stored orders unreadable, starting empty:", err)
		return nil
	}
	return orders
}

// CreateFromCart places an ongoing order at the front of the list. The lines
// are copied; the cart is not touched.
func (l *Ledger) CreateFromCart(lines []models.CartLine, total float64, address string) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, models.OrderLine{
			ProductID:     line.ProductID,
			Name:          line.ProductName,
			Customization: line.Customization,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			LineTotal:     line.LineTotal,
		})
	}

	order := models.Order{
		ID:          uuid.NewString(),
		Lines:       orderLines,
		Summary:     summarize(orderLines),
		Status:      models.OrderOngoing,
		CreatedAt:   l.now().UTC(),
		TotalAmount: models.RoundPrice(total),
		Address:     address,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.Order, 0, len(l.orders)+1)
	next = append(next, order)
	next = append(next, l.orders...)
	l.commit(next)

	log.Printf("[ORDER] [INFO] order %s created, total %.2f", order.ID, order.TotalAmount)
	return order, nil
}

// MarkCompleted moves an ongoing order to completed. Completing an already
// completed order is a no-op reported with changed=false. Reserved statuses
// cannot be completed.
func (l *Ledger) MarkCompleted(id string) (order models.Order, changed bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return models.Order{}, false, fmt.Errorf("order %q: %w", id, models.ErrNotFound)
	}

	switch l.orders[idx].Status {
	case models.OrderCompleted:
		return l.orders[idx], false, nil
	case models.OrderOngoing:
	default:
		return l.orders[idx], false, fmt.Errorf("order %q is %s: %w", id, l.orders[idx].Status, models.ErrInvalidTransition)
	}

	next := l.copyOrders()
	next[idx].Status = models.OrderCompleted
	l.commit(next)

	log.Printf("[ORDER] [INFO] order %s completed", id)
	return next[idx], true, nil
}

// RecordPoints stores the loyalty points awarded for an order.
func (l *Ledger) RecordPoints(id string, points int) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return models.Order{}, fmt.Errorf("order %q: %w", id, models.ErrNotFound)
	}
	next := l.copyOrders()
	next[idx].PointsEarned = points
	l.commit(next)
	return next[idx], nil
}

// Seed installs orders when the ledger is empty and reports whether it did.
func (l *Ledger) Seed(orders []models.Order) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.orders) > 0 {
		return false
	}
	l.commit(append([]models.Order(nil), orders...))
	log.Printf("[ORDER] [INFO] seeded %d orders", len(orders))
	return true
}

func (l *Ledger) Get(id string) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.indexOf(id); idx >= 0 {
		return l.orders[idx], nil
	}
	return models.Order{}, fmt.Errorf("order %q: %w", id, models.ErrNotFound)
}

// All returns every order, most recent first.
func (l *Ledger) All() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyOrders()
}

// OngoingView lists orders that have not reached a final status.
func (l *Ledger) OngoingView() []models.Order {
	return l.filter(func(o models.Order) bool { return !isFinal(o.Status) })
}

// HistoryView lists completed (and cancelled) orders.
func (l *Ledger) HistoryView() []models.Order {
	return l.filter(func(o models.Order) bool { return isFinal(o.Status) })
}

func (l *Ledger) Subscribe() (<-chan []models.Order, func()) {
	return l.feed.Subscribe()
}

func (l *Ledger) filter(keep func(models.Order) bool) []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.Order{}
	for _, o := range l.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func (l *Ledger) commit(orders []models.Order) {
	l.orders = orders

	raw, err := kvstore.EncodeBlob(orders)
	if err != nil {
		log.Println("[ORDER] [ERROR] encoding orders failed:", err)
	} else {
		l.writer.Put(kvstore.KeyOrders, raw)
	}
	l.feed.Publish(l.copyOrders())
}

func (l *Ledger) copyOrders() []models.Order {
	return append([]models.Order(nil), l.orders...)
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.orders {
		if l.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func isFinal(s models.OrderStatus) bool {
	return s == models.OrderCompleted || s == models.OrderCancelled
}

func summarize(lines []models.OrderLine) string {
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return lines[0].Name
	default:
		return fmt.Sprintf("%s +%d more", lines[0].Name, len(lines)-1)
	}
}
