// Package loyalty tracks the point balance, its history and the stamp card.
package loyalty

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"codecup/internal/kvstore"
	"codecup/internal/models"
	"codecup/internal/observe"
)

const (
	dateLayout = "02 January"
	timeLayout = "3:04 PM"
)

type Ledger struct {
	mu      sync.Mutex
	account models.LoyaltyAccount
	history []models.PointsEntry
	rewards []models.RewardItem
	writer  *kvstore.Writer
	feed    observe.Feed[models.LoyaltyAccount]
	now     func() time.Time
}

func New(ctx context.Context, writer *kvstore.Writer, rewards []models.RewardItem) *Ledger {
	store := writer.Store()
	l := &Ledger{
		writer:  writer,
		rewards: append([]models.RewardItem(nil), rewards...),
		now:     time.Now,
	}
	l.account = models.LoyaltyAccount{
		Points:    max(loadInt(ctx, store, kvstore.KeyTotalPoints), 0),
		Stamps:    min(max(loadInt(ctx, store, kvstore.KeyLoyaltyStamps), 0), models.MaxStamps),
		MaxStamps: models.MaxStamps,
	}
	l.history = loadHistory(ctx, store)
	log.Printf("[LOYALTY] [INFO] loaded %d points, %d stamps, %d history entries",
		l.account.Points, l.account.Stamps, len(l.history))
	return l
}

func loadInt(ctx context.Context, store kvstore.Store, key string) int {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("[LOYALTY] [ERROR] reading %s failed, using 0: %v", key, err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[LOYALTY] [WARN] stored %s unreadable, using 0: %v", key, err)
		return 0
	}
	return n
}

func loadHistory(ctx context.Context, store kvstore.Store) []models.PointsEntry {
	raw, ok, err := store.Get(ctx, kvstore.KeyPointsHistory)
	if err != nil {
		log.Println("[LOYALTY] [ERROR] reading points history failed, starting empty:", err)
		return nil
	}
	if !ok {
		return nil
	}
	var history []models.PointsEntry
	if err := kvstore.DecodeBlob(raw, &history, nil); err != nil {
		log.Println("[LOYALTY] [WARN] stored points history unreadable, starting empty:", err)
		return nil
	}
	return history
}

// AddPoints adjusts the balance by n. The balance never drops below zero.
func (l *Ledger) AddPoints(n int) models.LoyaltyAccount {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setPoints(l.account.Points + n)
	l.publish()
	log.Printf("[LOYALTY] [INFO] %+d points, balance %d", n, l.account.Points)
	return l.account
}

// Redeem spends reward.PointsRequired. The balance is untouched when it is
// too low.
func (l *Ledger) Redeem(reward models.RewardItem) (models.LoyaltyAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if reward.PointsRequired < 0 {
		return l.account, fmt.Errorf("reward %s has negative cost", reward.ID)
	}
	if l.account.Points < reward.PointsRequired {
		return l.account, fmt.Errorf("reward %s needs %d, have %d: %w",
			reward.ID, reward.PointsRequired, l.account.Points, models.ErrInsufficientPoints)
	}

	l.setPoints(l.account.Points - reward.PointsRequired)
	l.prependHistory(l.entry(reward.CoffeeName+" (Redeemed)", -reward.PointsRequired))
	l.publish()
	log.Printf("[LOYALTY] [INFO] redeemed %s for %d points", reward.ID, reward.PointsRequired)
	return l.account, nil
}

// AddStamp adds one stamp unless the card is full. completed is true only
// for the call that fills the card.
func (l *Ledger) AddStamp() (account models.LoyaltyAccount, completed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.addStamp() {
		return l.account, false
	}
	l.publish()
	return l.account, l.account.CardComplete()
}

// RedeemFreeItem empties a full card.
func (l *Ledger) RedeemFreeItem() (models.LoyaltyAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.account.CardComplete() {
		return l.account, fmt.Errorf("%d of %d stamps: %w", l.account.Stamps, models.MaxStamps, models.ErrCardIncomplete)
	}
	l.setStamps(0)
	l.publish()
	log.Println("[LOYALTY] [INFO] free item redeemed")
	return l.account, nil
}

func (l *Ledger) ResetStamps() models.LoyaltyAccount {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.setStamps(0)
	l.publish()
	return l.account
}

// AccrueOrder awards floor(total × rate) points and one stamp for a completed
// order.
func (l *Ledger) AccrueOrder(order models.Order, rate float64) (models.PointsEntry, models.LoyaltyAccount) {
	points := PointsFor(order.TotalAmount, rate)

	l.mu.Lock()
	defer l.mu.Unlock()

	name := order.Summary
	if name == "" {
		name = "Order " + order.ID
	}
	entry := l.entry(name, points)
	l.setPoints(l.account.Points + points)
	l.prependHistory(entry)
	l.addStamp()
	l.publish()

	log.Printf("[LOYALTY] [INFO] order %s earned %d points", order.ID, points)
	return entry, l.account
}

// SeedHistory installs entries when there is no history yet.
func (l *Ledger) SeedHistory(entries []models.PointsEntry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.history) > 0 {
		return false
	}
	l.history = append([]models.PointsEntry(nil), entries...)
	l.persistHistory()
	return true
}

// PointsFor is floor(amount × rate), computed on the cent-rounded product so
// that e.g. 3.30 × 10 yields 33.
func PointsFor(amount, rate float64) int {
	if amount <= 0 || rate <= 0 {
		return 0
	}
	return int(math.Floor(models.RoundPrice(amount * rate)))
}

func (l *Ledger) Account() models.LoyaltyAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account
}

// History returns the points history, newest first.
func (l *Ledger) History() []models.PointsEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.PointsEntry{}, l.history...)
}

func (l *Ledger) Rewards() []models.RewardItem {
	return append([]models.RewardItem(nil), l.rewards...)
}

func (l *Ledger) RewardByID(id string) (models.RewardItem, error) {
	for _, r := range l.rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RewardItem{}, fmt.Errorf("reward %q: %w", id, models.ErrNotFound)
}

func (l *Ledger) Subscribe() (<-chan models.LoyaltyAccount, func()) {
	return l.feed.Subscribe()
}

func (l *Ledger) entry(name string, points int) models.PointsEntry {
	now := l.now()
	return models.PointsEntry{
		ID:           uuid.NewString(),
		CoffeeName:   name,
		Date:         now.Format(dateLayout),
		Time:         now.Format(timeLayout),
		PointsEarned: points,
	}
}

// The helpers below must be called with mu held.

func (l *Ledger) setPoints(points int) {
	if points < 0 {
		log.Printf("[LOYALTY] [WARN] balance %d clamped to 0", points)
		points = 0
	}
	l.account.Points = points
	l.writer.Put(kvstore.KeyTotalPoints, strconv.Itoa(points))
}

// addStamp adds one stamp unless the card is full and reports whether it did.
func (l *Ledger) addStamp() bool {
	if l.account.Stamps >= models.MaxStamps {
		return false
	}
	l.setStamps(l.account.Stamps + 1)
	return true
}

func (l *Ledger) setStamps(stamps int) {
	l.account.Stamps = stamps
	l.writer.Put(kvstore.KeyLoyaltyStamps, strconv.Itoa(stamps))
}

func (l *Ledger) prependHistory(entry models.PointsEntry) {
	next := make([]models.PointsEntry, 0, len(l.history)+1)
	next = append(next, entry)
	l.history = append(next, l.history...)
	l.persistHistory()
}

func (l *Ledger) persistHistory() {
	raw, err := kvstore.EncodeBlob(l.history)
	if err != nil {
		log.Println("[LOYALTY] [ERROR] encoding points history failed:", err)
		return
	}
	l.writer.Put(kvstore.KeyPointsHistory, raw)
}

func (l *Ledger) publish() {
	l.feed.Publish(l.account)
}
