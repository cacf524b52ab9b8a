package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecup/internal/kvstore"
	"codecup/internal/models"
)

var (
	americano = models.Product{ID: "americano", Name: "Americano", UnitPrice: 3.00}
	mocha     = models.Product{ID: "mocha", Name: "Mocha", UnitPrice: 4.00}
)

func newLedger(t *testing.T) (*Ledger, *kvstore.Writer) {
	t.Helper()
	w := kvstore.NewWriter(kvstore.NewMemoryStore(), 16)
	t.Cleanup(func() { _ = w.Close(context.Background()) })
	return New(context.Background(), w), w
}

func TestAddLineMergesSameCustomization(t *testing.T) {
	l, _ := newLedger(t)
	medium := models.Customization{Size: models.SizeMedium, Shot: models.ShotSingle}

	first, err := l.AddLine(americano, medium, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.00, first.LineTotal)
	assert.Equal(t, 3.00, l.TotalPrice())

	merged, err := l.AddLine(americano, models.Customization{}, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Key, merged.Key)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 6.00, lines[0].LineTotal)
	assert.Equal(t, 6.00, l.TotalPrice())
	assert.Equal(t, 2, l.ItemCount())
}

func TestAddLineSeparatesCustomizations(t *testing.T) {
	l, _ := newLedger(t)

	_, err := l.AddLine(americano, models.Customization{Temperature: models.TempHot}, 1)
	require.NoError(t, err)
	cold, err := l.AddLine(americano, models.Customization{Temperature: models.TempCold}, 1)
	require.NoError(t, err)
	large, err := l.AddLine(americano, models.Customization{Size: models.SizeLarge, Shot: models.ShotDouble}, 2)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultIceLevel, cold.Customization.IceLevel)
	assert.Equal(t, 4.00, large.UnitPrice)
	assert.Equal(t, 8.00, large.LineTotal)
	assert.Len(t, l.Lines(), 3)
	assert.Equal(t, 14.00, l.TotalPrice())
}

func TestAddLineRejectsBadInput(t *testing.T) {
	l, _ := newLedger(t)

	_, err := l.AddLine(americano, models.Customization{}, 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	_, err = l.AddLine(americano, models.Customization{}, -3)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	_, err = l.AddLine(americano, models.Customization{Milk: "goat"}, 1)
	assert.ErrorIs(t, err, models.ErrInvalidCustomization)

	assert.Empty(t, l.Lines())
}

func TestUpdateQuantity(t *testing.T) {
	l, _ := newLedger(t)
	line, err := l.AddLine(mocha, models.Customization{Size: models.SizeSmall}, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.50, line.LineTotal)

	updated, removed, err := l.UpdateQuantity(line.Key, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 18.75, updated.LineTotal)
	assert.Equal(t, 18.75, l.TotalPrice())

	_, _, err = l.UpdateQuantity("nope", 2)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	l, _ := newLedger(t)
	line, err := l.AddLine(mocha, models.Customization{}, 1)
	require.NoError(t, err)

	_, removed, err := l.UpdateQuantity(line.Key, 0)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, l.Lines())
	assert.Equal(t, 0.0, l.TotalPrice())
}

func TestRemoveAndClear(t *testing.T) {
	l, _ := newLedger(t)
	a, err := l.AddLine(americano, models.Customization{}, 1)
	require.NoError(t, err)
	_, err = l.AddLine(mocha, models.Customization{}, 1)
	require.NoError(t, err)

	l.RemoveLine("missing")
	assert.Len(t, l.Lines(), 2)

	l.RemoveLine(a.Key)
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "mocha", lines[0].ProductID)

	_, err = l.Line(a.Key)
	assert.ErrorIs(t, err, models.ErrNotFound)

	l.Clear()
	assert.Empty(t, l.Lines())
	assert.Equal(t, 0, l.ItemCount())
}

func TestCartPersistsAcrossLedgers(t *testing.T) {
	store := kvstore.NewMemoryStore()
	w := kvstore.NewWriter(store, 16)
	defer w.Close(context.Background())

	l := New(context.Background(), w)
	_, err := l.AddLine(americano, models.Customization{}, 3)
	require.NoError(t, err)
	require.NoError(t, w.Flush(context.Background()))

	reloaded := New(context.Background(), w)
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 9.00, lines[0].LineTotal)
}

func TestCorruptedCartFallsBackToEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), kvstore.KeyCartItems, "{not json"))
	w := kvstore.NewWriter(store, 4)
	defer w.Close(context.Background())

	l := New(context.Background(), w)
	assert.Empty(t, l.Lines())
}

func TestLegacyCartIsMigrated(t *testing.T) {
	legacy := `[
		{"id":"1","coffeeId":"mocha","coffeeName":"Mocha","coffeePrice":"4.0","shotType":"DOUBLE","size":"LARGE",
		 "milkType":"OAT","sweetness":"NO_SUGAR","quantity":"2","totalPrice":"10.0","isHot":"true","iceLevel":"3"},
		{"id":"2","coffeeId":"americano","coffeeName":"Americano","coffeePrice":"3.0","shotType":"SINGLE","size":"MEDIUM",
		 "milkType":"REGULAR","sweetness":"NORMAL","quantity":"1","totalPrice":"3.0","isHot":"false","iceLevel":"2"},
		{"id":"3","coffeeName":"ghost"}
	]`
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), kvstore.KeyCartItems, legacy))
	w := kvstore.NewWriter(store, 4)
	defer w.Close(context.Background())

	l := New(context.Background(), w)
	lines := l.Lines()
	require.Len(t, lines, 2)

	assert.Equal(t, models.ShotDouble, lines[0].Customization.Shot)
	assert.Equal(t, models.MilkOat, lines[0].Customization.Milk)
	assert.Equal(t, models.SweetNone, lines[0].Customization.Sweetness)
	assert.Equal(t, 5.00, lines[0].UnitPrice)
	assert.Equal(t, 10.00, lines[0].LineTotal)

	assert.Equal(t, models.TempCold, lines[1].Customization.Temperature)
	assert.Equal(t, 2, lines[1].Customization.IceLevel)
	assert.Equal(t, 13.00, l.TotalPrice())
}

func TestSubscribersSeeEveryMutation(t *testing.T) {
	l, _ := newLedger(t)
	updates, cancel := l.Subscribe()
	defer cancel()

	_, err := l.AddLine(americano, models.Customization{}, 1)
	require.NoError(t, err)
	assert.Len(t, <-updates, 1)

	l.Clear()
	assert.Empty(t, <-updates)
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	l, w := newLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.AddLine(americano, models.Customization{}, 1)
		}()
	}
	wg.Wait()

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 50, lines[0].Quantity)
	assert.Equal(t, 150.00, lines[0].LineTotal)

	require.NoError(t, w.Flush(context.Background()))
	reloaded := New(context.Background(), w)
	assert.Equal(t, 50, reloaded.ItemCount())
}

func TestDrain(t *testing.T) {
	l, _ := newLedger(t)
	assert.Empty(t, l.Drain())

	_, err := l.AddLine(americano, models.Customization{}, 2)
	require.NoError(t, err)

	drained := l.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, 2, drained[0].Quantity)
	assert.Empty(t, l.Lines())
}
