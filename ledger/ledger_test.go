package ledger

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, n int) *Store {
	t.Helper()
	s := New(log.New(io.Discard), 42, n, epoch)
	s.Latency = 0
	return s
}

func TestNewDeterministic(t *testing.T) {
	a := newStore(t, 20).List()
	b := newStore(t, 20).List()
	require.Len(t, a, 20)
	assert.Equal(t, a, b)
}

func TestListOrdered(t *testing.T) {
	txs := newStore(t, 50).List()
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Date.After(txs[i-1].Date), "transaction %d is newer than its predecessor", i)
	}
}

func TestListIsCopy(t *testing.T) {
	s := newStore(t, 3)
	txs := s.List()
	txs[0].Merchant = "changed"
	assert.NotEqual(t, "changed", s.List()[0].Merchant)
}

func TestDelete(t *testing.T) {
	s := newStore(t, 5)
	id := s.List()[2].ID

	require.NoError(t, s.Delete(id))
	assert.Equal(t, 4, s.Len())
	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecategorize(t *testing.T) {
	s := newStore(t, 5)
	id := s.List()[0].ID

	require.NoError(t, s.Recategorize(id, "Entertainment"))
	tx, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Entertainment", tx.Category)

	err = s.Recategorize(id, "Nonsense")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = s.Recategorize(9999, "Dining")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefresh(t *testing.T) {
	s := newStore(t, 5)
	before := s.Len()

	added := 0
	for range 10 {
		n, err := s.Refresh(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 2)
		added += n
	}
	assert.Equal(t, before+added, s.Len())

	txs := s.List()
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Date.After(txs[i-1].Date))
	}
}

func TestRefreshCanceled(t *testing.T) {
	s := newStore(t, 5)
	s.Latency = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := s.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Equal(t, 5, s.Len())
}

func TestRefreshConcurrent(t *testing.T) {
	s := newStore(t, 10)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	for _, tx := range s.List() {
		_ = s.Recategorize(tx.ID, "Dining")
	}
	wg.Wait()
	assert.GreaterOrEqual(t, s.Len(), 10)
}

func TestTotal(t *testing.T) {
	s := newStore(t, 0)
	assert.True(t, s.Total().Equal(decimal.Zero))

	s = newStore(t, 8)
	want := decimal.Zero
	for _, tx := range s.List() {
		want = want.Add(tx.Amount)
	}
	assert.True(t, want.Equal(s.Total()), "got %s, want %s", s.Total(), want)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Contains(t, cats, Uncategorized)
	cats[0] = "mutated"
	assert.NotEqual(t, "mutated", Categories()[0])
}
