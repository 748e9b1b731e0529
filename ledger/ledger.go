// Package ledger is the in-memory transaction store behind the demo
// application. It stands in for a remote service: Refresh simulates network
// latency and may be canceled through its context.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"tally.dev/tally/mysync"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var ErrNotFound = errors.New("transaction not found")

const Uncategorized = "Uncategorized"

// Transaction represents a single booked transaction.
type Transaction struct {
	ID       uint64
	Date     time.Time
	Merchant string
	Amount   decimal.Decimal // negative = expense, positive = income
	Category string
}

type data struct {
	txs    []Transaction
	nextID uint64
	rng    *rand.Rand
	now    time.Time
}

// Store holds transactions ordered by date, newest first. It is safe for
// concurrent use; Refresh runs on a refresh goroutine while the window
// goroutine reads and mutates the store.
type Store struct {
	// Latency is the simulated round-trip time of Refresh.
	Latency time.Duration

	logger *log.Logger
	data   *mysync.Mutex[*data]
}

var categories = []string{
	"Groceries",
	"Dining",
	"Transport",
	"Utilities",
	"Entertainment",
	"Income",
	Uncategorized,
}

var merchants = []struct {
	name     string
	category string
	min, max int64 // in cents
}{
	{"Corner Market", "Groceries", -9000, -800},
	{"Fresh Foods", "Groceries", -15000, -2000},
	{"Noodle Bar", "Dining", -4500, -900},
	{"Coffee Cart", "Dining", -700, -300},
	{"Metro Transit", "Transport", -5000, -250},
	{"City Power", "Utilities", -18000, -6000},
	{"Cinema 8", "Entertainment", -3000, -1200},
	{"Payroll", "Income", 150000, 400000},
	{"Unknown Vendor", Uncategorized, -10000, -100},
}

// New returns a store seeded with n generated transactions. The same seed
// always produces the same transactions, relative to now.
func New(logger *log.Logger, seed uint64, n int, now time.Time) *Store {
	d := &data{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
	for range n {
		d.add(d.generate())
	}
	d.sort()
	return &Store{
		Latency: 800 * time.Millisecond,
		logger:  logger,
		data:    mysync.NewMutex(d),
	}
}

func (d *data) generate() Transaction {
	m := merchants[d.rng.IntN(len(merchants))]
	cents := m.min + d.rng.Int64N(m.max-m.min+1)
	// Spread transactions over the past 30 days, at minute granularity.
	age := time.Duration(d.rng.IntN(30*24*60)) * time.Minute
	return Transaction{
		Date:     d.now.Add(-age).Truncate(time.Minute),
		Merchant: m.name,
		Amount:   decimal.New(cents, -2),
		Category: m.category,
	}
}

func (d *data) add(tx Transaction) Transaction {
	d.nextID++
	tx.ID = d.nextID
	d.txs = append(d.txs, tx)
	return tx
}

func (d *data) sort() {
	slices.SortStableFunc(d.txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
}

func (d *data) index(id uint64) int {
	return slices.IndexFunc(d.txs, func(tx Transaction) bool { return tx.ID == id })
}

// List returns a copy of all transactions, newest first.
func (s *Store) List() []Transaction {
	var out []Transaction
	s.data.RWith(func(d *data) {
		out = slices.Clone(d.txs)
	})
	return out
}

func (s *Store) Len() int {
	var n int
	s.data.RWith(func(d *data) { n = len(d.txs) })
	return n
}

// Get returns the transaction with the given ID.
func (s *Store) Get(id uint64) (Transaction, error) {
	d, u := s.data.RLock()
	defer u.RUnlock()
	i := d.index(id)
	if i == -1 {
		return Transaction{}, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	return d.txs[i], nil
}

// Delete removes the transaction with the given ID.
func (s *Store) Delete(id uint64) error {
	d, u := s.data.Lock()
	defer u.Unlock()
	i := d.index(id)
	if i == -1 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	tx := d.txs[i]
	d.txs = slices.Delete(d.txs, i, i+1)
	s.logger.Debug("deleted transaction", "id", id, "merchant", tx.Merchant, "amount", tx.Amount.StringFixed(2))
	return nil
}

// Recategorize assigns a new category to the transaction with the given ID.
func (s *Store) Recategorize(id uint64, category string) error {
	if !slices.Contains(categories, category) {
		return fmt.Errorf("recategorize %d: unknown category %q", id, category)
	}
	d, u := s.data.Lock()
	defer u.Unlock()
	i := d.index(id)
	if i == -1 {
		return fmt.Errorf("recategorize %d: %w", id, ErrNotFound)
	}
	old := d.txs[i].Category
	d.txs[i].Category = category
	s.logger.Debug("recategorized transaction", "id", id, "from", old, "to", category)
	return nil
}

// Refresh simulates fetching new transactions from a remote service. It
// waits for the store's latency, then adds between zero and two new
// transactions dated at the current time of the store's clock. It returns
// the number of transactions that were added.
func (s *Store) Refresh(ctx context.Context) (int, error) {
	if s.Latency > 0 {
		t := time.NewTimer(s.Latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return 0, fmt.Errorf("refresh: %w", ctx.Err())
		}
	} else if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("refresh: %w", err)
	}

	d, u := s.data.Lock()
	defer u.Unlock()
	d.now = d.now.Add(time.Hour)
	n := d.rng.IntN(3)
	for range n {
		tx := d.generate()
		tx.Date = d.now
		d.add(tx)
	}
	d.sort()
	s.logger.Info("refreshed transactions", "added", n, "total", len(d.txs))
	return n, nil
}

// Categories returns the categories a transaction can be assigned to.
func Categories() []string {
	return slices.Clone(categories)
}

// Total returns the sum of all amounts.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	s.data.RWith(func(d *data) {
		for _, tx := range d.txs {
			total = total.Add(tx.Amount)
		}
	})
	return total
}
