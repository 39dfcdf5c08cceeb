// Package cart owns the authoritative list of items a customer intends to
// buy, persisted as a JSON snapshot in a key-value store and rebuilt from
// it on every load.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/adilbekov/homecook-api/internal/kv"
	"github.com/adilbekov/homecook-api/internal/notify"
)

const DefaultTaxRate = 0.05

// Key returns the storage key for a client cart id.
func Key(cartID string) string {
	return "cart:" + cartID
}

// Line is one distinct purchasable item in the cart. Name is the identity:
// at most one line exists per name, and Qty never drops below 1 in a
// stored snapshot.
type Line struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type Cart struct {
	key      string
	store    kv.Store
	notifier notify.Notifier
	taxRate  float64
	lines    []Line
}

type Option func(*Cart)

func WithTaxRate(rate float64) Option {
	return func(c *Cart) {
		c.taxRate = rate
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Cart) {
		c.notifier = n
	}
}

// Load rebuilds a cart from its persisted snapshot. A missing snapshot
// yields an empty cart; a malformed one is repaired, not rejected.
func Load(ctx context.Context, store kv.Store, key string, opts ...Option) (*Cart, error) {
	c := &Cart{
		key:     key,
		store:   store,
		taxRate: DefaultTaxRate,
	}

	for _, opt := range opts {
		opt(c)
	}

	snapshot, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			c.lines = []Line{}
			return c, nil
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	c.lines = normalize(snapshot)

	return c, nil
}

// rawLine tolerates snapshots written by older clients where price and qty
// may be strings or missing entirely.
type rawLine struct {
	Name  string `json:"name"`
	Price any    `json:"price"`
	Qty   any    `json:"qty"`
}

// normalize repairs a snapshot: entries without a name are dropped,
// price/qty are coerced, and duplicate names are merged by summing
// quantities.
func normalize(snapshot string) []Line {
	var raw []rawLine
	if err := json.Unmarshal([]byte(snapshot), &raw); err != nil {
		return []Line{}
	}

	lines := []Line{}
	index := make(map[string]int)

	for _, r := range raw {
		if r.Name == "" {
			continue
		}

		qty := coerceQty(r.Qty)
		if i, ok := index[r.Name]; ok {
			lines[i].Qty += qty
			continue
		}

		index[r.Name] = len(lines)
		lines = append(lines, Line{
			Name:  r.Name,
			Price: coercePrice(r.Price),
			Qty:   qty,
		})
	}

	return lines
}

func coercePrice(v any) float64 {
	switch p := v.(type) {
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0
		}
		return p
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceQty(v any) int {
	switch q := v.(type) {
	case float64:
		if n := int(q); n >= 1 {
			return n
		}
		return 1
	case string:
		if n, err := strconv.Atoi(q); err == nil && n >= 1 {
			return n
		}
		return 1
	default:
		return 1
	}
}

func (c *Cart) findIndex(name string) int {
	for i, line := range c.lines {
		if line.Name == name {
			return i
		}
	}
	return -1
}

// AddItem puts one unit of the named item in the cart. An existing line
// keeps its original price and gains quantity; a new line starts at qty 1.
func (c *Cart) AddItem(ctx context.Context, name string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	if i := c.findIndex(name); i != -1 {
		c.lines[i].Qty++
	} else {
		c.lines = append(c.lines, Line{Name: name, Price: price, Qty: 1})
	}

	if err := c.save(ctx); err != nil {
		return err
	}

	if c.notifier != nil {
		c.notifier.Notify(fmt.Sprintf("%s has been added to your cart!", name), notify.SeveritySuccess)
	}

	return nil
}

// Increment raises the named line's quantity by one. Unknown names are
// no-ops.
func (c *Cart) Increment(ctx context.Context, name string) error {
	i := c.findIndex(name)
	if i == -1 {
		return nil
	}

	c.lines[i].Qty++

	return c.save(ctx)
}

// Decrement lowers the named line's quantity by one, removing the line
// when it reaches zero. Unknown names are no-ops.
func (c *Cart) Decrement(ctx context.Context, name string) error {
	i := c.findIndex(name)
	if i == -1 {
		return nil
	}

	c.lines[i].Qty--
	if c.lines[i].Qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}

	return c.save(ctx)
}

// Remove deletes the named line regardless of quantity.
func (c *Cart) Remove(ctx context.Context, name string) error {
	i := c.findIndex(name)
	if i == -1 {
		return nil
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)

	return c.save(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.lines = []Line{}

	return c.save(ctx)
}

func (c *Cart) Lines() []Line {
	return c.lines
}

func (c *Cart) TaxRate() float64 {
	return c.taxRate
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.lines {
		subtotal += line.Price * float64(line.Qty)
	}

	return subtotal
}

func (c *Cart) Tax() float64 {
	return c.Subtotal() * c.taxRate
}

func (c *Cart) Total() float64 {
	return c.Subtotal() + c.Tax()
}

// save rewrites the full snapshot; mutations are never persisted as
// deltas.
func (c *Cart) save(ctx context.Context) error {
	snapshot, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := c.store.Set(ctx, c.key, string(snapshot)); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}

	return nil
}
