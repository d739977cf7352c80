package services

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"farm-fresh/models"
)

// Cart holds one line per product in the order products were first added.
// All methods are safe for concurrent use; observers run after the lock is
// released, in registration order.
type Cart struct {
	mu     sync.RWMutex
	lines  []models.CartLine
	nextID int
	subs   map[int]func(models.CartEvent)
}

func NewCart() *Cart {
	return &Cart{subs: make(map[int]func(models.CartEvent))}
}

// Add increments the line for p or appends a new line with quantity 1.
// Name, price and image are copied from p only when the line is created.
func (c *Cart) Add(p models.Product) models.CartLine {
	c.mu.Lock()
	var line models.CartLine
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity++
		line = c.lines[i]
	} else {
		line = models.CartLine{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: 1,
			Image:    p.Image,
		}
		c.lines = append(c.lines, line)
	}
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.CartItemAdded, Line: line})
	return line
}

// UpdateQuantity sets the quantity of an existing line. Zero removes the
// line and an unknown id is ignored.
func (c *Cart) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return models.ErrInvalidQuantity
	}
	if quantity == 0 {
		c.Remove(id)
		return nil
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return nil
	}
	c.lines[i].Quantity = quantity
	line := c.lines[i]
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.CartItemUpdated, Line: line})
	return nil
}

func (c *Cart) Remove(id int) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	line := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.CartItemRemoved, Line: line})
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.CartCleared})
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(id int) (models.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.lines[i], true
	}
	return models.CartLine{}, false
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

func (c *Cart) TotalItems() int {
	return TotalItems(c.Lines())
}

func (c *Cart) TotalPrice() decimal.Decimal {
	return TotalPrice(c.Lines())
}

// Subscribe registers fn for every cart event, including the add-completed
// signal. The returned func removes the subscription.
func (c *Cart) Subscribe(fn func(models.CartEvent)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cart) emit(e models.CartEvent) {
	c.mu.RLock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(models.CartEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (c *Cart) indexOf(id int) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func TotalItems(lines []models.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func TotalPrice(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
