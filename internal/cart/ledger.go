package cart

import "github.com/shopspring/decimal"

// ItemAttrs are the display attributes of a dish as carried on a cart line.
type ItemAttrs struct {
	DishID         string
	Name           string
	Price          decimal.Decimal
	Image          string
	RestaurantID   string
	RestaurantName string
}

// LineItem is one dish-and-quantity entry of the cart. ServerItemID is nil
// until the server has acknowledged persistence of the line.
type LineItem struct {
	DishID         string
	Name           string
	Price          decimal.Decimal
	Image          string
	RestaurantID   string
	RestaurantName string
	Quantity       int
	ServerItemID   *int64
}

// lineState is the ledger's internal record. version increments on every
// local quantity change so that a server response issued against an older
// quantity can be recognized as stale.
type lineState struct {
	LineItem
	version uint64
}

// Ledger is the in-memory cart bookkeeping: at most one line per dish id,
// quantities always >= 1, insertion order preserved. It performs no I/O and
// is not safe for concurrent use; the Synchronizer serializes access.
type Ledger struct {
	order []string
	items map[string]*lineState
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{items: make(map[string]*lineState)}
}

// UpsertIncrement adds one unit of the dish: an existing line's quantity is
// incremented, otherwise a new line with quantity 1 is inserted.
func (l *Ledger) UpsertIncrement(attrs ItemAttrs) {
	if state, ok := l.items[attrs.DishID]; ok {
		state.Quantity++
		state.version++
		return
	}
	l.items[attrs.DishID] = &lineState{
		LineItem: LineItem{
			DishID:         attrs.DishID,
			Name:           attrs.Name,
			Price:          attrs.Price,
			Image:          attrs.Image,
			RestaurantID:   attrs.RestaurantID,
			RestaurantName: attrs.RestaurantName,
			Quantity:       1,
		},
	}
	l.order = append(l.order, attrs.DishID)
}

// SetQuantity sets the line's quantity. A quantity of zero or below removes
// the line.
func (l *Ledger) SetQuantity(dishID string, quantity int) {
	if quantity <= 0 {
		l.Remove(dishID)
		return
	}
	state, ok := l.items[dishID]
	if !ok {
		return
	}
	state.Quantity = quantity
	state.version++
}

// Remove deletes the line. Removing an absent dish is a no-op.
func (l *Ledger) Remove(dishID string) {
	if _, ok := l.items[dishID]; !ok {
		return
	}
	delete(l.items, dishID)
	for i, id := range l.order {
		if id == dishID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Clear drops every line.
func (l *Ledger) Clear() {
	l.order = nil
	l.items = make(map[string]*lineState)
}

// Total is the exact sum of price*quantity over all lines.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, state := range l.items {
		total = total.Add(state.Price.Mul(decimal.NewFromInt(int64(state.Quantity))))
	}
	return total
}

// Items returns the lines in insertion order. The slice is a copy.
func (l *Ledger) Items() []LineItem {
	items := make([]LineItem, 0, len(l.order))
	for _, id := range l.order {
		items = append(items, l.items[id].LineItem)
	}
	return items
}

// Get returns the line for the dish, if present.
func (l *Ledger) Get(dishID string) (LineItem, bool) {
	state, ok := l.items[dishID]
	if !ok {
		return LineItem{}, false
	}
	return state.LineItem, true
}

// Len returns the number of lines.
func (l *Ledger) Len() int {
	return len(l.items)
}

// AttachServerID records the server's cart item id for the line. Called only
// by the Synchronizer when the server acknowledges persistence.
func (l *Ledger) AttachServerID(dishID string, serverItemID int64) {
	if state, ok := l.items[dishID]; ok {
		id := serverItemID
		state.ServerItemID = &id
	}
}

// SetQuantityFromServer folds a server-confirmed quantity into the line
// without bumping the local version. Called only by the Synchronizer.
func (l *Ledger) SetQuantityFromServer(dishID string, quantity int) {
	if quantity <= 0 {
		l.Remove(dishID)
		return
	}
	if state, ok := l.items[dishID]; ok {
		state.Quantity = quantity
	}
}

// lineVersion returns the line's mutation counter; zero if the dish is absent.
func (l *Ledger) lineVersion(dishID string) uint64 {
	if state, ok := l.items[dishID]; ok {
		return state.version
	}
	return 0
}

// replace swaps the ledger content for the given lines, keeping their order.
func (l *Ledger) replace(items []LineItem) {
	l.Clear()
	for _, item := range items {
		line := item
		l.items[line.DishID] = &lineState{LineItem: line}
		l.order = append(l.order, line.DishID)
	}
}
