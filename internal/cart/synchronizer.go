package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrRestaurantConflict is returned by AddOne when the cart already holds
// dishes from a different restaurant. Checkout only supports single-restaurant
// orders, so the conflict is rejected here; the caller clears the cart and
// retries to "replace".
var ErrRestaurantConflict = errors.New("cart already holds dishes from another restaurant")

// ServerLine mirrors one row of the server-side cart.
type ServerLine struct {
	ItemID   int64
	DishID   int64
	Quantity int
}

// Gateway is the server cart resource, parameterized by the bearer
// credential. All four operations are independent network calls.
type Gateway interface {
	ListCart(ctx context.Context, credential string) ([]ServerLine, error)
	AddCartItem(ctx context.Context, credential string, dishID int64, quantity int) (ServerLine, error)
	UpdateCartItem(ctx context.Context, credential string, cartItemID int64, quantity int) (ServerLine, error)
	RemoveCartItem(ctx context.Context, credential string, cartItemID int64) error
}

// State is the synchronizer's credential-lifecycle state.
type State int

const (
	// StateGuest: no credential, the ledger is purely local.
	StateGuest State = iota
	// StateReconciling: a credential just appeared, the local ledger is
	// being merged with the server cart.
	StateReconciling
	// StateSynced: ledger and server are believed consistent; mutations are
	// optimistic locally with best-effort server calls behind them.
	StateSynced
)

func (s State) String() string {
	switch s {
	case StateGuest:
		return "guest"
	case StateReconciling:
		return "reconciling"
	case StateSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// Snapshot is the observable cart value handed to the UI.
type Snapshot struct {
	Items []LineItem
	Total decimal.Decimal
	State State
}

// Config assembles a Synchronizer's collaborators.
type Config struct {
	Gateway Gateway
	// Lookup enriches a dish id with display attributes, falling back to a
	// synthetic record for unknown ids. Nil means a bare fallback.
	Lookup func(dishID string) ItemAttrs
}

// Synchronizer owns the cart: it is the only component that mutates the
// ledger or talks to the cart gateway. Public operations apply optimistic
// local updates immediately; a per-dish flush loop pushes the resulting
// desired state to the server, coalescing rapid mutations so that calls for
// the same dish are never in flight concurrently. Responses are tagged with
// the credential epoch they were issued under and discarded if the
// credential has changed since.
type Synchronizer struct {
	gw     Gateway
	lookup func(dishID string) ItemAttrs

	mu         sync.Mutex
	ledger     *Ledger
	state      State
	credential string
	epoch      uint64
	flushing   map[string]bool
	dirty      map[string]bool
	// tombstones holds server item ids of locally removed lines whose
	// server-side delete has not been confirmed yet.
	tombstones map[string]int64

	subsMu  sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int

	wg sync.WaitGroup
}

// NewSynchronizer creates a guest-state synchronizer
func NewSynchronizer(cfg Config) *Synchronizer {
	lookup := cfg.Lookup
	if lookup == nil {
		lookup = func(dishID string) ItemAttrs {
			return ItemAttrs{DishID: dishID, Price: decimal.Zero}
		}
	}
	return &Synchronizer{
		gw:         cfg.Gateway,
		lookup:     lookup,
		ledger:     NewLedger(),
		state:      StateGuest,
		flushing:   make(map[string]bool),
		dirty:      make(map[string]bool),
		tombstones: make(map[string]int64),
		subs:       make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current observable cart value.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of cart snapshots (latest-wins, the current
// value delivered first) and a cancel function.
func (s *Synchronizer) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	ch <- s.Snapshot()

	cancel := func() {
		s.subsMu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.subsMu.Unlock()
	}
	return ch, cancel
}

// AddOne adds one unit of the dish to the cart. The only error is a
// single-restaurant conflict; sync failures never surface here.
func (s *Synchronizer) AddOne(attrs ItemAttrs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attrs.RestaurantID != "" {
		for _, item := range s.ledger.Items() {
			if item.RestaurantID != "" && item.RestaurantID != attrs.RestaurantID {
				return ErrRestaurantConflict
			}
		}
	}

	s.ledger.UpsertIncrement(attrs)
	s.scheduleFlushLocked(attrs.DishID)
	s.notifyLocked()
	return nil
}

// Remove deletes the dish from the cart. Idempotent.
func (s *Synchronizer) Remove(dishID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.ledger.Get(dishID)
	if !ok {
		return
	}
	s.ledger.Remove(dishID)
	if item.ServerItemID != nil {
		s.tombstones[dishID] = *item.ServerItemID
		s.scheduleFlushLocked(dishID)
	} else if s.flushing[dishID] {
		// an add may be in flight; make its loop re-evaluate
		s.dirty[dishID] = true
	}
	s.notifyLocked()
}

// SetQuantity sets the dish's quantity; zero or below removes it.
func (s *Synchronizer) SetQuantity(dishID string, quantity int) {
	if quantity <= 0 {
		s.Remove(dishID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Get(dishID); !ok {
		return
	}
	s.ledger.SetQuantity(dishID, quantity)
	s.scheduleFlushLocked(dishID)
	s.notifyLocked()
}

// Clear wipes the local cart. With alsoClearServer the known server rows are
// deleted too, fire-and-forget; without it the server cart survives logout
// and is resumed on the next login under the same account.
func (s *Synchronizer) Clear(alsoClearServer bool) {
	s.mu.Lock()
	var serverIDs []int64
	for _, item := range s.ledger.Items() {
		if item.ServerItemID != nil {
			serverIDs = append(serverIDs, *item.ServerItemID)
		}
	}
	s.ledger.Clear()
	s.dirty = make(map[string]bool)
	s.tombstones = make(map[string]int64)
	credential := s.credential
	s.notifyLocked()
	s.mu.Unlock()

	if !alsoClearServer || credential == "" {
		return
	}
	for _, id := range serverIDs {
		s.wg.Add(1)
		go func(cartItemID int64) {
			defer s.wg.Done()
			if err := s.gw.RemoveCartItem(context.Background(), credential, cartItemID); err != nil {
				syncFailures.WithLabelValues("clear").Inc()
				logger.Warn("Failed to clear server cart row", map[string]interface{}{
					"cart_item_id": cartItemID,
					"error":        err.Error(),
				})
			}
		}(id)
	}
}

// SetCredential reacts to a credential change. A new credential starts
// reconciliation of the local ledger against the server cart; an empty one
// returns to guest with the local ledger cleared (the server cart is left
// untouched).
func (s *Synchronizer) SetCredential(credential string) {
	s.mu.Lock()
	if credential == s.credential {
		s.mu.Unlock()
		return
	}

	s.epoch++
	s.credential = credential
	s.flushing = make(map[string]bool)
	s.dirty = make(map[string]bool)
	s.tombstones = make(map[string]int64)

	if credential == "" {
		s.state = StateGuest
		s.ledger.Clear()
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	s.state = StateReconciling
	locals := s.ledger.Items()
	epoch := s.epoch
	s.notifyLocked()
	s.mu.Unlock()

	s.wg.Add(1)
	go s.reconcile(epoch, credential, locals)
}

// Wait blocks until no sync work is in flight. Meant for shutdown and tests.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

func (s *Synchronizer) snapshotLocked() Snapshot {
	return Snapshot{
		Items: s.ledger.Items(),
		Total: s.ledger.Total(),
		State: s.state,
	}
}

func (s *Synchronizer) notifyLocked() {
	snap := s.snapshotLocked()
	s.subsMu.Lock()
	for _, ch := range s.subs {
		// latest-wins: replace an unconsumed snapshot instead of blocking
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.subsMu.Unlock()
}

// scheduleFlushLocked records that the dish's server state must catch up
// with the ledger. While reconciling, the flush is deferred until the merge
// completes; while a flush for the dish is already in flight, the loop is
// told to run once more.
func (s *Synchronizer) scheduleFlushLocked(dishID string) {
	if s.credential == "" {
		return
	}
	if s.state != StateSynced || s.flushing[dishID] {
		s.dirty[dishID] = true
		return
	}
	s.flushing[dishID] = true
	s.wg.Add(1)
	go s.flush(dishID, s.epoch, s.credential)
}

type flushAction int

const (
	actionNone flushAction = iota
	actionAdd
	actionUpdate
	actionDelete
)

// flush drives the server cart toward the ledger's desired state for one
// dish. Exactly one flush loop runs per dish at a time; mutations arriving
// mid-flight set the dirty flag and the loop re-evaluates. An epoch mismatch
// means the credential changed under us: the response is discarded and the
// loop stops without touching the maps, which were reset at the switch.
func (s *Synchronizer) flush(dishID string, epoch uint64, credential string) {
	defer s.wg.Done()

	ctx := context.Background()
	for {
		s.mu.Lock()
		if s.epoch != epoch {
			s.mu.Unlock()
			return
		}

		item, exists := s.ledger.Get(dishID)
		version := s.ledger.lineVersion(dishID)
		tombstone, hasTombstone := s.tombstones[dishID]

		var action flushAction
		switch {
		case hasTombstone:
			// a stale server row must go before anything else happens
			action = actionDelete
		case !exists:
			action = actionNone
		case item.ServerItemID == nil:
			action = actionAdd
		default:
			action = actionUpdate
		}

		if action == actionNone {
			delete(s.flushing, dishID)
			delete(s.dirty, dishID)
			s.mu.Unlock()
			return
		}
		if action == actionDelete && exists {
			// re-added while the old row is pending delete: delete first,
			// then loop again for the add
			s.dirty[dishID] = true
		}
		s.mu.Unlock()

		var (
			line    ServerLine
			callErr error
		)
		switch action {
		case actionAdd:
			dishNum, err := strconv.ParseInt(dishID, 10, 64)
			if err != nil {
				// non-numeric dish ids cannot exist server-side; the line stays local
				s.finishFlush(dishID, epoch)
				return
			}
			line, callErr = s.gw.AddCartItem(ctx, credential, dishNum, item.Quantity)
		case actionUpdate:
			line, callErr = s.gw.UpdateCartItem(ctx, credential, *item.ServerItemID, item.Quantity)
		case actionDelete:
			callErr = s.gw.RemoveCartItem(ctx, credential, tombstone)
		}

		s.mu.Lock()
		if s.epoch != epoch {
			s.mu.Unlock()
			if callErr == nil {
				staleResponsesDiscarded.Inc()
			}
			return
		}

		switch {
		case action == actionDelete:
			// best-effort either way; a row that failed to delete is caught
			// by the next reconciliation
			delete(s.tombstones, dishID)
			if callErr != nil {
				syncFailures.WithLabelValues("remove").Inc()
				logger.Warn("Failed to delete server cart row", map[string]interface{}{
					"dish_id":      dishID,
					"cart_item_id": tombstone,
					"error":        callErr.Error(),
				})
			}
		case callErr != nil:
			op := "add"
			if action == actionUpdate {
				op = "update"
			}
			syncFailures.WithLabelValues(op).Inc()
			logger.Warn("Cart sync call did not confirm", map[string]interface{}{
				"dish_id":   dishID,
				"operation": op,
				"error":     callErr.Error(),
			})
		default:
			s.applyServerLineLocked(dishID, line, version)
		}

		if s.dirty[dishID] {
			delete(s.dirty, dishID)
			s.mu.Unlock()
			continue
		}
		delete(s.flushing, dishID)
		s.mu.Unlock()
		return
	}
}

// applyServerLineLocked folds a confirmed server row into the ledger. The
// server is authoritative for the final quantity, but only against the local
// version the call was issued for: if the line mutated again mid-flight the
// confirmed quantity is already stale and is dropped (the pending flush will
// push the newer value).
func (s *Synchronizer) applyServerLineLocked(dishID string, line ServerLine, version uint64) {
	if _, exists := s.ledger.Get(dishID); !exists {
		// removed locally while the add was in flight: the fresh server row
		// must be deleted on the next pass
		s.tombstones[dishID] = line.ItemID
		s.dirty[dishID] = true
		staleResponsesDiscarded.Inc()
		return
	}
	s.ledger.AttachServerID(dishID, line.ItemID)
	if s.ledger.lineVersion(dishID) == version {
		s.ledger.SetQuantityFromServer(dishID, line.Quantity)
	} else {
		staleResponsesDiscarded.Inc()
	}
	s.notifyLocked()
}

func (s *Synchronizer) finishFlush(dishID string, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	delete(s.flushing, dishID)
	delete(s.dirty, dishID)
}

// reconcile merges the guest ledger with the server cart after a login:
// push local lines, re-list the authoritative cart, rebuild the ledger from
// it. Push failures are tolerated; the affected lines stay visible without a
// server id and retry on their next mutation.
func (s *Synchronizer) reconcile(epoch uint64, credential string, locals []LineItem) {
	defer s.wg.Done()
	ctx := context.Background()

	var pending []LineItem
	for _, item := range locals {
		if item.ServerItemID == nil {
			pending = append(pending, item)
		}
	}

	pushed := make([]*ServerLine, len(pending))
	var wg sync.WaitGroup
	for i, item := range pending {
		dishNum, err := strconv.ParseInt(item.DishID, 10, 64)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func(i int, dishNum int64, quantity int) {
			defer wg.Done()
			line, err := s.gw.AddCartItem(ctx, credential, dishNum, quantity)
			if err != nil {
				reconcilePushFailures.Inc()
				logger.Warn("Failed to push guest cart line", map[string]interface{}{
					"dish_id": dishNum,
					"error":   err.Error(),
				})
				return
			}
			pushed[i] = &line
		}(i, dishNum, item.Quantity)
	}
	wg.Wait()

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	for i, line := range pushed {
		if line != nil {
			s.ledger.AttachServerID(pending[i].DishID, line.ItemID)
		}
	}
	s.mu.Unlock()

	lines, listErr := s.gw.ListCart(ctx, credential)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}

	if listErr != nil {
		// keep the optimistic local cart; sync stays eventually consistent
		syncFailures.WithLabelValues("list").Inc()
		logger.Warn("Cart re-list failed after login, keeping local cart", map[string]interface{}{
			"error": listErr.Error(),
		})
	} else {
		rebuilt := make([]LineItem, 0, len(lines))
		confirmed := make(map[string]bool, len(lines))
		for _, line := range lines {
			dishID := strconv.FormatInt(line.DishID, 10)
			if _, removed := s.tombstones[dishID]; removed {
				// deleted locally while reconciling; do not re-surface
				continue
			}
			attrs := s.lookup(dishID)
			itemID := line.ItemID
			rebuilt = append(rebuilt, LineItem{
				DishID:         dishID,
				Name:           attrs.Name,
				Price:          attrs.Price,
				Image:          attrs.Image,
				RestaurantID:   attrs.RestaurantID,
				RestaurantName: attrs.RestaurantName,
				Quantity:       line.Quantity,
				ServerItemID:   &itemID,
			})
			confirmed[dishID] = true
		}
		// lines whose push failed stay visible, locally pending
		for _, item := range s.ledger.Items() {
			if item.ServerItemID == nil && !confirmed[item.DishID] {
				rebuilt = append(rebuilt, item)
			}
		}
		s.ledger.replace(rebuilt)
	}

	s.state = StateSynced
	for dishID := range s.dirty {
		delete(s.dirty, dishID)
		s.scheduleFlushLocked(dishID)
	}
	s.notifyLocked()
}
