// Package cartstore is the client-side cart state container used by the
// storefront kiosk and CLI tooling. It is the single source of truth for
// "what's in the cart" during a session: every mutation recomputes the
// derived totals synchronously, persists the state to disk so it survives
// restarts, and hands a snapshot to the background syncer. Local state stays
// authoritative even when the server is unreachable.
package cartstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Item is one product line in the local cart. Name, price and image are
// display snapshots taken when the product was added, not live joins.
type Item struct {
	ID        string  `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// syncTarget receives cart snapshots after each local mutation.
type syncTarget interface {
	Enqueue(guestID string, items []Item)
}

// state is the serialized form written to disk.
type state struct {
	GuestID string `json:"guest_id"`
	Items   []Item `json:"items"`
}

// Store holds the cart lines plus the persisted guest identity. All methods
// are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	path       string
	guestID    string
	items      []Item
	totalItems int
	totalPrice float64
	syncer     syncTarget
}

// Open hydrates the store from path, generating and persisting a fresh
// guest identifier when no prior state exists. This is the one-time
// initialization step per process; syncer may be nil for offline use.
func Open(path string, syncer syncTarget) (*Store, error) {
	s := &Store{path: path, syncer: syncer}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var st state
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, err
		}
		s.guestID = st.GuestID
		s.items = st.Items
	case errors.Is(err, os.ErrNotExist):
		// First run
	default:
		return nil, err
	}

	if s.guestID == "" {
		s.guestID = "guest_" + uuid.NewString()
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	s.recompute()
	return s, nil
}

// GuestID returns the persisted guest identifier, or "" after a merge.
func (s *Store) GuestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guestID
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// TotalPrice is the sum of price x quantity across lines.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

// AddItem merges into an existing line for the same product (quantities
// add up) or appends a new line with a fresh identifier.
func (s *Store) AddItem(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}

	merged := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = uuid.NewString()
		s.items = append(s.items, item)
	}

	return s.commitLocked()
}

// RemoveItem deletes the matching line. Removing an absent product is a
// no-op, not an error.
func (s *Store) RemoveItem(productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	return s.commitLocked()
}

// UpdateQuantity replaces (not increments) the line's quantity. A quantity
// of zero or less behaves exactly like RemoveItem.
func (s *Store) UpdateQuantity(productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		for i := range s.items {
			if s.items[i].ProductID == productID {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
		return s.commitLocked()
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}

	return s.commitLocked()
}

// Clear empties the cart. The empty list still syncs: the server treats it
// as delete-all, not as a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.commitLocked()
}

// SetItems bulk-replaces the lines from authoritative server state (merge
// results, initial load). It deliberately does NOT sync back, otherwise
// every load would echo itself to the server.
func (s *Store) SetItems(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Item, len(items))
	copy(s.items, items)
	s.recompute()
	return s.save()
}

// DropGuestID discards the locally stored guest identifier. Called only
// after the server confirms a merge, so a failed merge keeps the id around
// for a retry on the next login.
func (s *Store) DropGuestID() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guestID = ""
	return s.save()
}

// commitLocked recomputes totals, persists, and enqueues a sync snapshot.
// Callers hold s.mu.
func (s *Store) commitLocked() error {
	s.recompute()
	if err := s.save(); err != nil {
		return err
	}
	if s.syncer != nil {
		snapshot := make([]Item, len(s.items))
		copy(snapshot, s.items)
		s.syncer.Enqueue(s.guestID, snapshot)
	}
	return nil
}

func (s *Store) recompute() {
	totalItems := 0
	totalPrice := 0.0
	for _, item := range s.items {
		totalItems += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}
	s.totalItems = totalItems
	s.totalPrice = totalPrice
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(state{GuestID: s.guestID, Items: s.items}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
