package cartstore

import (
	"os"
	"path/filepath"
	"testing"
)

type recordingSyncer struct {
	calls   int
	guestID string
	items   []Item
}

func (r *recordingSyncer) Enqueue(guestID string, items []Item) {
	r.calls++
	r.guestID = guestID
	r.items = items
}

func newTestStore(t *testing.T, syncer syncTarget) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	store, err := Open(path, syncer)
	if err != nil {
		t.Fatalf("Expected no error opening store, got: %v", err)
	}
	return store
}

func assertTotals(t *testing.T, store *Store, wantItems int, wantPrice float64) {
	t.Helper()
	if got := store.TotalItems(); got != wantItems {
		t.Errorf("Expected total items %d, got %d", wantItems, got)
	}
	if got := store.TotalPrice(); got != wantPrice {
		t.Errorf("Expected total price %.2f, got %.2f", wantPrice, got)
	}
}

func TestStore_TotalsAfterEveryMutation(t *testing.T) {
	store := newTestStore(t, nil)

	if err := store.AddItem(Item{ProductID: 1, Name: "Skapis", Price: 10, Quantity: 2}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	assertTotals(t, store, 2, 20)

	if err := store.AddItem(Item{ProductID: 2, Name: "Galds", Price: 5, Quantity: 1}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	assertTotals(t, store, 3, 25)

	if err := store.UpdateQuantity(1, 5); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	assertTotals(t, store, 6, 55)

	if err := store.RemoveItem(2); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	assertTotals(t, store, 5, 50)

	if err := store.Clear(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	assertTotals(t, store, 0, 0)
}

func TestStore_DuplicateAddMergesIntoOneLine(t *testing.T) {
	store := newTestStore(t, nil)

	if err := store.AddItem(Item{ProductID: 7, Name: "Krēsls", Price: 40, Quantity: 2}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.AddItem(Item{ProductID: 7, Name: "Krēsls", Price: 40, Quantity: 3}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("Expected exactly one line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("Expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestStore_UpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		store := newTestStore(t, nil)

		if err := store.AddItem(Item{ProductID: 3, Name: "Plaukts", Price: 15, Quantity: 1}); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if err := store.UpdateQuantity(3, quantity); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if len(store.Items()) != 0 {
			t.Errorf("UpdateQuantity(3, %d): expected line to be absent", quantity)
		}
		assertTotals(t, store, 0, 0)
	}
}

func TestStore_RemoveAbsentProductIsNoOp(t *testing.T) {
	store := newTestStore(t, nil)

	if err := store.AddItem(Item{ProductID: 1, Name: "Skapis", Price: 10, Quantity: 1}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.RemoveItem(99); err != nil {
		t.Fatalf("Expected removing an absent product to be a no-op, got: %v", err)
	}
	assertTotals(t, store, 1, 10)
}

func TestStore_MutationsEnqueueSync(t *testing.T) {
	syncer := &recordingSyncer{}
	store := newTestStore(t, syncer)

	if err := store.AddItem(Item{ProductID: 1, Name: "Skapis", Price: 10, Quantity: 1}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if syncer.calls != 1 {
		t.Fatalf("Expected 1 sync after add, got %d", syncer.calls)
	}
	if syncer.guestID != store.GuestID() {
		t.Errorf("Expected snapshot guest id %q, got %q", store.GuestID(), syncer.guestID)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if syncer.calls != 2 {
		t.Fatalf("Expected 2 syncs after clear, got %d", syncer.calls)
	}
	if len(syncer.items) != 0 {
		t.Errorf("Expected clear to sync an empty item list, got %d items", len(syncer.items))
	}
}

func TestStore_SetItemsDoesNotSync(t *testing.T) {
	syncer := &recordingSyncer{}
	store := newTestStore(t, syncer)

	err := store.SetItems([]Item{
		{ProductID: 1, Name: "Skapis", Price: 10, Quantity: 2},
		{ProductID: 2, Name: "Galds", Price: 5, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if syncer.calls != 0 {
		t.Errorf("Expected SetItems not to sync, got %d calls", syncer.calls)
	}
	assertTotals(t, store, 3, 25)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	guestID := store.GuestID()
	if guestID == "" {
		t.Fatal("Expected a generated guest id")
	}
	if err := store.AddItem(Item{ProductID: 4, Name: "Dīvāns", Price: 300, Quantity: 1}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Expected no error reopening, got: %v", err)
	}
	if reopened.GuestID() != guestID {
		t.Errorf("Expected guest id %q to survive reopen, got %q", guestID, reopened.GuestID())
	}
	if len(reopened.Items()) != 1 {
		t.Fatalf("Expected 1 line after reopen, got %d", len(reopened.Items()))
	}
	assertTotals(t, reopened, 1, 300)
}

func TestStore_DropGuestID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.DropGuestID(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if store.GuestID() != "" {
		t.Errorf("Expected guest id to be dropped, got %q", store.GuestID())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected state file to exist, got: %v", err)
	}
	if string(data) == "" {
		t.Error("Expected state file to hold serialized state")
	}
}
