package cartstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type syncCapture struct {
	mu       sync.Mutex
	requests []syncRequestBody
	fail     bool
}

type syncRequestBody struct {
	GuestID string `json:"guest_id"`
	Items   []struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
}

func (sc *syncCapture) handler(w http.ResponseWriter, r *http.Request) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	var body syncRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sc.requests = append(sc.requests, body)
	w.Write([]byte(`{"success":true}`))
}

func (sc *syncCapture) count() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.requests)
}

func (sc *syncCapture) last() syncRequestBody {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.requests[len(sc.requests)-1]
}

func TestSyncer_DeliversSnapshot(t *testing.T) {
	capture := &syncCapture{}
	server := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer server.Close()

	syncer := NewSyncer(NewAPIClient(server.URL))
	syncer.Enqueue("guest_abc", []Item{{ProductID: 1, Quantity: 2}})
	syncer.Stop()

	if capture.count() != 1 {
		t.Fatalf("Expected 1 delivered sync, got %d", capture.count())
	}
	got := capture.last()
	if got.GuestID != "guest_abc" {
		t.Errorf("Expected guest id guest_abc, got %q", got.GuestID)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("Unexpected items payload: %+v", got.Items)
	}
}

func TestSyncer_CoalescesToLatestSnapshot(t *testing.T) {
	capture := &syncCapture{fail: true}
	server := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer server.Close()

	syncer := NewSyncer(NewAPIClient(server.URL))

	// While the server is failing, stack up several snapshots. They must
	// coalesce so that only the newest one is delivered once it recovers.
	for q := 1; q <= 5; q++ {
		syncer.Enqueue("guest_abc", []Item{{ProductID: 1, Quantity: q}})
	}
	time.Sleep(50 * time.Millisecond)

	capture.mu.Lock()
	capture.fail = false
	capture.mu.Unlock()

	syncer.Enqueue("guest_abc", []Item{{ProductID: 1, Quantity: 9}})
	syncer.Stop()

	if capture.count() != 1 {
		t.Fatalf("Expected exactly 1 delivered sync, got %d", capture.count())
	}
	if got := capture.last(); got.Items[0].Quantity != 9 {
		t.Errorf("Expected the newest snapshot (quantity 9), got %d", got.Items[0].Quantity)
	}
}

func TestSyncer_FailureIsSwallowed(t *testing.T) {
	capture := &syncCapture{fail: true}
	server := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer server.Close()

	syncer := NewSyncer(NewAPIClient(server.URL))
	syncer.Enqueue("guest_abc", []Item{{ProductID: 1, Quantity: 1}})

	// Stop must return normally even though every delivery failed.
	syncer.Stop()

	if capture.count() != 0 {
		t.Errorf("Expected no successful deliveries, got %d", capture.count())
	}
}

func TestSyncer_EmptySnapshotStillDelivered(t *testing.T) {
	capture := &syncCapture{}
	server := httptest.NewServer(http.HandlerFunc(capture.handler))
	defer server.Close()

	syncer := NewSyncer(NewAPIClient(server.URL))
	syncer.Enqueue("guest_abc", nil)
	syncer.Stop()

	if capture.count() != 1 {
		t.Fatalf("Expected the empty snapshot to be delivered, got %d syncs", capture.count())
	}
	if got := capture.last(); len(got.Items) != 0 {
		t.Errorf("Expected an empty item list, got %d items", len(got.Items))
	}
}
