package governance

import (
	"strconv"
	"testing"

	"github.com/dashpay/mnengine/chainparams"
)

func triggerPayloadJSON(height int32, address string, amount string) []byte {
	return []byte(`{"event_block_height":` + strconv.Itoa(int(height)) + `,"payment_addresses":"` + address + `","payment_amounts":"` + amount + `"}`)
}

func TestTriggerManagerAddUnknownObject(t *testing.T) {
	objects := newFakeObjectStore()
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(testHash(1)); err != ErrUnknownObject {
		t.Fatalf("expected ErrUnknownObject, got %v", err)
	}
}

func TestTriggerManagerAddNotATrigger(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{isTrigger: false})
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(hash); err != ErrNotATrigger {
		t.Fatalf("expected ErrNotATrigger, got %v", err)
	}
}

func TestTriggerManagerAddParsesAndTracks(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{
		isTrigger: true,
		payload:   triggerPayloadJSON(10080, testAddress, "5"),
	})
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(hash); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	trigger, ok := m.Lookup(hash)
	if !ok {
		t.Fatal("expected the trigger to be tracked after Add")
	}
	if trigger.EventHeight != 10080 {
		t.Errorf("expected event height 10080, got %d", trigger.EventHeight)
	}
	if trigger.Status != StatusValid {
		t.Errorf("expected StatusValid, got %s", trigger.Status)
	}
}

func TestTriggerManagerAddIsIdempotent(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{
		isTrigger: true,
		payload:   triggerPayloadJSON(10080, testAddress, "5"),
	})
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(hash); err != nil {
		t.Fatalf("unexpected error on first Add: %s", err)
	}
	if err := m.Add(hash); err != nil {
		t.Fatalf("expected a second Add of an already-tracked hash to be a no-op, got %v", err)
	}
}

func TestTriggerManagerAddMarksMalformedForDeletion(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	obj := &fakeObject{isTrigger: true, payload: []byte(`not json`), deletedAt: -1}
	objects.add(hash, obj)
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(hash); err == nil {
		t.Fatal("expected malformed payload to error")
	}
	if obj.deletedAt != 0 {
		t.Errorf("expected MarkForDeletion(0) to have been called, got deletedAt=%d", obj.deletedAt)
	}
}

func TestTriggerManagerAddRejectsOffCycleEventHeight(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	// 1000 is not a multiple of MainNetParams.MegaInterval, so it can never
	// be a governance height.
	obj := &fakeObject{isTrigger: true, payload: triggerPayloadJSON(1000, testAddress, "5"), deletedAt: -1}
	objects.add(hash, obj)
	m := NewTriggerManager(chainparams.MainNetParams, objects)

	if err := m.Add(hash); err != ErrInvalidEventHeight {
		t.Fatalf("expected ErrInvalidEventHeight, got %v", err)
	}
	if obj.deletedAt != 0 {
		t.Errorf("expected MarkForDeletion(0) to have been called, got deletedAt=%d", obj.deletedAt)
	}
	if _, ok := m.Lookup(hash); ok {
		t.Fatal("expected an off-cycle trigger not to be tracked")
	}
}

func TestTriggerManagerActiveTriggersExcludesUnresolved(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{isTrigger: true, payload: triggerPayloadJSON(10080, testAddress, "5")})
	m := NewTriggerManager(chainparams.MainNetParams, objects)
	if err := m.Add(hash); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if got := len(m.ActiveTriggers()); got != 1 {
		t.Fatalf("expected 1 active trigger, got %d", got)
	}

	objects.remove(hash)
	if got := len(m.ActiveTriggers()); got != 0 {
		t.Fatalf("expected 0 active triggers once the backing object is gone, got %d", got)
	}
}

func TestTriggerManagerMarkExecuted(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{isTrigger: true, payload: triggerPayloadJSON(10080, testAddress, "5")})
	m := NewTriggerManager(chainparams.MainNetParams, objects)
	if err := m.Add(hash); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	m.MarkExecuted(hash)
	trigger, ok := m.Lookup(hash)
	if !ok || trigger.Status != StatusExecuted {
		t.Fatalf("expected the trigger to be StatusExecuted, got %v (ok=%v)", trigger, ok)
	}
}

func TestTriggerManagerBestForHeight(t *testing.T) {
	objects := newFakeObjectStore()
	hash := testHash(1)
	objects.add(hash, &fakeObject{
		isTrigger:    true,
		payload:      triggerPayloadJSON(10080, testAddress, "5"),
		fundingCache: true,
		yesCount:     10,
	})
	m := NewTriggerManager(chainparams.MainNetParams, objects)
	if err := m.Add(hash); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	best, ok := m.BestForHeight(10080)
	if !ok || best.ObjectHash != hash {
		t.Fatalf("expected the tracked trigger to win at its event height, got %v (ok=%v)", best, ok)
	}
}
