package models

import (
	"sync"
	"testing"
	"time"
)

func allocated(ul *UserLocks) int {
	ul.mapMutex.Lock()
	defer ul.mapMutex.Unlock()
	return len(ul.locks)
}

func TestUserLocks_SerializesSameUser(t *testing.T) {
	locks := NewUserLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("alice")
			defer locks.Unlock("alice")
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("Expected counter 50, got %d", counter)
	}
}

func TestUserLocks_ReleasesEntries(t *testing.T) {
	locks := NewUserLocks()

	locks.Lock("alice")
	// bob must not block on alice's lock
	locks.Lock("bob")
	if n := allocated(locks); n != 2 {
		t.Errorf("Expected 2 locks allocated, got %d", n)
	}

	locks.Unlock("bob")
	locks.Unlock("alice")
	if n := allocated(locks); n != 0 {
		t.Errorf("Expected all locks released, got %d", n)
	}

	// Unlocking an unknown user is a no-op
	locks.Unlock("carol")
}

func TestUserLocks_EntryKeptWhileWaiting(t *testing.T) {
	locks := NewUserLocks()
	locks.Lock("alice")

	acquired := make(chan struct{})
	go func() {
		locks.Lock("alice")
		close(acquired)
	}()

	// wait until the second caller is registered on the entry
	for {
		locks.mapMutex.Lock()
		refs := locks.locks["alice"].refs
		locks.mapMutex.Unlock()
		if refs == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	locks.Unlock("alice")
	<-acquired
	if n := allocated(locks); n != 1 {
		t.Errorf("Expected entry kept for the waiter, got %d", n)
	}

	locks.Unlock("alice")
	if n := allocated(locks); n != 0 {
		t.Errorf("Expected entry released, got %d", n)
	}
}

func TestTradeRequest_Record(t *testing.T) {
	req := TradeRequest{Symbol: "AAPL", Shares: 10, Price: 150.5, Profit: -3}
	got := req.Record()
	want := TradeRecord{Symbol: "AAPL", Shares: 10, Price: 150.5, Profit: -3}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
