package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestResolveOnce(t *testing.T) {
	f := NewFuture[int]()
	if f.IsResolved() {
		t.Fatal("new future reports resolved")
	}
	if !f.Resolve(7, nil) {
		t.Fatal("first Resolve returned false")
	}
	if f.Resolve(9, errors.New("late")) {
		t.Fatal("second Resolve returned true")
	}
	v, err, ok := f.TryResult()
	if !ok || v != 7 || err != nil {
		t.Fatalf("TryResult = (%d, %v, %v), want (7, nil, true)", v, err, ok)
	}
}

func TestOnResolveOrdering(t *testing.T) {
	f := NewFuture[string]()
	var got []string
	f.OnResolve(func(s string, _ error) { got = append(got, "a:"+s) })
	f.OnResolve(func(s string, _ error) { got = append(got, "b:"+s) })
	if len(got) != 0 {
		t.Fatalf("callbacks ran before resolve: %v", got)
	}
	f.Resolve("x", nil)
	f.OnResolve(func(s string, _ error) { got = append(got, "c:"+s) })

	want := []string{"a:x", "b:x", "c:x"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWait(t *testing.T) {
	f := NewFuture[int]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		f.Resolve(42, nil)
	}()
	v, err := f.Wait(context.Background())
	if err != nil || v != 42 {
		t.Fatalf("Wait = (%d, %v), want (42, nil)", v, err)
	}
}

func TestWaitContextCancelled(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait err = %v, want context.Canceled", err)
	}
}

func TestConcurrentResolve(t *testing.T) {
	f := NewFuture[int]()
	var wins int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if f.Resolve(i, nil) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("%d goroutines resolved the future, want 1", wins)
	}
	select {
	case <-f.Done():
	default:
		t.Fatal("Done channel not closed")
	}
}
