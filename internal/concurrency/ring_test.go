package concurrency_test

import (
	"fmt"
	"math/rand"
	"runtime"
	"testing"

	"github.com/momentics/hioload-gpio/internal/concurrency"
)

func TestRingBufferFIFO(t *testing.T) {
	r := concurrency.NewRingBuffer[int](16)
	for i := 0; i < 16; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("Enqueue failed at %d", i)
		}
	}
	if r.Len() != 16 {
		t.Fatalf("Len = %d, want 16", r.Len())
	}
	for i := 0; i < 16; i++ {
		val, ok := r.Dequeue()
		if !ok || val != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, val, ok)
		}
	}
	if r.Len() != 0 {
		t.Fatal("expected empty after full cycle")
	}
}

func TestRingBufferRejectsWhenFull(t *testing.T) {
	r := concurrency.NewRingBuffer[int](4)
	for i := 0; i < 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("Enqueue failed at %d", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("Enqueue should refuse on a full ring")
	}
	if _, ok := r.Dequeue(); !ok {
		t.Fatal("Dequeue should succeed")
	}
	if !r.Enqueue(99) {
		t.Fatal("Enqueue should succeed after one slot freed")
	}
}

func TestRingBufferEmptyDequeue(t *testing.T) {
	r := concurrency.NewRingBuffer[int](4)
	if _, ok := r.Dequeue(); ok {
		t.Fatal("Dequeue on empty ring should report ok=false")
	}
}

func TestRingBufferRoundsCapacity(t *testing.T) {
	cases := map[int]int{
		-1: 2,
		0:  2,
		1:  2,
		3:  4,
		16: 16,
		65: 128,
	}
	for capacity, want := range cases {
		if got := concurrency.NewRingBuffer[int](capacity).Cap(); got != want {
			t.Errorf("Cap for capacity %d = %d, want %d", capacity, got, want)
		}
	}
}

// TestRingBufferSPSCOrder drives the ring from one producer and one
// consumer goroutine and verifies nothing is lost or reordered.
func TestRingBufferSPSCOrder(t *testing.T) {
	const total = 100000
	r := concurrency.NewRingBuffer[int](64)
	done := make(chan error, 1)

	go func() {
		for i := 0; i < total; i++ {
			for !r.Enqueue(i) {
				runtime.Gosched()
			}
		}
	}()

	go func() {
		next := 0
		for next < total {
			v, ok := r.Dequeue()
			if !ok {
				runtime.Gosched()
				continue
			}
			if v != next {
				done <- fmt.Errorf("out of order: got %d, want %d", v, next)
				return
			}
			next++
		}
		done <- nil
	}()

	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestRingBufferLenInvariant(t *testing.T) {
	r := concurrency.NewRingBuffer[int](64)
	rng := rand.New(rand.NewSource(1))

	size := 0
	for i := 0; i < 5000; i++ {
		if rng.Intn(2) == 0 {
			if r.Enqueue(i) {
				size++
			}
		} else {
			if _, ok := r.Dequeue(); ok {
				size--
			}
		}
		if size != r.Len() {
			t.Fatalf("invariant failed: expected %d, got %d", size, r.Len())
		}
		if r.Len() < 0 || r.Len() > r.Cap() {
			t.Fatalf("length out of bounds: %d", r.Len())
		}
	}
}
