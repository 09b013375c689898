// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-gpio pipeline components.

package benchmarks

import (
	"runtime"
	"testing"

	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/internal/concurrency"
)

// BenchmarkRingBufferThroughput measures raw SPSC ring operations.
func BenchmarkRingBufferThroughput(b *testing.B) {
	ring := concurrency.NewRingBuffer[api.Value](1024)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !ring.Enqueue(api.High) {
			ring.Dequeue()
			ring.Enqueue(api.High)
		}
	}
}

func benchQueue(b *testing.B, q api.EventQueue, wake bool, cancel *concurrency.Cancel) {
	b.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, ok := q.Next(); !ok {
				return
			}
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !q.Push(api.High) {
			runtime.Gosched()
		}
	}
	b.StopTimer()

	cancel.Set()
	if wake {
		q.Wake()
	}
	<-done
}

// BenchmarkSpinQueuePipeline measures producer-to-consumer flow through
// the bounded discipline.
func BenchmarkSpinQueuePipeline(b *testing.B) {
	cancel, err := concurrency.NewCancel()
	if err != nil {
		b.Fatal(err)
	}
	defer cancel.Close()
	benchQueue(b, concurrency.NewSpinQueue(64, cancel), false, cancel)
}

// BenchmarkCondQueuePipeline measures producer-to-consumer flow through
// the unbounded discipline.
func BenchmarkCondQueuePipeline(b *testing.B) {
	cancel, err := concurrency.NewCancel()
	if err != nil {
		b.Fatal(err)
	}
	defer cancel.Close()
	benchQueue(b, concurrency.NewCondQueue(cancel), true, cancel)
}
