package graphics

import (
	"sync"
	"testing"
)

func TestFrameQueueDefersRearm(t *testing.T) {
	var q FrameQueue
	var seen []float64

	var step FrameFunc
	step = func(now float64) {
		seen = append(seen, now)
		q.RequestFrame(step)
	}
	q.RequestFrame(step)

	for i, now := range []float64{0.5, 1.0, 1.5} {
		if n := q.Tick(now); n != 1 {
			t.Fatalf("tick %d ran %d callbacks, want 1", i, n)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("got %d frames, want 3", len(seen))
	}
	if seen[2] != 1.5 {
		t.Errorf("last frame saw now=%v, want 1.5", seen[2])
	}
	if !q.Pending() {
		t.Error("callback should still be armed")
	}
}

func TestFrameQueueIgnoresNil(t *testing.T) {
	var q FrameQueue
	q.RequestFrame(nil)
	if q.Pending() {
		t.Error("nil callback was queued")
	}
	if n := q.Tick(0); n != 0 {
		t.Errorf("Tick ran %d callbacks, want 0", n)
	}
}

func TestTaskQueueConcurrentPost(t *testing.T) {
	var q TaskQueue
	var wg sync.WaitGroup
	count := 0

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() { count++ })
		}()
	}
	wg.Wait()

	if n := q.Drain(); n != 32 {
		t.Fatalf("Drain ran %d tasks, want 32", n)
	}
	if count != 32 {
		t.Errorf("count = %d, want 32", count)
	}
	if n := q.Drain(); n != 0 {
		t.Errorf("second Drain ran %d tasks, want 0", n)
	}
}

func TestTaskQueuePostDuringDrain(t *testing.T) {
	var q TaskQueue
	ran := 0
	q.Post(func() {
		ran++
		q.Post(func() { ran++ })
	})

	if n := q.Drain(); n != 1 {
		t.Fatalf("first Drain ran %d, want 1", n)
	}
	if n := q.Drain(); n != 1 {
		t.Fatalf("second Drain ran %d, want 1", n)
	}
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

func TestStageKindString(t *testing.T) {
	tests := []struct {
		kind StageKind
		want string
	}{
		{VertexStage, "vertex"},
		{FragmentStage, "fragment"},
		{StageKind(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("StageKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
