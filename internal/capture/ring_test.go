package capture

import (
	"reflect"
	"testing"
)

func TestPushWithinCapacityPreservesOrder(t *testing.T) {
	r := NewRingBuffer[int](5)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	got := r.Snapshot()
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPushBeyondCapacityDiscardsOldest(t *testing.T) {
	r := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	got := r.Snapshot()
	want := []int{3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDrainEmptiesBuffer(t *testing.T) {
	r := NewRingBuffer[string](2)
	r.Push("a")
	r.Push("b")
	got := r.Drain()
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if r.Len() != 0 {
		t.Fatalf("expected buffer empty after Drain, got len %d", r.Len())
	}
}

func TestLenTracksCurrentSize(t *testing.T) {
	r := NewRingBuffer[int](3)
	if r.Len() != 0 {
		t.Fatalf("expected empty buffer to start")
	}
	r.Push(1)
	r.Push(2)
	if r.Len() != 2 {
		t.Fatalf("got %d, want 2", r.Len())
	}
}
