package main

import (
	"testing"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/store"
)

func TestForwardChangesWakesPerChange(t *testing.T) {
	in := make(chan store.Change, 2)
	wakes := make(chan struct{}, 2)
	out := forwardChanges(in, func() { wakes <- struct{}{} })

	p := rosette.DefaultParameters()
	p.LeafCount = 7
	in <- store.Change{Params: p}
	close(in)

	c, ok := <-out
	if !ok || c.Params.LeafCount != 7 {
		t.Fatalf("forwarded %+v (ok=%v), want leaves 7", c, ok)
	}
	<-wakes
	if _, ok := <-out; ok {
		t.Error("output not closed after input closed")
	}
	if n := len(wakes); n != 0 {
		t.Errorf("%d extra wakes, want 1 per change", n)
	}
}
