package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyLastValueIsDelivered(t *testing.T) {
	got := make(chan int, 10)
	d := New(30*time.Millisecond, func(v int) { got <- v })

	for i := 1; i <= 5; i++ {
		d.Push(i)
	}

	select {
	case v := <-got:
		assert.Equal(t, 5, v)
	case <-time.After(2 * time.Second):
		t.Fatal("value never delivered")
	}

	select {
	case v := <-got:
		t.Fatalf("unexpected second delivery %d", v)
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, d.Pending())
}

func TestCancel(t *testing.T) {
	got := make(chan string, 1)
	d := New(20*time.Millisecond, func(v string) { got <- v })

	d.Push("a")
	require.True(t, d.Pending())
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	select {
	case v := <-got:
		t.Fatalf("canceled value delivered: %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}
