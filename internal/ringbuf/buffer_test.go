package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushWrapsAroundCapacity(t *testing.T) {
	b := New(3)
	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.Push(4)
	assert.Equal(t, []int{4, 2, 3}, b.Data)
}

func TestAtIsRelativeToCurrentPosition(t *testing.T) {
	b := New(3)
	b.Push(10)
	b.Push(20)
	b.Push(30)
	assert.Equal(t, 10, b.At(0))
	assert.Equal(t, 20, b.At(1))
	assert.Equal(t, 30, b.At(2))
}

func TestSetWritesRelativeToCurrentPosition(t *testing.T) {
	b := New(3)
	b.Push(1)
	b.Push(2)
	b.Set(0, 99)
	assert.Equal(t, 99, b.Data[2])
}

func TestMaximalFindsLargestMagnitude(t *testing.T) {
	b := New(4)
	b.Push(-5)
	b.Push(2)
	b.Push(-9)
	b.Push(3)
	assert.Equal(t, 9, b.Maximal())
}

func TestBoundFieldIsUnmanagedByTheRingItself(t *testing.T) {
	b := New(2)
	b.Bound = 7
	b.Push(1)
	assert.Equal(t, 7, b.Bound)
}
