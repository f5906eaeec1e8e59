package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	g := New(0)
	assert.Equal(t, uint64(1), g.Next())
	assert.Equal(t, uint64(2), g.Next())
}

func TestReset(t *testing.T) {
	g := New(100)
	assert.Equal(t, uint64(101), g.Next())

	g.Reset(0)
	assert.Equal(t, uint64(1), g.Next())
}
