package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	w := NewWorker()
	assert.NotNil(t, w)

	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		id := uint64(NextID(w))
		assert.NotZero(t, id)
		assert.False(t, seen[id], "duplicated id %d", id)
		seen[id] = true
	}
}
