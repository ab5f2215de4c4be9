package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	for _, d := range []int{2, 4, 8} {
		h := NewdAryHeap[string](d)
		nodes := map[string]*PriorityQueueNode[string]{}
		for i, id := range []string{"a", "b", "c", "d", "e", "f"} {
			n := NewPriorityQueueNode(float64(10*(6-i)), id)
			nodes[id] = n
			h.Insert(n)
		}
		assert.Equal(t, 6, h.Size())

		require.NoError(t, h.DecreaseKey(nodes["a"], 5))
		assert.Error(t, h.DecreaseKey(nodes["b"], 100))

		got := make([]string, 0)
		for !h.IsEmpty() {
			n, err := h.ExtractMin()
			require.NoError(t, err)
			got = append(got, n.GetItem())
		}
		assert.Equal(t, []string{"a", "f", "e", "d", "c", "b"}, got)

		_, err := h.ExtractMin()
		assert.Error(t, err)
		assert.Error(t, h.DecreaseKey(nodes["a"], 1))
	}
}
