package flow_test

import (
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meikuraledutech/flow"
)

func TestIDGenerator_Next(t *testing.T) {
	g := flow.NewIDGenerator(4)
	assert.Equal(t, "node_4", g.Next())
	assert.Equal(t, "node_5", g.Next())
	assert.Equal(t, 6, g.Peek())
}

func TestIDGenerator_Resync(t *testing.T) {
	g := flow.NewIDGenerator(0)
	g.Resync(7)
	assert.Equal(t, "node_8", g.Next())
}

func TestIDGenerator_ResyncMaxIntKeepsCounter(t *testing.T) {
	g := flow.NewIDGenerator(5)
	g.Resync(math.MaxInt)
	assert.Equal(t, "node_5", g.Next())
}

func TestIDGenerator_ResyncNodes(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"max suffix wins", []string{"node_2", "node_11", "node_5"}, "node_12"},
		{"ids without suffix are ignored", []string{"welcome", "node_3"}, "node_4"},
		{"no numeric ids restarts at zero", []string{"start", "end"}, "node_0"},
		{"suffix only, not leading digits", []string{"7up_node_1"}, "node_2"},
		{"suffix without successor is ignored", []string{"node_3", "node_" + strconv.Itoa(math.MaxInt)}, "node_4"},
		{"suffix past int range is ignored", []string{"node_1", "node_99999999999999999999999"}, "node_2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nodes []flow.Node
			for _, id := range tt.ids {
				nodes = append(nodes, textNode(id))
			}
			g := flow.NewIDGenerator(100)
			g.ResyncNodes(nodes)
			assert.Equal(t, tt.want, g.Next())
		})
	}
}

func TestIDGenerator_ConcurrentIDsAreUnique(t *testing.T) {
	g := flow.NewIDGenerator(0)

	const workers, perWorker = 8, 250
	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- g.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
