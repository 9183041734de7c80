package flow

import (
	"math"
	"regexp"
	"strconv"
	"sync"
)

const nodeIDPrefix = "node_"

var numericSuffix = regexp.MustCompile(`(\d+)$`)

// IDGenerator hands out node ids of the form node_<n>.
// It is safe for concurrent use.
type IDGenerator struct {
	mu   sync.Mutex
	next int
}

// NewIDGenerator returns a generator whose first id is node_<start>.
func NewIDGenerator(start int) *IDGenerator {
	return &IDGenerator{next: start}
}

// Next returns a fresh id and advances the counter.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := nodeIDPrefix + strconv.Itoa(g.next)
	g.next++
	return id
}

// Peek returns the number the next id will carry.
func (g *IDGenerator) Peek() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}

// Resync makes the next id node_<maxSeen+1>. A maxSeen of math.MaxInt has no
// successor and leaves the counter unchanged.
func (g *IDGenerator) Resync(maxSeen int) {
	if maxSeen == math.MaxInt {
		return
	}
	g.mu.Lock()
	g.next = maxSeen + 1
	g.mu.Unlock()
}

// ResyncNodes resyncs past the largest numeric suffix among nodes.
// Ids without a usable numeric suffix are ignored; with none at all the counter restarts at 0.
func (g *IDGenerator) ResyncNodes(nodes []Node) {
	g.Resync(maxNumericSuffix(nodes))
}

func maxNumericSuffix(nodes []Node) int {
	best := -1
	for _, n := range nodes {
		m := numericSuffix.FindString(n.ID)
		if m == "" {
			continue
		}
		v, err := strconv.Atoi(m)
		if err != nil || v == math.MaxInt {
			continue
		}
		if v > best {
			best = v
		}
	}
	return best
}
