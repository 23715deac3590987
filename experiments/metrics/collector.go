package metrics

import (
	"time"
)

// SearchMetric summarizes one search call: how deep it got, what it chose,
// and how much work it did at each depth.
type SearchMetric struct {
	MaxDepth       int
	AlphaBeta      bool
	DepthCompleted int
	Score          int
	Duration       time.Duration
	Nodes          int         // all nodes visited
	EvalsByDepth   map[int]int // leaf evaluations keyed by remaining depth
}

// TotalEvals is the number of leaf evaluations across all depths.
func (m SearchMetric) TotalEvals() int {
	total := 0
	for _, n := range m.EvalsByDepth {
		total += n
	}
	return total
}

// AvgBranching estimates the average branching factor from visited node
// counts: non-root nodes per interior node.
func (m SearchMetric) AvgBranching() float64 {
	interior := m.Nodes - m.TotalEvals()
	if interior <= 0 {
		return 0
	}
	return float64(m.Nodes-1) / float64(interior)
}

type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

type GameMetric struct {
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector accumulates search statistics. The search is single-threaded,
// so plain counters suffice.
type Collector interface {
	Start(maxDepth int, alphaBeta bool)
	AddNode()
	AddEvaluation(depth int)
	DepthComplete(depth, score int)
	Complete() SearchMetric
}

type collector struct {
	startTime      time.Time
	maxDepth       int
	alphaBeta      bool
	depthCompleted int
	score          int
	nodes          int
	evalsByDepth   map[int]int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(maxDepth int, alphaBeta bool) {
	c.startTime = time.Now()
	c.maxDepth = maxDepth
	c.alphaBeta = alphaBeta
	c.depthCompleted = 0
	c.score = 0
	c.nodes = 0
	c.evalsByDepth = make(map[int]int)
}

func (c *collector) AddNode() {
	c.nodes++
}

func (c *collector) AddEvaluation(depth int) {
	if c.evalsByDepth == nil {
		c.evalsByDepth = make(map[int]int)
	}
	c.evalsByDepth[depth]++
}

func (c *collector) DepthComplete(depth, score int) {
	c.depthCompleted = depth
	c.score = score
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:       c.maxDepth,
		AlphaBeta:      c.alphaBeta,
		DepthCompleted: c.depthCompleted,
		Score:          c.score,
		Duration:       time.Since(c.startTime),
		Nodes:          c.nodes,
		EvalsByDepth:   c.evalsByDepth,
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start(maxDepth int, alphaBeta bool) {}
func (dummyCollector) AddNode()                           {}
func (dummyCollector) AddEvaluation(depth int)            {}
func (dummyCollector) DepthComplete(depth, score int)     {}
func (dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
