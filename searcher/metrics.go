package searcher

import (
	"time"
)

// SearchMetric describes the work done by a single BestMove call.
type SearchMetric struct {
	Depth          int
	Duration       time.Duration
	Nodes          int
	Leaves         int
	TerminalLeaves int
	Cutoffs        int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddLeaf(terminal bool)
	AddCutoff()
	Complete() SearchMetric
}

// collector is owned by a single searcher; the search is single-threaded so
// the counters need no synchronization.
type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Depth: depth}
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddLeaf(terminal bool) {
	m.metric.Leaves++
	if terminal {
		m.metric.TerminalLeaves++
	}
}

func (m *collector) AddCutoff() {
	m.metric.Cutoffs++
}

func (m *collector) Complete() SearchMetric {
	m.metric.Duration = time.Since(m.startTime)
	return m.metric
}

// dummyCollector only measures wall-clock time, which the harness always needs.
type dummyCollector struct {
	startTime time.Time
	depth     int
}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
}
func (m *dummyCollector) AddNode()     {}
func (m *dummyCollector) AddLeaf(bool) {}
func (m *dummyCollector) AddCutoff()   {}
func (m *dummyCollector) Complete() SearchMetric {
	return SearchMetric{Depth: m.depth, Duration: time.Since(m.startTime)}
}
