package dtnsim

//
// Reporting: listener hooks and aggregate statistics.
//
// Grounded on the teacher's integration_test.go, which computes
// stats.Median over collected RTT samples with montanaflynn/stats as a
// one-off test-side aggregation. SPEC_FULL.md §12 promotes that pattern
// to a first-class production collaborator: every World drives a set of
// Listener hooks, and StatsCollector is one Listener implementation that
// aggregates latency and hop-count samples with the same library.
//

import "github.com/montanaflynn/stats"

// Listener receives simulation events as they happen. A World may drive
// any number of listeners; routers call back into whichever listeners
// were registered with them at construction.
type Listener interface {
	RegisterNode(hostAddress int)
	NewMessage(hostAddress int, msg *Message)
	TransmissionPerformed(con Connection)
	MessageTransferStarted(msg *Message, con Connection)
	MessageTransferred(msg *Message, con Connection)
	MessageAborted(msg *Message, con Connection)
	MessageTransmissionInterfered(msg *Message, con Connection)
	MessageDeleted(hostAddress int, msg *Message)
	MessageDelivered(hostAddress int, msg *Message)
}

// NullListener implements Listener with no-ops; embed it to implement
// only the hooks you care about.
type NullListener struct{}

var _ Listener = NullListener{}

func (NullListener) RegisterNode(hostAddress int)                           {}
func (NullListener) NewMessage(hostAddress int, msg *Message)                {}
func (NullListener) TransmissionPerformed(con Connection)                   {}
func (NullListener) MessageTransferStarted(msg *Message, con Connection)    {}
func (NullListener) MessageTransferred(msg *Message, con Connection)        {}
func (NullListener) MessageAborted(msg *Message, con Connection)            {}
func (NullListener) MessageTransmissionInterfered(msg *Message, con Connection) {}
func (NullListener) MessageDeleted(hostAddress int, msg *Message)           {}
func (NullListener) MessageDelivered(hostAddress int, msg *Message)         {}

// StatsSnapshot is a point-in-time summary of everything StatsCollector
// has observed so far.
type StatsSnapshot struct {
	Delivered     int
	Dropped       int
	Aborted       int
	Interfered    int
	LatencyMean   float64
	LatencyMedian float64
	LatencyStdDev float64
	HopCountMean  float64
}

// StatsCollector is a Listener that aggregates delivery latency and hop
// count across an entire run, using github.com/montanaflynn/stats for the
// descriptive statistics, exactly as the teacher's integration test did
// for RTTs.
type StatsCollector struct {
	delivered  int
	dropped    int
	aborted    int
	interfered int

	latencies []float64
	hopCounts []float64
}

var _ Listener = &StatsCollector{}

// NewStatsCollector constructs an empty collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{}
}

func (s *StatsCollector) RegisterNode(hostAddress int) {}

func (s *StatsCollector) NewMessage(hostAddress int, msg *Message) {}

func (s *StatsCollector) TransmissionPerformed(con Connection) {}

func (s *StatsCollector) MessageTransferStarted(msg *Message, con Connection) {}

func (s *StatsCollector) MessageTransferred(msg *Message, con Connection) {}

func (s *StatsCollector) MessageAborted(msg *Message, con Connection) {
	s.aborted++
}

func (s *StatsCollector) MessageTransmissionInterfered(msg *Message, con Connection) {
	s.interfered++
}

func (s *StatsCollector) MessageDeleted(hostAddress int, msg *Message) {
	s.dropped++
}

// MessageDelivered records a final, application-layer delivery: the
// message reached its destination host. It feeds the latency and hop
// count samples used by Snapshot.
func (s *StatsCollector) MessageDelivered(hostAddress int, msg *Message) {
	s.delivered++
	if msg.ReceiveTime > 0 || msg.CreationTime > 0 {
		s.latencies = append(s.latencies, msg.ReceiveTime-msg.CreationTime)
	}
	s.hopCounts = append(s.hopCounts, float64(msg.HopCount()))
}

// Snapshot computes the current aggregate statistics. Errors from the
// underlying stats package (e.g. an empty sample set) are treated as a
// zero-valued statistic rather than surfaced, since "no deliveries yet"
// is an expected state, not a fault.
func (s *StatsCollector) Snapshot() StatsSnapshot {
	mean, _ := stats.Mean(s.latencies)
	median, _ := stats.Median(s.latencies)
	stddev, _ := stats.StandardDeviation(s.latencies)
	hopMean, _ := stats.Mean(s.hopCounts)
	return StatsSnapshot{
		Delivered:     s.delivered,
		Dropped:       s.dropped,
		Aborted:       s.aborted,
		Interfered:    s.interfered,
		LatencyMean:   mean,
		LatencyMedian: median,
		LatencyStdDev: stddev,
		HopCountMean:  hopMean,
	}
}
