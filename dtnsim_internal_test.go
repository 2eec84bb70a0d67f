package dtnsim

//
// Shared test scaffolding for package-internal tests, grounded on the
// teacher's convention of a trivial in-package NullLogger used throughout
// *_test.go (linkfwddelay_test.go, topology_test.go).
//

import "testing"

type nullLogger struct{}

func (nullLogger) Debug(string)          {}
func (nullLogger) Debugf(string, ...any) {}
func (nullLogger) Info(string)           {}
func (nullLogger) Infof(string, ...any)  {}
func (nullLogger) Warn(string)           {}
func (nullLogger) Warnf(string, ...any)  {}

var _ Logger = nullLogger{}

// newTestHost builds a bound, interfaced DTNHost with an epidemic router
// over the given cache, sharing sc/im/optimizer with the rest of a test's
// topology.
func newTestHost(t *testing.T, sc *SimContext, im *InterferenceModel, optimizer *ConnectivityOptimizer, name string, loc Coord, bufferSize int64) *DTNHost {
	t.Helper()
	cache, err := NewMessageCacheManager(bufferSize, FIFOPrioritization{}, UnchangedForwardingOrder{}, sc.NewRand(0), nullLogger{})
	if err != nil {
		t.Fatalf("NewMessageCacheManager: %v", err)
	}
	host := NewDTNHost(sc, name, nil, loc, nil, nullLogger{})
	router := NewEpidemicRouter(host, sc, cache, 0, nullLogger{})
	host.SetRouter(router)

	ni := NewNetworkInterface(sc, "bt", 10, 1000, 0, optimizer, im, nullLogger{})
	host.AddInterface(ni)
	return host
}
