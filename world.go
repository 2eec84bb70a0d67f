package dtnsim

//
// World: the single-threaded discrete-event driver tying clock, hosts,
// connectivity, and routers together.
//
// Grounded on the teacher's Link/Router goroutine-driven event loops
// (link.go's linkForward select-loop, router.go's workerMain), adapted
// from a goroutine+channel pump per component to one explicit tick
// function, since SPEC_FULL.md §5 rules out parallelism on the
// simulation hot path. context.Context cancellation is kept in spirit —
// Run accepts a context.Context the way the teacher's background loops
// do, but the World itself never spawns a goroutine.
//

import (
	"container/heap"
	"context"
)

// ConnectionFactory constructs a fresh Connection for a newly-in-range
// pair of interfaces; scenarios configure this to decide whether a given
// interface type uses CBR or VBR connections.
type ConnectionFactory func(from, to *DTNHost, fromIface, toIface *NetworkInterface, im *InterferenceModel, logger Logger) Connection

// World owns the simulation's hosts, event schedule, and connectivity
// state, and drives them forward in lockstep with its Clock.
type World struct {
	sc     *SimContext
	logger Logger

	hosts []*DTNHost

	events eventQueue

	tickSize   float64
	endTime    float64
	warmupTime float64

	interference *InterferenceModel
	connFactory  ConnectionFactory

	helloPumps []*HelloPump

	listeners []Listener
}

// NewWorld constructs an empty World. tickSize is the virtual-time step
// between successive connectivity/router updates; endTime is when Run
// stops; warmupTime is stored on the World, but Run does not treat the
// warm-up prefix differently: events, router updates and listener
// notifications all run from the clock's starting time.
func NewWorld(sc *SimContext, tickSize, endTime, warmupTime float64, connFactory ConnectionFactory, logger Logger) *World {
	w := &World{
		sc:           sc,
		logger:       logger,
		tickSize:     tickSize,
		endTime:      endTime,
		warmupTime:   warmupTime,
		interference: NewInterferenceModel(),
		connFactory:  connFactory,
	}
	heap.Init(&w.events)
	return w
}

// Interference exposes the World's shared InterferenceModel, for
// constructing NetworkInterfaces before their owning host exists.
func (w *World) Interference() *InterferenceModel { return w.interference }

// AddHost registers a host with the world, and registers each of its
// listener-aware routers against every configured Listener.
func (w *World) AddHost(h *DTNHost) {
	w.hosts = append(w.hosts, h)
	if br, ok := h.Router().(*BroadcastEnabledRouter); ok {
		for _, l := range w.listeners {
			br.AddListener(l)
			l.RegisterNode(h.Address())
		}
	}
}

// AddListener registers l against every host already added and every
// host added afterward.
func (w *World) AddListener(l Listener) {
	w.listeners = append(w.listeners, l)
	for _, h := range w.hosts {
		if br, ok := h.Router().(*BroadcastEnabledRouter); ok {
			br.AddListener(l)
		}
	}
}

// AddHelloPump registers a HelloPump to be driven every tick.
func (w *World) AddHelloPump(p *HelloPump) {
	w.helloPumps = append(w.helloPumps, p)
}

// ScheduleAt enqueues fn to run once the clock reaches t.
func (w *World) ScheduleAt(t float64, fn EventFunc) {
	heap.Push(&w.events, &Event{Time: t, Run: fn})
}

// inWarmup reports whether now is still within the warm-up prefix.
func (w *World) inWarmup(now float64) bool {
	return now < w.warmupTime
}

// Run drives the simulation from the clock's current time to endTime,
// or until ctx is canceled. Per SPEC_FULL.md §5, the loop is entirely
// single-threaded: no tick's work overlaps another's.
func (w *World) Run(ctx context.Context) error {
	for w.sc.Clock.Now() < w.endTime {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := w.sc.Clock.Now()
		w.drainEventsUpTo(now)
		w.tick(now)
		w.sc.Clock.Advance(w.tickSize)
	}
	// drain any events scheduled exactly at or before the final tick
	w.drainEventsUpTo(w.sc.Clock.Now())
	return nil
}

func (w *World) drainEventsUpTo(now float64) {
	for len(w.events) > 0 && w.events[0].Time <= now {
		e := heap.Pop(&w.events).(*Event)
		e.Run(w)
	}
}

// tick runs one virtual-time step: mobility, connectivity maintenance,
// connection byte clocks, router updates, and hello pumps.
func (w *World) tick(now float64) {
	for _, h := range w.hosts {
		h.Move(now)
	}
	w.maintainConnectivity(now)
	w.advanceConnections(now)
	for _, h := range w.hosts {
		h.Router().Update(now)
	}
	for _, p := range w.helloPumps {
		p.Update(now)
	}
}

// maintainConnectivity scans every scanning interface's candidate
// neighbor set, connecting newly-in-range pairs and disconnecting pairs
// that have drifted out of range, per SPEC_FULL.md §4.6/§4.7.
func (w *World) maintainConnectivity(now float64) {
	for _, h := range w.hosts {
		for _, ni := range h.Interfaces() {
			if !ni.IsScanning(now) {
				continue
			}
			for _, peer := range ni.CandidateNeighbors() {
				inRange := InRange(ni.Location(), peer.Location(), ni.TransmitRange(), peer.TransmitRange())
				existing := ni.ConnectionTo(peer)
				switch {
				case inRange && existing == nil:
					con := w.connFactory(h, peer.host, ni, peer, w.interference, w.logger)
					Connect(ni, peer, con)
				case !inRange && existing != nil:
					Disconnect(ni, peer, existing)
				}
			}
		}
	}
}

// advanceConnections drives every live connection's byte clock and
// finalizes any that just completed.
func (w *World) advanceConnections(now float64) {
	seen := make(map[Connection]bool)
	for _, h := range w.hosts {
		for _, ni := range h.Interfaces() {
			for _, con := range ni.Connections() {
				if seen[con] {
					continue
				}
				seen[con] = true
				if con.Underway() == nil {
					continue
				}
				con.Update(now)
				if con.IsMessageTransferred() {
					finalizeConnection(con)
				}
			}
		}
	}
}
