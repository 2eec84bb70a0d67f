package dtnsim

//
// DTNHost: a simulated mobile node, binding one or more interfaces to a
// router and tracking location over virtual time.
//
// Grounded on the teacher's UNetStack (unetstack.go): a struct owning a
// logger and exposing small, focused accessors, constructed once with
// NewUNetStack and otherwise immutable except for its I/O primitives.
// DTNHost keeps that shape — address fixed at construction, router set
// once (at construction or through SetRouter), and only Location mutated
// over a run by a mobility model.
//

import "fmt"

// MobilityModel updates a host's location each tick. Hosts with no
// mobility (MobilityModel == nil) are stationary.
type MobilityModel interface {
	Advance(now float64, current Coord) Coord
}

// StationaryMobility never moves the host; the zero value is ready to use.
type StationaryMobility struct{}

func (StationaryMobility) Advance(now float64, current Coord) Coord { return current }

// DTNHost is one simulated node.
type DTNHost struct {
	sc       *SimContext
	address  int
	name     string
	router   Router
	location Coord
	mobility MobilityModel

	interfaces []*NetworkInterface

	logger Logger
}

// NewDTNHost constructs a host bound to sc's address allocator, with no
// interfaces yet attached. Call AddInterface to bind each of its radios.
func NewDTNHost(sc *SimContext, name string, router Router, initial Coord, mobility MobilityModel, logger Logger) *DTNHost {
	if mobility == nil {
		mobility = StationaryMobility{}
	}
	return &DTNHost{
		sc:       sc,
		address:  sc.NextHostAddress(),
		name:     name,
		router:   router,
		location: initial,
		mobility: mobility,
		logger:   logger,
	}
}

// Address returns the host's process-unique, dense address.
func (h *DTNHost) Address() int { return h.address }

// Name returns the host's human-readable label, for diagnostics.
func (h *DTNHost) Name() string { return h.name }

// Router returns the host's routing policy.
func (h *DTNHost) Router() Router { return h.router }

// SetRouter binds the host's router after construction, for callers that
// must build a host before its router exists because the router's own
// constructor takes the owning host (BaseRouter.host).
func (h *DTNHost) SetRouter(r Router) { h.router = r }

// Location returns the host's current position.
func (h *DTNHost) Location() Coord { return h.location }

// AddInterface binds ni to this host, per NetworkInterface.BindHost's
// one-time-binding invariant.
func (h *DTNHost) AddInterface(ni *NetworkInterface) {
	ni.BindHost(h)
	h.interfaces = append(h.interfaces, ni)
}

// Interfaces returns every interface bound to this host.
func (h *DTNHost) Interfaces() []*NetworkInterface {
	return h.interfaces
}

// InterfaceByTag returns the first bound interface with the given type
// tag, or nil.
func (h *DTNHost) InterfaceByTag(tag string) *NetworkInterface {
	for _, ni := range h.interfaces {
		if ni.TypeTag() == tag {
			return ni
		}
	}
	return nil
}

// Move applies the host's mobility model for the tick ending at now, and
// refreshes every bound interface's entry in its connectivity grid if the
// location changed.
func (h *DTNHost) Move(now float64) {
	prev := h.location
	next := h.mobility.Advance(now, prev)
	if next == prev {
		return
	}
	h.location = next
	for _, ni := range h.interfaces {
		if ni.optimizer != nil {
			ni.optimizer.Refresh(ni, prev)
		}
	}
}

func (h *DTNHost) String() string {
	if h.name != "" {
		return h.name
	}
	return fmt.Sprintf("host%d", h.address)
}
