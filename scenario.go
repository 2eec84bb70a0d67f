package dtnsim

//
// Scenario: builds a runnable World from a Settings tree, following the
// namespaced key surface (Scenario.*, Group.<n>.*, Interface.<name>.*,
// MessageCache.*, subscriptions.*) this package's settings.go exposes.
//
// Grounded on the teacher's cmd/calibrate/main.go: that main wires a
// fixed two-node topology directly from flag.* values with no
// indirection layer. BuildScenario generalizes that "read configuration,
// construct the object graph, hand back something Run-able" shape to an
// arbitrary number of named host groups, each sharing one router kind,
// one or more named interface types, and a movement model.
//

import (
	"fmt"
	"strings"
)

// BuildScenario constructs a World, its hosts, interfaces, and routers
// from cfg, and returns a StatsCollector already registered as a
// listener. The caller still owns calling World.Run.
func BuildScenario(cfg *Settings, sc *SimContext, logger Logger) (*World, *StatsCollector, error) {
	updateInterval := cfg.FloatOr(ScenarioKey("updateInterval"), 1.0)
	endTime := cfg.FloatOr(ScenarioKey("endTime"), 3600.0)
	warmup := cfg.FloatOr(ScenarioKey("warmupTime"), 0.0)

	stats := NewStatsCollector()

	world := NewWorld(sc, updateInterval, endTime, warmup, defaultConnectionFactory, logger)
	im := world.Interference()
	world.AddListener(stats)

	nrofGroups := cfg.IntOr("Scenario.nrofHostGroups", 1)
	optimizers := make(map[string]*ConnectivityOptimizer)

	for g := 0; g < nrofGroups; g++ {
		if err := buildGroup(cfg, g, sc, im, world, optimizers, logger); err != nil {
			return nil, nil, fmt.Errorf("dtnsim: group %d: %w", g, err)
		}
	}

	return world, stats, nil
}

func buildGroup(cfg *Settings, g int, sc *SimContext, im *InterferenceModel, world *World, optimizers map[string]*ConnectivityOptimizer, logger Logger) error {
	nrofHosts := cfg.IntOr(GroupKey(g, "nrofHosts"), 0)
	if nrofHosts <= 0 {
		return nil
	}

	bufferSize := int64(cfg.IntOr(GroupKey(g, "bufferSize"), 5*1024*1024))
	ttlSweepInterval := cfg.FloatOr(GroupKey(g, "ttlSweepInterval"), 10.0)
	routerKind := cfg.StringOr(GroupKey(g, "router"), "Epidemic")
	movementModel := cfg.StringOr(GroupKey(g, "movementModel"), "Stationary")

	ifaceName := cfg.StringOr(GroupKey(g, "interface1"), "bluetooth")
	transmitRange := cfg.FloatOr(InterfaceKey(ifaceName, "transmitRange"), 10.0)
	transmitSpeed := cfg.FloatOr(InterfaceKey(ifaceName, "transmitSpeed"), 250_000.0)
	scanInterval := cfg.FloatOr(InterfaceKey(ifaceName, "scanInterval"), 0.0)

	optimizer, ok := optimizers[ifaceName]
	if !ok {
		var err error
		optimizer, err = NewConnectivityOptimizer(transmitRange, cfg.FloatOr("Optimization.cellSizeMult", 2.0))
		if err != nil {
			return err
		}
		optimizers[ifaceName] = optimizer
	}

	prioritizationName := cfg.StringOr("MessageCache.cachingPrioritizationStrategy", "FIFO")
	forwardingOrderName := cfg.StringOr("MessageCache.messageForwardingOrderStrategy", "Unchanged")
	decayFactor := cfg.FloatOr("MessageCache.decayFactor", 0.5)

	prioritization, err := NewPrioritizationStrategy(prioritizationName)
	if err != nil {
		return err
	}
	forwardingOrder, err := NewForwardingOrderStrategy(forwardingOrderName, decayFactor)
	if err != nil {
		return err
	}

	mobility, err := buildMobility(movementModel)
	if err != nil {
		return err
	}

	for i := 0; i < nrofHosts; i++ {
		cacheRand := sc.NewRand(int64(g)*10_000 + int64(i))
		cache, err := NewMessageCacheManager(bufferSize, prioritization, forwardingOrder, cacheRand, logger)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("group%d-host%d", g, i)
		host := NewDTNHost(sc, name, nil, Coord{}, mobility, logger)

		router, err := buildRouter(cfg, g, host, sc, cache, routerKind, ttlSweepInterval, logger)
		if err != nil {
			return err
		}
		host.SetRouter(router)

		ni := NewNetworkInterface(sc, ifaceName, transmitRange, transmitSpeed, scanInterval, optimizer, im, logger)
		host.AddInterface(ni)

		world.AddHost(host)

		pingInterval := cfg.FloatOr("pingInterval", 0.0)
		if pingInterval > 0 {
			world.AddHelloPump(NewHelloPump(ni, pingInterval))
		}
	}
	return nil
}

func buildRouter(cfg *Settings, g int, host *DTNHost, sc *SimContext, cache *MessageCacheManager, kind string, ttlSweepInterval float64, logger Logger) (Router, error) {
	dissemination, err := buildDissemination(cfg, g, sc)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "epidemic":
		if dissemination != nil {
			return NewEpidemicBroadcastRouterWithSubscriptions(host, sc, cache, dissemination, ttlSweepInterval, logger), nil
		}
		return NewEpidemicRouter(host, sc, cache, ttlSweepInterval, logger), nil

	case "sprayandwait", "spray-and-wait":
		mode := SprayStandard
		if cfg.BoolOr("SprayAndWaitRouterWithSubscriptions.binaryMode", true) {
			mode = SprayBinary
		}
		copies := cfg.IntOr("SprayAndWaitRouterWithSubscriptions.nrofCopies", 6)
		if dissemination != nil {
			return NewSprayAndWaitRouterWithSubscriptions(host, sc, cache, dissemination, mode, copies, ttlSweepInterval, logger), nil
		}
		return NewSprayAndWaitRouter(host, sc, cache, mode, copies, ttlSweepInterval, logger), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRouterKind, kind)
	}
}

func buildDissemination(cfg *Settings, g int, sc *SimContext) (*DisseminationPolicy, error) {
	subIDs := cfg.StringOr("subscriptions.subIDs", "")
	if subIDs == "" {
		return nil, nil
	}
	subs := make(map[int]bool)
	for _, tok := range strings.Split(subIDs, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		var id int
		if _, err := fmt.Sscanf(tok, "%d", &id); err != nil {
			return nil, fmt.Errorf("dtnsim: invalid subscriptions.subIDs entry %q: %w", tok, err)
		}
		subs[id] = true
	}

	modeName := cfg.StringOr("subDisMode", "STRICT")
	mode, err := NewDisseminationMode(modeName)
	if err != nil {
		return nil, err
	}
	porous := cfg.FloatOr("msgDissProbability", 0.5)
	rng := sc.NewRand(int64(g)*31 + 7)
	return NewDisseminationPolicy(mode, subs, porous, rng), nil
}

func buildMobility(name string) (MobilityModel, error) {
	switch strings.ToLower(name) {
	case "", "stationary":
		return StationaryMobility{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMovementModel, name)
	}
}

// defaultConnectionFactory builds a CBRConnection at the slower of the two
// endpoints' transmit speeds; scenarios that need VBR connections supply
// their own ConnectionFactory to World directly instead of going through
// BuildScenario.
func defaultConnectionFactory(from, to *DTNHost, fromIface, toIface *NetworkInterface, im *InterferenceModel, logger Logger) Connection {
	speed := fromIface.TransmitSpeed()
	if toIface.TransmitSpeed() < speed {
		speed = toIface.TransmitSpeed()
	}
	return NewCBRConnection(from, to, fromIface, toIface, speed, im, logger)
}
