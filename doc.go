// Package dtnsim is a discrete-event simulator for delay-tolerant networks
// (DTNs) with intermittent wireless connectivity.
//
// A [World] advances a virtual [Clock] in lock-step with an ordered external
// event queue (see [Event]) and a set of mobile [DTNHost] values. Each host
// binds one or more [NetworkInterface] instances to a [Router]; interfaces
// discover each other through a [ConnectivityOptimizer] grid and exchange
// bytes over [Connection] values (CBR or VBR) whose air time is accounted by
// a shared [InterferenceModel]. Messages are held in a per-host
// [MessageCacheManager] under a prioritization and forwarding-order policy,
// and routed according to a pluggable [Router] (epidemic flooding,
// Spray-and-Wait, or a subscription-aware publish/subscribe variant).
//
// The simulated model has no parallelism: a single goroutine drives the
// [World] tick loop, and nothing suspends except in virtual time. Use
// [NewSimContext] to obtain per-run address allocators and seeded RNGs so
// that successive batch runs are deterministic and do not share state.
package dtnsim
