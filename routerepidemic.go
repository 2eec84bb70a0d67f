package dtnsim

//
// Epidemic routing: every host forwards every message to every neighbor
// that doesn't already have it. Grounded on BroadcastEnabledRouter with a
// CopyPolicy that always keeps retransmitting (the teacher's DPIRule
// pattern contributes the shape of EpidemicBroadcastRouterWithSubscriptions
// below, layering a DisseminationPolicy predicate on top).
//

// NewEpidemicRouter constructs a plain (non-subscription-aware) epidemic
// flooding router — a supplemented feature per SPEC_FULL.md §12, useful
// as the degenerate case of EpidemicBroadcastRouterWithSubscriptions with
// dissemination mode FLEXIBLE, but exposed directly so scenarios that
// don't use publish/subscribe at all don't need to configure
// subscriptions to get ordinary flooding.
func NewEpidemicRouter(host *DTNHost, sc *SimContext, cache *MessageCacheManager, ttlSweepInterval float64, logger Logger) *BroadcastEnabledRouter {
	return NewBroadcastEnabledRouter(host, sc, cache, nil, alwaysKeepCopy, ttlSweepInterval, logger)
}

// NewEpidemicBroadcastRouterWithSubscriptions constructs an epidemic
// router whose admission is additionally gated by a subscription
// dissemination policy, per SPEC_FULL.md §4.9.
func NewEpidemicBroadcastRouterWithSubscriptions(host *DTNHost, sc *SimContext, cache *MessageCacheManager, dissemination *DisseminationPolicy, ttlSweepInterval float64, logger Logger) *BroadcastEnabledRouter {
	return NewBroadcastEnabledRouter(host, sc, cache, dissemination, alwaysKeepCopy, ttlSweepInterval, logger)
}

func alwaysKeepCopy(msg *Message, peer *DTNHost) bool { return true }
