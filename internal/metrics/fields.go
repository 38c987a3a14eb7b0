package metrics

// Metric attribute keys shared across instruments.
const (
	AttrProvider = "provider"
	AttrTier     = "tier"
	AttrOutcome  = "outcome"
	AttrPhase    = "phase"
)

// Cache tiers reported on cache instruments.
const (
	TierMemory     = "memory"
	TierPersistent = "persistent"
	TierNetwork    = "network"
)
