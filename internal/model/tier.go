package model

// Tier classifies a participant's running total for presentation.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"  // low balance
	TierCritical Tier = "critical" // needs to contribute money
)
