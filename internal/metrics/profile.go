package metrics

import "infralab/internal/topology"

// Role marks kinds that change latency or scalability as a whole
// rather than only through their own profile numbers.
type Role int

const (
	RoleNone Role = iota
	RoleCache
	RoleCDN
	RoleLoadBalancer
)

// ServiceProfile holds the static performance characteristics of one kind.
type ServiceProfile struct {
	BaseLatencyMs      float64
	ColdStartMs        float64
	ScalabilityCeiling float64
	Bottleneck         bool
	// LatencyReduction is descriptive; the engine applies fixed multipliers per role.
	LatencyReduction float64
	Role             Role
}

// DefaultProfile is used for kinds missing from the profile table.
var DefaultProfile = ServiceProfile{BaseLatencyMs: 10, ScalabilityCeiling: 70}

var profiles = map[topology.Kind]ServiceProfile{
	// compute
	topology.KindLambda:      {BaseLatencyMs: 15, ColdStartMs: 100, ScalabilityCeiling: 95},
	topology.KindComputeNode: {BaseLatencyMs: 5, ScalabilityCeiling: 85},

	// storage
	topology.KindS3:       {BaseLatencyMs: 10, ScalabilityCeiling: 98},
	topology.KindDynamoDB: {BaseLatencyMs: 8, ScalabilityCeiling: 95},
	topology.KindRDS:      {BaseLatencyMs: 12, ScalabilityCeiling: 60, Bottleneck: true},
	topology.KindDatabase: {BaseLatencyMs: 12, ScalabilityCeiling: 60, Bottleneck: true},

	// caching and edge
	topology.KindElastiCache: {BaseLatencyMs: 2, ScalabilityCeiling: 90, LatencyReduction: 0.6, Role: RoleCache},
	topology.KindCache:       {BaseLatencyMs: 2, ScalabilityCeiling: 90, LatencyReduction: 0.6, Role: RoleCache},
	topology.KindCloudFront:  {BaseLatencyMs: 15, ScalabilityCeiling: 99, LatencyReduction: 0.5, Role: RoleCDN},

	// entry points
	topology.KindAPIGateway:   {BaseLatencyMs: 8, ScalabilityCeiling: 98},
	topology.KindLoadBalancer: {BaseLatencyMs: 3, ScalabilityCeiling: 95, Role: RoleLoadBalancer},

	// messaging
	topology.KindSQS:          {BaseLatencyMs: 20, ScalabilityCeiling: 99},
	topology.KindSNS:          {BaseLatencyMs: 25, ScalabilityCeiling: 99},
	topology.KindMessageQueue: {BaseLatencyMs: 20, ScalabilityCeiling: 99},

	// hosting
	topology.KindAmplify: {BaseLatencyMs: 50, ScalabilityCeiling: 85},

	// networking
	topology.KindVPC:             {BaseLatencyMs: 0, ScalabilityCeiling: 100},
	topology.KindSubnet:          {BaseLatencyMs: 0, ScalabilityCeiling: 100},
	topology.KindSecurityGroup:   {BaseLatencyMs: 0, ScalabilityCeiling: 100},
	topology.KindNATGateway:      {BaseLatencyMs: 2, ScalabilityCeiling: 95},
	topology.KindInternetGateway: {BaseLatencyMs: 1, ScalabilityCeiling: 98},
}

// expensiveKinds carry a heavier weight in the cost index.
var expensiveKinds = map[topology.Kind]bool{
	topology.KindRDS:          true,
	topology.KindDatabase:     true,
	topology.KindElastiCache:  true,
	topology.KindLoadBalancer: true,
	topology.KindNATGateway:   true,
	topology.KindAmplify:      true,
}

// ProfileFor returns the profile of kind k, or DefaultProfile.
func ProfileFor(k topology.Kind) ServiceProfile {
	if p, ok := profiles[k]; ok {
		return p
	}
	return DefaultProfile
}

// Expensive reports whether kind k counts as an expensive service.
func Expensive(k topology.Kind) bool {
	return expensiveKinds[k]
}
