package topology

import "strings"

// Kind is the service kind of a component.
type Kind string

const (
	// AWS services
	KindLambda       Kind = "lambda"
	KindS3           Kind = "s3"
	KindDynamoDB     Kind = "dynamodb"
	KindCloudFront   Kind = "cloudfront"
	KindAPIGateway   Kind = "api_gateway"
	KindAmplify      Kind = "amplify"
	KindRDS          Kind = "rds"
	KindElastiCache  Kind = "elasticache"
	KindSQS          Kind = "sqs"
	KindSNS          Kind = "sns"
	KindLoadBalancer Kind = "load_balancer"

	// AWS networking
	KindVPC             Kind = "vpc"
	KindSubnet          Kind = "subnet"
	KindSecurityGroup   Kind = "security_group"
	KindNATGateway      Kind = "nat_gateway"
	KindInternetGateway Kind = "internet_gateway"

	// Generic
	KindComputeNode  Kind = "compute_node"
	KindDatabase     Kind = "database"
	KindCache        Kind = "cache"
	KindMessageQueue Kind = "message_queue"
)

var knownKinds = []Kind{
	KindLambda, KindS3, KindDynamoDB, KindCloudFront, KindAPIGateway, KindAmplify,
	KindRDS, KindElastiCache, KindSQS, KindSNS, KindLoadBalancer,
	KindVPC, KindSubnet, KindSecurityGroup, KindNATGateway, KindInternetGateway,
	KindComputeNode, KindDatabase, KindCache, KindMessageQueue,
}

// genericAliases maps generic kinds to the concrete AWS service they stand for.
var genericAliases = map[Kind]Kind{
	KindDatabase:     KindRDS,
	KindCache:        KindElastiCache,
	KindMessageQueue: KindSQS,
	KindComputeNode:  KindLambda,
}

// KnownKinds returns every kind accepted in a layout, in declaration order.
func KnownKinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// ConcreteKinds returns the AWS-specific kinds (generic ones excluded).
func ConcreteKinds() []Kind {
	out := make([]Kind, 0, len(knownKinds))
	for _, k := range knownKinds {
		if _, generic := genericAliases[k]; generic {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Known reports whether k is one of the declared service kinds.
func (k Kind) Known() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Concrete returns the AWS equivalent of a generic kind, or k itself.
func (k Kind) Concrete() Kind {
	if c, ok := genericAliases[k]; ok {
		return c
	}
	return k
}

func (k Kind) String() string { return string(k) }

// ParseKind normalizes case and surrounding space.
func ParseKind(s string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(s)))
}
