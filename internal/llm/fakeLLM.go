package llm

import (
	"context"
	"encoding/json"
	"fmt"

	llmclient "infralab/internal/llmClient"
)

// FakeClient returns deterministic payloads per phase for offline/testing.
// The JSON is wrapped in chatter the way real models tend to answer.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(ctx context.Context, req llmclient.ChatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var obj any
	switch PhaseFrom(ctx) {
	case PhaseExplain:
		obj = map[string]any{
			"explanation": "The layout keeps request paths short and leans on managed services, so latency stays low while cost remains moderate.",
		}
	case PhaseSuggest:
		obj = map[string]any{
			"suggestions": "1. Put a cache in front of the primary data store. 2. Add a load balancer across redundant compute. 3. Serve static assets through a CDN.",
		}
	case PhaseTopology:
		obj = map[string]any{
			"components": []map[string]string{
				{"id": "cloudfront-1", "type": "cloudfront"},
				{"id": "s3-1", "type": "s3"},
				{"id": "api_gateway-1", "type": "api_gateway"},
				{"id": "compute-1", "type": "compute_node"},
				{"id": "cache-1", "type": "cache"},
				{"id": "database-1", "type": "database"},
			},
			"connections": [][]string{
				{"cloudfront-1", "s3-1"},
				{"api_gateway-1", "compute-1"},
				{"compute-1", "cache-1"},
				{"compute-1", "database-1"},
			},
		}
	case PhaseProposal:
		obj = map[string]any{
			"executive_summary":      "A managed, serverless-first architecture that meets the stated goal at a predictable monthly cost.",
			"architecture_rationale": "Edge caching and a short request path keep latency low while managed services limit operational load.",
			"component_choices":      "Managed services were chosen over self-hosted alternatives to reduce maintenance and improve elasticity.",
			"tradeoffs":              "Managed services trade some control and portability for faster delivery and lower operational risk.",
			"risks":                  "Vendor lock-in and cold starts are mitigated with infrastructure as code and provisioned concurrency.",
			"next_steps":             "Validate the design with a load test, then roll out behind a feature flag.",
		}
	default:
		obj = map[string]any{"ok": true}
	}
	b, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sure! Here is the JSON you asked for:\n%s\nLet me know if you need anything else.", b), nil
}
