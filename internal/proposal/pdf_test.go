package proposal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infralab/internal/pricing"
)

func TestRender_ProducesPDF(t *testing.T) {
	out, err := Render(Document{
		UseCase: "Photo sharing — global",
		Goal:    "low_latency",
		Sections: []Section{
			{Heading: "Executive Summary", Body: "Line one.\n“Quoted” line two…"},
			{Heading: "Next Steps", Body: "• Ship it 🚀"},
		},
		Costs: []pricing.LineItem{
			{Service: "rds", Count: 1, UnitMonthlyUSD: 120, SubtotalMonthlyUSD: 120},
			{Service: "lambda", Count: 2, UnitMonthlyUSD: 5, SubtotalMonthlyUSD: 10},
		},
		TotalMonthlyUSD: 130,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_EmptyDocument(t *testing.T) {
	out, err := Render(Document{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `a - b - "c" 'd' ... - e`, Sanitize("a — b – “c” ‘d’ … • e"))
	assert.Equal(t, "café ", Sanitize("café 🚀"))
	assert.Equal(t, "", Sanitize("北京"))
}
