package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/engine"
)

func sampleDays() []engine.DaySnapshot {
	return []engine.DaySnapshot{
		{
			Day: 1,
			Shops: []engine.ShopSnapshot{
				{Day: 1, ShopID: 0, Money: 1000, TotalStock: 80, Sales: 2},
				{Day: 1, ShopID: 1, Money: 1200.5, TotalStock: 40, Sales: 1},
			},
			Clients: []engine.ClientSnapshot{
				{Day: 1, ClientID: 2, Money: 480, Summary: "Milk: 10"},
			},
		},
		{
			Day: 2,
			Shops: []engine.ShopSnapshot{
				{Day: 2, ShopID: 0, Money: 1010, TotalStock: 75},
				{Day: 2, ShopID: 1, Money: 1234.5, TotalStock: 1200, Sales: 3},
			},
			Clients: []engine.ClientSnapshot{
				{Day: 2, ClientID: 2, Money: 471.25, Summary: "Empty"},
			},
		},
	}
}

func TestSeries(t *testing.T) {
	days := sampleDays()

	money := ShopMoney(days)
	assert.Equal(t, []agents.AgentID{0, 1}, money.IDs())
	assert.Equal(t, []float64{1000, 1010}, money[0])
	assert.Equal(t, []float64{1200.5, 1234.5}, money[1])

	assert.Equal(t, []float64{40, 1200}, ShopStock(days)[1])
	assert.Equal(t, []float64{480, 471.25}, ClientMoney(days)[2])
	assert.Empty(t, ShopMoney(nil))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleDays()[1]))

	out := buf.String()
	assert.Contains(t, out, "Day 2")
	assert.Contains(t, out, "1,234.5")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2,244.5")
	assert.Contains(t, out, "471.25")
	assert.Contains(t, out, "Empty")
}

func TestWriteHeatmap(t *testing.T) {
	m, err := engine.NewModel(engine.DefaultModelConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHeatmap(&buf, m.Grid()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	total := 0
	for _, line := range lines {
		for _, f := range strings.Fields(line) {
			if f == "1" {
				total++
			}
		}
	}
	assert.Equal(t, 35, total)
}
