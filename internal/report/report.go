// Package report turns daily snapshots into per-entity time series and
// human-readable summaries for whoever plots or reads a run.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/engine"
	"github.com/talgya/mini-market/internal/world"
)

// Series maps an entity ID to one value per recorded day.
type Series map[agents.AgentID][]float64

// IDs returns the series' entity IDs in ascending order.
func (s Series) IDs() []agents.AgentID {
	ids := make([]agents.AgentID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ShopMoney returns each shop's money over time.
func ShopMoney(days []engine.DaySnapshot) Series {
	out := make(Series)
	for _, d := range days {
		for _, s := range d.Shops {
			out[s.ShopID] = append(out[s.ShopID], s.Money)
		}
	}
	return out
}

// ShopStock returns each shop's total stock over time.
func ShopStock(days []engine.DaySnapshot) Series {
	out := make(Series)
	for _, d := range days {
		for _, s := range d.Shops {
			out[s.ShopID] = append(out[s.ShopID], float64(s.TotalStock))
		}
	}
	return out
}

// ClientMoney returns each client's money over time.
func ClientMoney(days []engine.DaySnapshot) Series {
	out := make(Series)
	for _, d := range days {
		for _, c := range d.Clients {
			out[c.ClientID] = append(out[c.ClientID], c.Money)
		}
	}
	return out
}

// Heatmap returns the number of agents on each cell as counts[x][y].
func Heatmap(g *world.Grid) [][]int {
	return g.Counts()
}

// WriteHeatmap prints the heatmap one grid row per line.
func WriteHeatmap(w io.Writer, g *world.Grid) error {
	counts := Heatmap(g)
	for y := 0; y < g.Height; y++ {
		row := make([]string, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = fmt.Sprintf("%d", counts[x][y])
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints an end-of-run table of shops and clients.
func WriteSummary(w io.Writer, snap engine.DaySnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Day %d\n\n", snap.Day)
	fmt.Fprintln(tw, "SHOP\tMONEY\tSTOCK\tSALES TODAY")
	for _, s := range snap.Shops {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.ShopID, money(s.Money), humanize.Comma(int64(s.TotalStock)), s.Sales)
	}
	fmt.Fprintf(tw, "total\t%s\t%s\t%d\n\n", money(snap.TotalShopMoney()),
		humanize.Comma(int64(snap.TotalStock())), snap.TotalSales())

	fmt.Fprintln(tw, "CLIENT\tMONEY\tINVENTORY")
	for _, c := range snap.Clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ClientID, money(c.Money), c.Summary)
	}
	fmt.Fprintf(tw, "total\t%s\t\n", money(snap.TotalClientMoney()))

	return tw.Flush()
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
