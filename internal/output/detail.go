package output

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccwatch-go/internal/types"
)

// DetailTable renders the full snapshot breakdown for `status --detail`.
func DetailTable(snap types.Snapshot) string {
	var buf bytes.Buffer

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off), // Disable auto uppercase
	)

	table.Header([]string{"Field", "Value"})

	pct := PercentPlaceholder
	if snap.HasPercentage() {
		pct = fmt.Sprintf("%d%%", *snap.Percentage)
	}

	table.Append([]string{"Utilization", pct})
	table.Append([]string{"Resets in", FormatRemaining(snap.RemainingMinutes)})
	table.Append([]string{"Cost (USD)", fmt.Sprintf("$%.2f", snap.Cost)})
	table.Append([]string{"Input tokens", formatNumber(snap.Tokens.InputTokens)})
	table.Append([]string{"Output tokens", formatNumber(snap.Tokens.OutputTokens)})
	table.Append([]string{"Cache creation tokens", formatNumber(snap.Tokens.CacheCreationInputTokens)})
	table.Append([]string{"Cache read tokens (free)", formatNumber(snap.Tokens.CacheReadInputTokens)})
	table.Append([]string{"Quota tokens", formatNumber(snap.Tokens.QuotaTokens())})
	table.Append([]string{"Source", string(snap.Source)})

	table.Render()
	return buf.String()
}
