// Package output renders snapshots for the panel string, the terminal
// and JSON consumers.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sdpower/ccwatch-go/internal/types"
)

// ErrorText is the panel marker shown when a cycle produced no usable
// data at all.
const ErrorText = "⚠ no data"

// PercentPlaceholder stands in when percentage display is enabled but no
// source supplied one this cycle.
const PercentPlaceholder = "--%"

// Options are the display toggles from configuration.
type Options struct {
	ShowPercentage    bool
	ShowRemainingTime bool
	// FallbackLimitUSD is appended to the error line as plan context
	// when non-zero.
	FallbackLimitUSD float64
}

// StatusLine composes the compact panel string for one snapshot, e.g.
// "0h 18m | 29%". A degraded result (time without percentage) renders
// with a placeholder; when neither time nor percentage is displayable
// the window cost is shown instead.
func StatusLine(snap types.Snapshot, opts Options) string {
	var parts []string

	if opts.ShowRemainingTime && snap.RemainingMinutes > 0 {
		parts = append(parts, FormatRemaining(snap.RemainingMinutes))
	}

	if opts.ShowPercentage {
		if snap.HasPercentage() {
			parts = append(parts, fmt.Sprintf("%d%%", *snap.Percentage))
		} else if len(parts) > 0 {
			parts = append(parts, PercentPlaceholder)
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("$%.2f", snap.Cost)
	}
	return strings.Join(parts, " | ")
}

// ErrorLine is the panel string for a failed cycle.
func ErrorLine(opts Options) string {
	if opts.FallbackLimitUSD > 0 {
		return fmt.Sprintf("%s (limit $%.0f)", ErrorText, opts.FallbackLimitUSD)
	}
	return ErrorText
}

// FormatRemaining renders minutes-until-reset as "Hh Mm".
func FormatRemaining(mins int) string {
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

// FormatJSON renders any report structure indented, matching the other
// machine-readable outputs.
func FormatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// formatNumber adds thousands separators for token counts.
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}
