// Package watch is the live terminal view. It renders whatever the
// refresh scheduler produces; it never fetches data itself.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sdpower/ccwatch-go/internal/output"
	"github.com/sdpower/ccwatch-go/internal/types"
)

const barWidth = 30

// Update is one completed reconciliation cycle, pushed by the scheduler.
type Update struct {
	Snapshot types.Snapshot
	Err      error
}

type Options struct {
	Display output.Options
	NoColor bool
}

type Model struct {
	opts    Options
	updates <-chan Update
	poke    func()

	snap       *types.Snapshot
	err        error
	lastUpdate time.Time
	width      int
	quitting   bool
}

func NewModel(opts Options, updates <-chan Update, poke func()) Model {
	if poke == nil {
		poke = func() {}
	}
	return Model{opts: opts, updates: updates, poke: poke}
}

// Run starts the program and blocks until quit.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func waitForUpdate(updates <-chan Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return tea.Quit()
		}
		return u
	}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.poke()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case Update:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			snap := msg.Snapshot
			m.snap = &snap
			m.err = nil
		}
		m.lastUpdate = time.Now()
		return m, waitForUpdate(m.updates)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	if !m.opts.NoColor {
		headerStyle = headerStyle.Foreground(lipgloss.Color("205"))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Claude Usage Watch"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(output.ErrorLine(m.opts.Display))
		b.WriteString("\n")
	case m.snap == nil:
		b.WriteString("Waiting for first refresh...\n")
	default:
		b.WriteString(m.renderSnapshot())
	}

	b.WriteString("\nPress 'q' to quit, 'r' to refresh")
	return b.String()
}

func (m Model) renderSnapshot() string {
	snap := *m.snap
	var b strings.Builder

	if snap.HasPercentage() {
		pct := *snap.Percentage
		b.WriteString(fmt.Sprintf("%s %3d%%  window usage\n", m.bar(pct), pct))
	}
	b.WriteString(fmt.Sprintf("Resets in: %s\n", output.FormatRemaining(snap.RemainingMinutes)))
	if snap.Cost > 0 {
		b.WriteString(fmt.Sprintf("Cost: $%.2f\n", snap.Cost))
	}
	if quota := snap.Tokens.QuotaTokens(); quota > 0 {
		b.WriteString(fmt.Sprintf("Quota tokens: %d (cache reads excluded)\n", quota))
	}
	b.WriteString(fmt.Sprintf("Source: %s  Updated: %s\n",
		snap.Source, m.lastUpdate.Format("15:04:05")))

	b.WriteString("\n")
	b.WriteString(output.StatusLine(snap, m.opts.Display))
	b.WriteString("\n")
	return b.String()
}

func (m Model) bar(pct int) string {
	filled := pct * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if m.opts.NoColor {
		return bar
	}
	return lipgloss.NewStyle().Foreground(barColor(pct)).Render(bar)
}

// barColor blends green into red as utilization climbs.
func barColor(pct int) lipgloss.Color {
	green, _ := colorful.Hex("#04b575")
	red, _ := colorful.Hex("#ed567a")
	c := green.BlendLuv(red, float64(pct)/100)
	return lipgloss.Color(c.Hex())
}
