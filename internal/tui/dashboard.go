// Package tui renders the live hunter dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

// Run starts the dashboard over a live session.
func Run(svc *game.Service) error {
	p := tea.NewProgram(newModel(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type tickMsg time.Time

type model struct {
	svc    *game.Service
	width  int
	height int
	status string
}

func newModel(svc *game.Service) model {
	return model{svc: svc}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c":
			if err := m.svc.Complete(context.Background(), true); err != nil {
				m.status = err.Error()
			} else {
				m.status = "quest completed"
			}
			return m, nil
		case "f":
			if err := m.svc.Fail(context.Background()); err != nil {
				m.status = err.Error()
			} else {
				m.status = "quest failed"
			}
			return m, nil
		case "g":
			if _, err := m.svc.ClaimMysteryGift(context.Background()); err != nil {
				m.status = err.Error()
			} else {
				m.status = "gift claimed"
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	profile := m.svc.Profile()
	stats := m.svc.Stats()
	pen := m.svc.Penalties()

	var b strings.Builder

	name := profile.Name
	if name == "" {
		name = "UNAWAKENED"
	}
	b.WriteString(ui.Heading(ui.IconSword, fmt.Sprintf("HUNTER %s", strings.ToUpper(name))))
	b.WriteString("\n\n")

	statsPanel := fmt.Sprintf(
		"%s %s   %s %d   %s %d\n%s %s %d/%d\n%s %d  %s %d  %s %d",
		ui.Key.Render("Rank:"), ui.RankText(stats.Rank),
		ui.Key.Render("Level:"), stats.Level,
		ui.Key.Render("Coins:"), stats.Coins,
		ui.Key.Render("XP:"), ui.XPBar(stats.XP, stats.MaxXP, 24), stats.XP, stats.MaxXP,
		ui.Key.Render("STR"), stats.STR,
		ui.Key.Render("AGI"), stats.AGI,
		ui.Key.Render("END"), stats.Endurance,
	)
	b.WriteString(ui.Panel.Render(statsPanel))
	b.WriteString("\n\n")

	streak := fmt.Sprintf("%s %d day(s)", ui.IconFire, stats.Streak)
	if pen.StreakFrozen {
		streak += "  " + ui.Muted.Render(ui.IconFrozen+" frozen")
	}
	b.WriteString(ui.LabelValue("Streak", streak))
	b.WriteString("\n")
	if pen.WarningMode {
		b.WriteString(ui.Bad.Render(fmt.Sprintf("%s WARNING MODE - XP x%.1f (misses: %d)", ui.IconWarn, pen.XPPenalty, pen.ConsecutiveMisses)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(ui.H2.Render(ui.IconScroll + " Active Quest"))
	b.WriteString("\n")
	if q := m.svc.ActiveQuest(); q != nil {
		remaining := time.Until(q.Deadline).Round(time.Second)
		var deadline string
		if remaining <= 0 {
			deadline = ui.Bad.Render("EXPIRED")
		} else {
			deadline = ui.Warn.Render(remaining.String())
		}
		quest := fmt.Sprintf("%s\n%s\n%s %s   %s +%d %s +%d XP",
			ui.Title.Render(q.Title),
			ui.Muted.Render(q.Description),
			ui.Key.Render("Time left:"), deadline,
			ui.Key.Render("Reward:"), q.RewardCoins, ui.IconCoin, q.RewardXP,
		)
		b.WriteString(ui.Panel.Render(quest))
	} else {
		b.WriteString(ui.Muted.Render("none - stay alert"))
	}
	b.WriteString("\n\n")

	daily := m.svc.DailyProgress()
	var marks []string
	for _, w := range game.Workouts {
		done := false
		for _, id := range daily.CompletedIDs {
			if id == w.ID {
				done = true
				break
			}
		}
		if done {
			marks = append(marks, ui.Good.Render(ui.IconDone+" "+w.Title))
		} else {
			marks = append(marks, ui.Muted.Render("· "+w.Title))
		}
	}
	b.WriteString(ui.H2.Render(ui.IconBolt + " Daily Quests"))
	b.WriteString("\n")
	b.WriteString(strings.Join(marks, "\n"))
	b.WriteString("\n\n")

	if entries := m.svc.SystemLog().Entries(); len(entries) > 0 {
		b.WriteString(ui.H2.Render(ui.IconSystem + " System"))
		b.WriteString("\n")
		for _, e := range entries {
			b.WriteString(ui.Muted.Render(e.Timestamp) + " " + e.Text + "\n")
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(ui.Warn.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(ui.Muted.Render("c complete quest · f fail quest · g gift · q quit"))

	content := b.String()
	if m.width > 0 {
		content = lipgloss.NewStyle().MaxWidth(m.width).Render(content)
	}
	return content
}
