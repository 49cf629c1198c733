package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type phase int

const (
	phaseScanning phase = iota
	phaseAnalyzing
	phaseOrganizing
	phaseDone
)

// maxLogLines caps the scrolling action log.
const maxLogLines = 12

type progressUpdate struct {
	current int
	total   int
	status  string
}

type model struct {
	cfg          RunConfig
	currentPhase phase
	spinner      spinner.Model
	progress     progress.Model

	update   progressUpdate
	logLines []string

	stats  Stats
	runErr error

	progressChan chan progressUpdate
	logChan      chan string

	width  int
	height int
}

type progressMsg progressUpdate
type logMsg string

type runCompleteMsg struct {
	stats Stats
	err   error
}

func initialModel(cfg RunConfig) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)
	p.Width = 60

	return model{
		cfg:          cfg,
		spinner:      s,
		progress:     p,
		currentPhase: phaseScanning,
		progressChan: make(chan progressUpdate, 100),
		logChan:      make(chan string, 100),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		runEngine(m.cfg, m.progressChan, m.logChan),
		waitForProgress(m.progressChan),
		waitForLog(m.logChan),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		progressWidth := msg.Width - 35
		if progressWidth < 20 {
			progressWidth = 20
		}
		m.progress.Width = progressWidth
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.currentPhase == phaseDone {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.update = progressUpdate(msg)
		switch {
		case strings.HasPrefix(m.update.status, "scanning"):
			m.currentPhase = phaseScanning
		case strings.HasPrefix(m.update.status, "analyzing"):
			m.currentPhase = phaseAnalyzing
		default:
			m.currentPhase = phaseOrganizing
		}
		return m, waitForProgress(m.progressChan)

	case logMsg:
		m.logLines = append(m.logLines, string(msg))
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		return m, waitForLog(m.logChan)

	case runCompleteMsg:
		m.stats = msg.stats
		m.runErr = msg.err
		m.currentPhase = phaseDone
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		MarginLeft(2)

	b.WriteString(titleStyle.Render("photohdler"))
	b.WriteString("\n\n")

	configStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginLeft(2)
	modeStr := map[bool]string{true: "DRY RUN", false: map[bool]string{true: "COPY", false: "MOVE"}[m.cfg.CopyMode]}[m.cfg.DryRun]
	b.WriteString(configStyle.Render(fmt.Sprintf(
		"%s → %s | layout: %s | %s",
		truncatePath(strings.Join(m.cfg.Sources, ","), 30),
		truncatePath(m.cfg.Destination, 30),
		m.cfg.Mode,
		modeStr,
	)))
	b.WriteString("\n\n")

	b.WriteString("  ")
	phases := []string{"Scanning", "Analyzing", "Organizing", "Done"}
	for i, name := range phases {
		if i > 0 {
			b.WriteString(" → ")
		}
		switch {
		case int(m.currentPhase) == i:
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render(name))
		case int(m.currentPhase) > i:
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("✓"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(name))
		}
	}
	b.WriteString("\n\n")

	switch m.currentPhase {
	case phaseDone:
		doneStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			MarginLeft(2)
		if m.runErr != nil {
			errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginLeft(2)
			b.WriteString(errStyle.Render(fmt.Sprintf("✗ run failed: %v", m.runErr)))
		} else {
			verb := "moved"
			count := m.stats.Moved
			if m.cfg.CopyMode {
				verb = "copied"
				count = m.stats.Copied
			}
			b.WriteString(doneStyle.Render(fmt.Sprintf(
				"✓ %d processed • %d %s • %d duplicates skipped • %d deleted • %d renamed • %d errors",
				m.stats.Processed, count, verb, m.stats.SkippedDuplicate,
				m.stats.DeletedDuplicate, m.stats.Renamed, m.stats.Errors)))
		}
		b.WriteString("\n")

	default:
		b.WriteString(fmt.Sprintf("  %s %s\n\n", m.spinner.View(), truncatePath(m.update.status, 60)))

		if m.update.total > 0 && m.currentPhase == phaseOrganizing {
			percent := float64(m.update.current) / float64(m.update.total)
			b.WriteString("  ")
			b.WriteString(m.progress.ViewAs(percent))
			b.WriteString(fmt.Sprintf(" %d%% (%d/%d files)\n", int(percent*100), m.update.current, m.update.total))
		}
	}

	if len(m.logLines) > 0 {
		b.WriteString("\n")
		logWidth := m.width - 6
		if logWidth < 40 {
			logWidth = 40
		}
		logStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginLeft(2)
		for _, line := range m.logLines {
			b.WriteString(logStyle.Render(truncatePath(line, logWidth)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginLeft(2)
	if m.currentPhase == phaseDone {
		b.WriteString(helpStyle.Render("enter: quit • q: quit"))
	} else {
		b.WriteString(helpStyle.Render("q: quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// Commands

// runEngine starts the organize run in the background, feeding the progress
// and log channels with non-blocking sends so the worker never waits on the
// display.
func runEngine(cfg RunConfig, progressChan chan progressUpdate, logChan chan string) tea.Cmd {
	return func() tea.Msg {
		progress := func(current, total int, status string) {
			select {
			case progressChan <- progressUpdate{current: current, total: total, status: status}:
			default:
			}
		}
		logf := func(format string, args ...any) {
			select {
			case logChan <- fmt.Sprintf(format, args...):
			default:
			}
		}

		engine := NewEngine(cfg, progress, logf)
		stats, err := engine.Run()
		return runCompleteMsg{stats: stats, err: err}
	}
}

func waitForProgress(progressChan <-chan progressUpdate) tea.Cmd {
	return func() tea.Msg {
		prog, ok := <-progressChan
		if !ok {
			return nil
		}
		return progressMsg(prog)
	}
}

func waitForLog(logChan <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-logChan
		if !ok {
			return nil
		}
		return logMsg(line)
	}
}
