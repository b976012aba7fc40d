// Package ui is the interactive terminal viewer for a running island
// simulation: one year advances per tick and the island is drawn as a
// colored cell grid with per-species totals.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/rossumoya/internal/sim"
)

type AppConfig struct {
	Years     int
	TickEvery time.Duration
	Observe   func(sim.Snapshot) // optional hook invoked after every year
}

type App struct {
	cfg AppConfig
	sim *sim.Simulation
}

func NewApp(s *sim.Simulation, cfg AppConfig) *App {
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = 80 * time.Millisecond
	}
	return &App{cfg: cfg, sim: s}
}

func (a *App) Run() error {
	m := newRunModel(a.sim, a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	herbStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	carnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	oceanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
	mountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	desertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
	savanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	jungleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
)

type tickMsg time.Time

type runModel struct {
	cfg     AppConfig
	sim     *sim.Simulation
	terrain [][]sim.Terrain

	snap    sim.Snapshot
	started bool
	paused  bool
	done    bool
}

func newRunModel(s *sim.Simulation, cfg AppConfig) runModel {
	return runModel{
		cfg:     cfg,
		sim:     s,
		terrain: s.Island().TerrainGrid(),
	}
}

func (m runModel) Init() tea.Cmd {
	return m.tick()
}

func (m runModel) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, m.tick()
		}
		m.snap = m.sim.AdvanceYear()
		m.started = true
		if m.cfg.Observe != nil {
			m.cfg.Observe(m.snap)
		}
		if m.snap.Year >= m.cfg.Years || m.snap.TotalAnimals() == 0 {
			m.done = true
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m runModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Rossumøya"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  seed %d", m.sim.Seed())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Year %d/%d   %s %d   %s %d\n\n",
		m.snap.Year, m.cfg.Years,
		herbStyle.Render("herbivores"), m.snap.Herbivores,
		carnStyle.Render("carnivores"), m.snap.Carnivores,
	))
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	switch {
	case m.done:
		b.WriteString(dimStyle.Render("finished - press q to exit"))
	case m.paused:
		b.WriteString(dimStyle.Render("paused - space resumes, q quits"))
	default:
		b.WriteString(dimStyle.Render("space pauses, q quits"))
	}
	b.WriteString("\n")
	return b.String()
}

// renderGrid draws the island, one character per cell: the terrain token
// when the cell is empty, otherwise a density digit colored by the dominant
// species.
func (m runModel) renderGrid() string {
	var b strings.Builder
	for r := range m.terrain {
		for c, t := range m.terrain[r] {
			herbs, carns := 0, 0
			if m.started {
				herbs = m.snap.HerbivoreGrid[r][c]
				carns = m.snap.CarnivoreGrid[r][c]
			}
			if herbs+carns == 0 {
				b.WriteString(terrainStyle(t).Render(string(t.Token())))
				continue
			}
			style := herbStyle
			if carns > herbs {
				style = carnStyle
			}
			b.WriteString(style.Render(string(densityRune(herbs + carns))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func terrainStyle(t sim.Terrain) lipgloss.Style {
	switch t {
	case sim.Ocean:
		return oceanStyle
	case sim.Mountain:
		return mountStyle
	case sim.Desert:
		return desertStyle
	case sim.Savannah:
		return savanStyle
	default:
		return jungleStyle
	}
}

func densityRune(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n <= 9:
		return rune('0' + n)
	default:
		return '+'
	}
}
