package main

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"qcircdag/circuit"
	"qcircdag/dag"
)

// view identifies which inspector panel is active.
type view int

const (
	viewCircuit view = iota
	viewBlocks
	viewScheduler
	viewState
	viewQASM
	viewCount
)

var viewNames = [viewCount]string{"Circuit", "Blocks", "Scheduler", "State", "QASM"}

// Model holds the inspector state. The graph is immutable once built; only
// the simulated execution front advances.
type Model struct {
	circ   *circuit.Circuit
	dag    *dag.CircuitDag
	blocks [][]int

	view      view
	cursor    int
	executed  []int
	front     []int
	statusMsg string

	width  int
	height int

	qasmView textarea.Model
}

func initialModel(circ *circuit.Circuit, d *dag.CircuitDag) Model {
	ta := textarea.New()
	ta.SetWidth(60)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.SetValue(circ.ToQASM())

	var blocks [][]int
	for block := range d.ParallelBlocks() {
		blocks = append(blocks, block)
	}

	return Model{
		circ:     circ,
		dag:      d,
		blocks:   blocks,
		front:    d.FirstParallelBlock(),
		qasmView: ta,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmView.SetWidth(max(msg.Width-8, 20))
		m.qasmView.SetHeight(max(msg.Height-8, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.view = (m.view + 1) % viewCount
		case "shift+tab":
			m.view = (m.view + viewCount - 1) % viewCount
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.dag.NodeCount()-1 {
				m.cursor++
			}
		case "enter":
			if m.view == viewScheduler {
				m.executeCursor()
			}
		case "r":
			if m.view == viewScheduler {
				m.executed = nil
				m.front = m.dag.FirstParallelBlock()
				m.statusMsg = "schedule reset"
			}
		}
	}

	return m, nil
}

// executeCursor marks the cursor node as executed and advances the front
// layer past it.
func (m *Model) executeCursor() {
	next, err := m.dag.NewFrontLayer(m.executed, m.front, m.cursor)
	if err != nil {
		if errors.Is(err, dag.ErrNotInFrontLayer) {
			m.statusMsg = "not ready: predecessors still pending"
		} else {
			m.statusMsg = err.Error()
		}
		return
	}
	m.executed = append(m.executed, m.cursor)
	m.front = next
	slog.Debug("executed node", "node", m.cursor, "front", m.front)
}

func (m Model) isExecuted(node int) bool {
	for _, n := range m.executed {
		if n == node {
			return true
		}
	}
	return false
}

func (m Model) isInFront(node int) bool {
	for _, n := range m.front {
		if n == node {
			return true
		}
	}
	return false
}
