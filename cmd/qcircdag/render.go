package main

import (
	"fmt"
	"strings"

	"qcircdag/operations"
	"qcircdag/sim"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given rune width, padding with fill.
func padCenter(s string, width int, fill rune) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	total := width - len(runes)
	left := total / 2
	right := total - left
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
}

// opLabel returns a one-line description of an operation.
func opLabel(op operations.Operation) string {
	switch o := op.(type) {
	case operations.Definition:
		return fmt.Sprintf("def %s[%d]", o.Register, o.Length)
	case operations.Measurement:
		return fmt.Sprintf("measure q%d -> %s[%d]", o.Qubit, o.Register, o.Index)
	case operations.GateOperation:
		return gateLabel(o)
	case operations.Pragma:
		return strings.ToLower(o.Kind)
	}
	return op.Name()
}

func gateLabel(g operations.GateOperation) string {
	name := g.Type
	if g.IsDagger {
		name += "†"
	}
	if len(g.Params) > 0 {
		parts := make([]string, len(g.Params))
		for i, p := range g.Params {
			parts[i] = fmt.Sprintf("%.3g", p)
		}
		name += "(" + strings.Join(parts, ",") + ")"
	}
	var qubits []string
	for _, ctrl := range g.Controls {
		qubits = append(qubits, fmt.Sprintf("q%d", ctrl))
	}
	if g.Control >= 0 {
		qubits = append(qubits, fmt.Sprintf("q%d", g.Control))
	}
	qubits = append(qubits, fmt.Sprintf("q%d", g.Target))
	label := name + " " + strings.Join(qubits, ",")
	if g.Conditional != nil {
		label += fmt.Sprintf(" if %s[%d]", g.Conditional.Register, g.Conditional.Index)
	}
	return label
}

// gateBoxName is the short name drawn inside a circuit grid cell.
func gateBoxName(op operations.Operation) string {
	switch o := op.(type) {
	case operations.Measurement:
		return "M"
	case operations.GateOperation:
		name := o.Type
		if o.IsDagger {
			name += "†"
		}
		return name
	case operations.Pragma:
		if len(o.Kind) > 3 {
			return o.Kind[:3]
		}
		return o.Kind
	}
	return "?"
}

// ──────────────────────────── Views ────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.view {
	case viewCircuit:
		body = m.renderCircuitView()
	case viewBlocks:
		body = m.renderBlocksView()
	case viewScheduler:
		body = m.renderSchedulerView()
	case viewState:
		body = m.renderStateView()
	case viewQASM:
		body = m.qasmView.View()
	}

	var sb strings.Builder
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	sb.WriteString(panelStyle.Width(max(m.width-4, 20)).Render(body))
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for v := view(0); v < viewCount; v++ {
		if v == m.view {
			tabs = append(tabs, tabActiveStyle.Render("["+viewNames[v]+"]"))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+viewNames[v]+" "))
		}
	}
	return " " + strings.Join(tabs, " ")
}

func (m Model) renderFooter() string {
	help := "tab: view  ↑↓: cursor  q: quit"
	if m.view == viewScheduler {
		help = "tab: view  ↑↓: cursor  ⏎: execute  r: reset  q: quit"
	}
	line := " " + dimStyle.Render(help)
	if m.statusMsg != "" {
		line += "   " + statusStyle.Render(m.statusMsg)
	}
	return line
}

// renderCircuitView draws the circuit as a grid whose columns are the
// parallel blocks: everything in one column may run at once.
func (m Model) renderCircuitView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit by parallel block"))
	sb.WriteString("\n\n")

	widths := make([]int, len(m.blocks))
	for b, block := range m.blocks {
		w := 3
		for _, n := range block {
			op, err := m.dag.Operation(n)
			if err != nil {
				continue
			}
			if cw := len([]rune(gateBoxName(op))) + 2; cw > w {
				w = cw
			}
		}
		widths[b] = w + 2
	}

	for q := 0; q < m.circ.NumQubits; q++ {
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q%-2d", q)))
		sb.WriteString(" ")
		for b, block := range m.blocks {
			sb.WriteString(m.renderGridCell(block, q, widths[b]))
		}
		sb.WriteString("\n")
	}

	// Operations with no qubit footprint sit outside the wire grid.
	var silent []string
	for n := 0; n < m.dag.NodeCount(); n++ {
		op, err := m.dag.Operation(n)
		if err == nil && op.InvolvedQubits().IsNone() {
			silent = append(silent, fmt.Sprintf("[%d] %s", n, opLabel(op)))
		}
	}
	if len(silent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("no qubit footprint: " + strings.Join(silent, "  ")))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderGridCell draws one block column on one qubit wire.
func (m Model) renderGridCell(block []int, qubit, width int) string {
	for _, n := range block {
		op, err := m.dag.Operation(n)
		if err != nil || !op.InvolvedQubits().Contains(qubit) {
			continue
		}

		if g, ok := op.(operations.GateOperation); ok && g.Target != qubit {
			// Control wire of a multi-qubit gate.
			symbol := "●"
			if g.Type == "SWAP" {
				symbol = "×"
			}
			return padCenter(symbol, width, '─')
		}
		if p, ok := op.(operations.Pragma); ok && p.Qubits.IsAll() {
			return dimStyle.Render(padCenter("░", width, '░'))
		}
		return gateStyle.Render(padCenter("["+gateBoxName(op)+"]", width, '─'))
	}
	return strings.Repeat("─", width)
}

func (m Model) renderBlocksView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Parallel blocks"))
	sb.WriteString("\n\n")

	for b, block := range m.blocks {
		style := blockColors[b%len(blockColors)]
		var ops []string
		for _, n := range block {
			op, err := m.dag.Operation(n)
			if err != nil {
				continue
			}
			ops = append(ops, fmt.Sprintf("[%d] %s", n, opLabel(op)))
		}
		sb.WriteString(style.Render(fmt.Sprintf("block %d", b)))
		sb.WriteString("  " + strings.Join(ops, "  ·  "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d operations, %d edges, depth %d",
		m.dag.NodeCount(), m.dag.EdgeCount(), len(m.blocks))))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderSchedulerView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Front-layer stepper"))
	sb.WriteString("\n\n")

	for n := 0; n < m.dag.NodeCount(); n++ {
		op, err := m.dag.Operation(n)
		if err != nil {
			continue
		}

		marker := " "
		line := fmt.Sprintf("[%d] %s", n, opLabel(op))
		switch {
		case m.isExecuted(n):
			marker = "✓"
			line = executedStyle.Render(line)
		case m.isInFront(n):
			marker = "▸"
			line = readyStyle.Render(line)
		default:
			line = dimStyle.Render(line)
		}

		prefix := "  "
		if n == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, line))
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderCursorDetail())
	return sb.String()
}

// renderCursorDetail shows what still stands between the cursor node and
// execution, both the direct and the transitive view.
func (m Model) renderCursorDetail() string {
	direct, err := m.dag.BlockingPredecessors(m.executed, m.cursor)
	if err != nil {
		return dimStyle.Render(err.Error())
	}
	transitive, err := m.dag.ExecutionBlocked(m.executed, m.cursor)
	if err != nil {
		return dimStyle.Render(err.Error())
	}

	var sb strings.Builder
	sb.WriteString(dimStyle.Render(fmt.Sprintf("node %d  direct blockers: %v  all blockers: %v",
		m.cursor, direct, transitive)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("front layer: %v  executed: %d/%d",
		m.front, len(m.executed), m.dag.NodeCount())))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderStateView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Final state (block execution)"))
	sb.WriteString("\n\n")

	state := sim.RunBlocks(m.dag, m.circ.NumQubits)
	const barW = 24
	for q, p := range state.GetQubitProbabilities() {
		filled := int(p.Prob1*barW + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q%-2d", q)))
		sb.WriteString(fmt.Sprintf(" |1⟩ %s %.3f\n", bar, p.Prob1))
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("unitary evolution only; measurements and conditionals skipped"))
	sb.WriteString("\n")
	return sb.String()
}
