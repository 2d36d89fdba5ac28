package circuit

import (
	"fmt"
	"strings"

	"qcircdag/operations"
)

// ToQASM renders the circuit as OpenQASM 2.0. Register definitions become
// creg declarations; noise and annotation pragmas become comments since QASM
// has no spelling for them.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	for _, op := range c.ops {
		for _, q := range op.InvolvedQubits().Qubits() {
			numQubits = max(numQubits, q+1)
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)

	defs := c.Definitions()
	if len(defs) == 0 {
		sb.WriteString("creg c[1];\n")
	}
	for _, def := range defs {
		fmt.Fprintf(&sb, "creg %s[%d];\n", def.Register, def.Length)
	}
	sb.WriteString("\n")

	for _, op := range c.ops {
		c.writeOpQASM(&sb, op, numQubits)
	}

	return sb.String()
}

func (c *Circuit) writeOpQASM(sb *strings.Builder, op operations.Operation, numQubits int) {
	switch o := op.(type) {
	case operations.Definition:
		// Emitted with the header.

	case operations.Measurement:
		fmt.Fprintf(sb, "measure q[%d] -> %s[%d];\n", o.Qubit, o.Register, o.Index)

	case operations.Pragma:
		c.writePragmaQASM(sb, o, numQubits)

	case operations.GateOperation:
		c.writeGateQASM(sb, o)
	}
}

func (c *Circuit) writePragmaQASM(sb *strings.Builder, p operations.Pragma, numQubits int) {
	switch {
	case p.Kind == "Barrier":
		qubits := make([]string, numQubits)
		for q := range numQubits {
			qubits[q] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(sb, "barrier %s;\n", strings.Join(qubits, ", "))

	case p.Kind == "RepeatedMeasurement":
		register, _ := p.Classical.AllRegister()
		for q := range numQubits {
			fmt.Fprintf(sb, "measure q[%d] -> %s[%d];\n", q, register, q)
		}

	case !p.Qubits.IsNone() && !p.Qubits.IsAll():
		// Noise insertions keep the teacher comment convention of q-deck's
		// QASM dialect so a round trip preserves them.
		target := p.Qubits.Qubits()[0]
		if len(p.Params) > 0 {
			fmt.Fprintf(sb, "// noise %s q[%d] param=%s\n", strings.ToLower(p.Kind), target, FormatParam(p.Params[0]))
		} else {
			fmt.Fprintf(sb, "// noise %s q[%d]\n", strings.ToLower(p.Kind), target)
		}

	default:
		fmt.Fprintf(sb, "// pragma %s\n", strings.ToLower(p.Kind))
	}
}

func (c *Circuit) writeGateQASM(sb *strings.Builder, g operations.GateOperation) {
	if g.Conditional != nil {
		fmt.Fprintf(sb, "if (%s[%d]==1) ", g.Conditional.Register, g.Conditional.Index)
	}

	name := strings.ToLower(g.Type)
	if g.IsDagger {
		name += "dg"
	}

	switch {
	case len(g.Controls) > 0:
		fmt.Fprintf(sb, "%s ", name)
		for _, ctrl := range g.Controls {
			fmt.Fprintf(sb, "q[%d], ", ctrl)
		}
		fmt.Fprintf(sb, "q[%d];\n", g.Target)

	case g.Control >= 0:
		if len(g.Params) > 0 {
			fmt.Fprintf(sb, "%s(%s) q[%d], q[%d];\n", name, formatParams(g.Params), g.Control, g.Target)
		} else {
			fmt.Fprintf(sb, "%s q[%d], q[%d];\n", name, g.Control, g.Target)
		}

	default:
		if len(g.Params) > 0 {
			fmt.Fprintf(sb, "%s(%s) q[%d];\n", name, formatParams(g.Params), g.Target)
		} else {
			fmt.Fprintf(sb, "%s q[%d];\n", name, g.Target)
		}
	}
}

func formatParams(params []float64) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = FormatParam(p)
	}
	return strings.Join(parts, ", ")
}
