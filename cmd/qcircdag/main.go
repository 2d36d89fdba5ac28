// qcircdag inspects the dependency graph of a quantum circuit: which
// operations block which, how the circuit decomposes into parallel blocks,
// and how a front layer advances as operations execute.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"qcircdag/circuit"
	"qcircdag/dag"
	"qcircdag/operations"
)

var cli struct {
	Path     string `arg:"" optional:"" help:"OpenQASM 2.0 file to inspect. Omit for a built-in demo circuit." type:"existingfile"`
	DebugLog string `help:"Write debug logs to FILE. The TUI owns stdout, so logs need a file." placeholder:"FILE"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("qcircdag"),
		kong.Description("Terminal inspector for quantum circuit dependency graphs."),
	)

	logger, cleanup, err := setupLogging(cli.DebugLog)
	kctx.FatalIfErrorf(err)
	defer cleanup()
	slog.SetDefault(logger)

	circ, err := loadCircuit(cli.Path)
	kctx.FatalIfErrorf(err)

	d, err := dag.FromCircuit(circ)
	kctx.FatalIfErrorf(err)
	slog.Info("graph built", "nodes", d.NodeCount(), "edges", d.EdgeCount())

	p := tea.NewProgram(initialModel(circ, d), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "qcircdag: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func loadCircuit(path string) (*circuit.Circuit, error) {
	if path == "" {
		return demoCircuit(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit: %w", err)
	}
	c, err := circuit.ParseQASM(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// demoCircuit is a measured Bell pair, small enough that every view of the
// inspector fits on one screen.
func demoCircuit() *circuit.Circuit {
	c := circuit.New(2)
	c.Add(operations.NewBitDefinition("m", 2, true))
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewGate("CX", 1, 0))
	c.Add(operations.NewMeasurement(0, "m", 0))
	c.Add(operations.NewMeasurement(1, "m", 1))
	return c
}
