package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qcircdag/operations"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	ifRegex              = regexp.MustCompile(`^if\s*\(\s*(\w+)(?:\[(\d+)\])?\s*==\s*(\d+)\s*\)\s+(\w+)\s+q\[(\d+)\];?$`)
	ifParamRegex         = regexp.MustCompile(`^if\s*\(\s*(\w+)(?:\[(\d+)\])?\s*==\s*(\d+)\s*\)\s+(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
	cregRegex            = regexp.MustCompile(`creg\s+(\w+)\[(\d+)\]`)
	noiseRegex           = regexp.MustCompile(`^//\s*noise\s+(\w+)\s+q\[(\d+)\](?:\s+param=(` + paramPattern + `))?$`)
)

// knownGates is the gate catalog the parser accepts, keyed by the upper-case
// mnemonic after dagger stripping and aliasing. Anything else falls through
// to the unrecognized-line error.
var knownGates = map[string]bool{
	"H": true, "X": true, "Y": true, "Z": true, "S": true, "T": true,
	"SX": true, "RX": true, "RY": true, "RZ": true, "P": true,
	"U1": true, "U2": true, "U3": true,
	"CX": true, "CZ": true, "CH": true, "SWAP": true,
	"CRX": true, "CRY": true, "CRZ": true, "CP": true, "CU1": true,
	"CCX": true, "RESET": true,
}

// ParseQASM parses OpenQASM 2.0 text into a circuit. creg declarations become
// register definitions, "// noise ..." comments become noise pragmas (the
// dialect ToQASM emits), and unrecognized lines are an error.
func ParseQASM(qasm string) (*Circuit, error) {
	c := New(1)

	for lineNo, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if matches := noiseRegex.FindStringSubmatch(line); matches != nil {
			qubit, _ := strconv.Atoi(matches[2])
			noiseType := strings.ToUpper(matches[1][:1]) + matches[1][1:]
			if matches[3] != "" {
				param, _ := ParseParamExpr(matches[3])
				c.Add(operations.NewNoisePragma(noiseType, qubit, param))
			} else {
				c.Add(operations.NewNoisePragma(noiseType, qubit))
			}
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}

		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); matches != nil {
				n, _ := strconv.Atoi(matches[2])
				if n > c.NumQubits {
					c.NumQubits = n
				}
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			matches := cregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("line %d: malformed creg: %q", lineNo+1, line)
			}
			length, _ := strconv.Atoi(matches[2])
			c.Add(operations.NewBitDefinition(matches[1], length, true))
			continue
		}
		if strings.HasPrefix(line, "barrier") {
			c.Add(operations.NewBarrier())
			continue
		}

		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			qubit, _ := strconv.Atoi(matches[1])
			index, _ := strconv.Atoi(matches[3])
			c.Add(operations.NewMeasurement(qubit, matches[2], index))
			continue
		}

		if op, ok := parseGateLine(line); ok {
			c.Add(op)
			continue
		}

		return nil, fmt.Errorf("line %d: unrecognized QASM: %q", lineNo+1, line)
	}

	return c, nil
}

func parseGateLine(line string) (operations.Operation, bool) {
	// Classically controlled gates first: their tail is itself a gate line.
	// Guards only ever compare against 1; the emitter writes nothing else.
	if matches := ifParamRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[4])
		bit, ok := conditionBit(matches[1], matches[2])
		if !ok || matches[3] != "1" || !knownGates[gateType] {
			return nil, false
		}
		param, _ := ParseParamExpr(matches[5])
		target, _ := strconv.Atoi(matches[6])
		gate := operations.NewParameterizedGate(gateType, target, []float64{param})
		return gate.WithCondition(bit), true
	}
	if matches := ifRegex.FindStringSubmatch(line); matches != nil {
		gateType, isDagger := splitDagger(strings.ToUpper(matches[4]))
		bit, ok := conditionBit(matches[1], matches[2])
		if !ok || matches[3] != "1" || !knownGates[gateType] {
			return nil, false
		}
		target, _ := strconv.Atoi(matches[5])
		gate := operations.NewGate(gateType, target)
		gate.IsDagger = isDagger
		return gate.WithCondition(bit), true
	}

	if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		if !knownGates[gateType] {
			return nil, false
		}
		param, _ := ParseParamExpr(matches[2])
		control, _ := strconv.Atoi(matches[3])
		target, _ := strconv.Atoi(matches[4])
		return operations.NewParameterizedGate(gateType, target, []float64{param}, control), true
	}

	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		if !knownGates[gateType] {
			return nil, false
		}
		control, _ := strconv.Atoi(matches[2])
		target, _ := strconv.Atoi(matches[3])
		return operations.NewGate(gateType, target, control), true
	}

	if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		if gateType == "TOFFOLI" {
			gateType = "CCX"
		}
		if gateType != "CCX" {
			return nil, false
		}
		ctrl1, _ := strconv.Atoi(matches[2])
		ctrl2, _ := strconv.Atoi(matches[3])
		target, _ := strconv.Atoi(matches[4])
		return operations.NewMultiControlGate(gateType, target, []int{ctrl1, ctrl2}), true
	}

	if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
		gateType := strings.ToUpper(matches[1])
		if !knownGates[gateType] {
			return nil, false
		}
		target, _ := strconv.Atoi(matches[3])
		var params []float64
		for _, pStr := range strings.Split(matches[2], ",") {
			if p, ok := ParseParamExpr(strings.TrimSpace(pStr)); ok {
				params = append(params, p)
			}
		}
		return operations.NewParameterizedGate(gateType, target, params), true
	}

	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		gateType, isDagger := splitDagger(strings.ToUpper(matches[1]))
		if !knownGates[gateType] {
			return nil, false
		}
		target, _ := strconv.Atoi(matches[2])
		if gateType == "RESET" {
			return operations.NewGate("RESET", target), true
		}
		if isDagger {
			return operations.NewDaggerGate(gateType, target), true
		}
		return operations.NewGate(gateType, target), true
	}

	return nil, false
}

// splitDagger strips a trailing DG suffix: "SDG" -> ("S", true).
func splitDagger(gateType string) (string, bool) {
	if len(gateType) > 2 && strings.HasSuffix(gateType, "DG") {
		return strings.TrimSuffix(gateType, "DG"), true
	}
	return gateType, false
}

// conditionBit builds the classical bit of an if() guard. A bare register
// name without an index addresses cell 0, matching the one-bit creg habit.
func conditionBit(register, index string) (operations.ClassicalBit, bool) {
	bit := operations.ClassicalBit{Register: register}
	if index != "" {
		i, err := strconv.Atoi(index)
		if err != nil {
			return bit, false
		}
		bit.Index = i
	}
	return bit, true
}
