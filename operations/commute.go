package operations

// zDiagonal lists the gate types whose matrix is diagonal in the
// computational basis. Any two of them are simultaneously diagonal, so they
// commute even on shared qubits.
var zDiagonal = map[string]bool{
	"Z":   true,
	"S":   true,
	"T":   true,
	"SZ":  true,
	"RZ":  true,
	"P":   true,
	"U1":  true,
	"CZ":  true,
	"CRZ": true,
	"CP":  true,
	"CU1": true,
}

// IsDiagonal reports whether the named gate type is diagonal in the
// computational basis.
func IsDiagonal(gateType string) bool { return zDiagonal[gateType] }
