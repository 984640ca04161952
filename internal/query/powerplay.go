package query

import (
	"fmt"
	"strings"
)

// PowerplayBase selects how over numbers map onto the six powerplay overs.
type PowerplayBase string

const (
	// PowerplayLiteral keeps every delivery with over <= 6, whatever the numbering.
	PowerplayLiteral PowerplayBase = "literal"
	// PowerplayZero treats overs as zero-based: 0 through 5.
	PowerplayZero PowerplayBase = "zero"
	// PowerplayOne treats overs as one-based: 1 through 6.
	PowerplayOne PowerplayBase = "one"
)

// ParsePowerplayBase accepts literal, zero, or one. Empty means literal.
func ParsePowerplayBase(s string) (PowerplayBase, error) {
	switch b := PowerplayBase(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return PowerplayLiteral, nil
	case PowerplayLiteral, PowerplayZero, PowerplayOne:
		return b, nil
	default:
		return "", fmt.Errorf("unknown powerplay base %q", s)
	}
}

// Contains reports whether over falls inside the powerplay.
func (b PowerplayBase) Contains(over int) bool {
	switch b {
	case PowerplayZero:
		return over >= 0 && over <= 5
	case PowerplayOne:
		return over >= 1 && over <= 6
	default:
		return over <= 6
	}
}
