package classify

import "fmt"

// Label is the decision taken for a text fragment.
type Label int

const (
	// Take marks natural language that should be kept
	Take Label = iota
	// Drop marks program code that should be removed
	Drop
	// Open marks fragments the classifier cannot decide on
	Open
)

// String returns the marker used in training data and logs.
func (l Label) String() string {
	switch l {
	case Take:
		return "_TAKE_"
	case Drop:
		return "_DROP_"
	case Open:
		return "_OPEN_"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	switch l {
	case Take, Drop, Open:
		return true
	default:
		return false
	}
}

// tieBreakOrder lists labels from most to least preferred when scores are equal;
// undecided wins over a forced guess
var tieBreakOrder = []Label{Open, Drop, Take}

// priority returns the position of l in tieBreakOrder (lower wins)
func priority(l Label) int {
	for i, candidate := range tieBreakOrder {
		if candidate == l {
			return i
		}
	}
	return len(tieBreakOrder)
}

// Example is a labelled training string.
type Example struct {
	Text  string
	Label Label
}
