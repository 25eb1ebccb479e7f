package game

import "fmt"

// HintKind distinguishes the two hint flavours.
type HintKind string

const (
	HintRange  HintKind = "range"
	HintParity HintKind = "parity"
)

// Hint is a single clue about the hidden number.
type Hint struct {
	Kind HintKind
	Low  int  // range hints only
	High int  // range hints only
	Even bool // parity hints only
}

func (h Hint) String() string {
	if h.Kind == HintRange {
		return fmt.Sprintf("Hint: It's between %d and %d.", h.Low, h.High)
	}
	if h.Even {
		return "Hint: It's an even number."
	}
	return "Hint: It's an odd number."
}

// HintPolicy picks one of the hint kinds uniformly at random.
// It keeps no state between calls.
type HintPolicy struct {
	rnd Random
}

func NewHintPolicy(rnd Random) *HintPolicy {
	return &HintPolicy{rnd: rnd}
}

// Hint returns a clue for target drawn from [1, numberRange].
func (p *HintPolicy) Hint(target, numberRange int) Hint {
	if p.rnd.Between(0, 1) == 0 {
		return RangeHint(target, numberRange)
	}
	return ParityHint(target)
}

// RangeHint returns a window of radius numberRange/4 around target,
// clamped to [1, numberRange].
func RangeHint(target, numberRange int) Hint {
	radius := numberRange / 4
	return Hint{
		Kind: HintRange,
		Low:  max(1, target-radius),
		High: min(numberRange, target+radius),
	}
}

// ParityHint reveals whether target is even.
func ParityHint(target int) Hint {
	return Hint{Kind: HintParity, Even: target%2 == 0}
}
