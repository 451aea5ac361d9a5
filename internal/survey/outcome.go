package survey

import (
	"fmt"
	"strings"
)

// Outcome is the answer to the "would buy again" question.
// The zero value is OutcomeNo and outcomes order No < Yes.
type Outcome int

const (
	OutcomeNo Outcome = iota
	OutcomeYes
)

// NumOutcomes is the number of distinct outcome values.
const NumOutcomes = 2

// Outcomes lists every outcome in table order.
func Outcomes() []Outcome { return []Outcome{OutcomeNo, OutcomeYes} }

func (o Outcome) String() string {
	switch o {
	case OutcomeNo:
		return "No"
	case OutcomeYes:
		return "Yes"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ParseOutcome accepts exactly "Yes" or "No".
func ParseOutcome(s string) (Outcome, error) {
	switch strings.TrimSpace(s) {
	case "No":
		return OutcomeNo, nil
	case "Yes":
		return OutcomeYes, nil
	}
	return 0, fmt.Errorf("invalid outcome %q (want Yes or No)", s)
}
