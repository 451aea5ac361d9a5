package survey

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset indicates a CSV with a header but no data rows.
var ErrEmptyDataset = errors.New("dataset has no records")

// MissingColumnError indicates a column required by a step is absent from the schema.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", e.Column)
}

// OutcomeError indicates a row whose outcome is missing or not Yes/No.
type OutcomeError struct {
	Row   int // 1-based data row
	Value string
}

func (e *OutcomeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: missing %s value", e.Row, ColBuyAgain)
	}
	return fmt.Sprintf("row %d: unexpected %s value %q (want Yes or No)", e.Row, ColBuyAgain, e.Value)
}
