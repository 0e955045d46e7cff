package domain

import "errors"

var (
	// ErrInvalidRowReference indicates an edit named a row that is not part
	// of the allocation batch.
	ErrInvalidRowReference = errors.New("invalid row reference")

	// ErrNonNumericInput indicates a proposed amount could not be parsed as money.
	ErrNonNumericInput = errors.New("non-numeric input")

	// ErrDuplicateRow indicates two rows in one batch share an identifier.
	ErrDuplicateRow = errors.New("duplicate row in batch")
)
