package game

import (
	"errors"
	"fmt"
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
	ErrInvalidSide      = errors.New("invalid side")
	ErrInvalidBoard     = errors.New("invalid board")
)

// InvalidMoveError reports a drop that the board rejected. The board is left
// unchanged.
type InvalidMoveError struct {
	Column int
	Side   Cell
	Err    error // One of ErrColumnOutOfRange, ErrColumnFull, ErrInvalidSide
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move by %s in column %d: %v", e.Side, e.Column, e.Err)
}

func (e *InvalidMoveError) Unwrap() error {
	return e.Err
}
