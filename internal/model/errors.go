package model

import "github.com/pkg/errors"

var (
	ErrOutOfRange       = errors.New("square out of range")
	ErrEmptySquare      = errors.New("no piece at square")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidPosition  = errors.New("invalid position")
)
