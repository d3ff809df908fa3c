package tape

import (
	"errors"
	"fmt"
)

var (
	ErrCellRange    = errors.New("cell out of range")
	ErrPointerRange = errors.New("pointer out of range")
)

type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
)

type CellRangeError struct {
	Address uint64
	Value   byte
	Delta   uint64
	Op      Op
}

func (c *CellRangeError) Error() string {
	if c.Op == OpSub {
		return fmt.Sprintf("cell %d (value %d) would go below 0 if %d were subtracted",
			c.Address, c.Value, c.Delta)
	}
	return fmt.Sprintf("cell %d (value %d) would go above 255 if %d were added",
		c.Address, c.Value, c.Delta)
}

func (c *CellRangeError) Is(target error) bool {
	return target == ErrCellRange
}

type Direction uint8

const (
	DirectionLeft Direction = iota + 1
	DirectionRight
	DirectionJump
)

type PointerRangeError struct {
	// Limit is the last address the pointer may reach in Direction.
	Limit     uint64
	Distance  uint64
	Pointer   uint64
	Direction Direction
}

func (p *PointerRangeError) Error() string {
	switch p.Direction {
	case DirectionLeft:
		return fmt.Sprintf("tape pointer would be below %d if moved left %d spaces from %d",
			p.Limit, p.Distance, p.Pointer)
	case DirectionRight:
		return fmt.Sprintf("tape pointer would be above %d if moved right %d spaces from %d",
			p.Limit, p.Distance, p.Pointer)
	}
	return fmt.Sprintf("address %d is outside the tape (last address %d)",
		p.Distance, p.Limit)
}

func (p *PointerRangeError) Is(target error) bool {
	return target == ErrPointerRange
}
