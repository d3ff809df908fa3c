package tape

import (
	"fmt"
	"strings"
)

// CellPolicy decides what Add and Sub do when a cell leaves 0..255.
type CellPolicy string

const (
	CellCircular CellPolicy = "circular"
	CellClamp    CellPolicy = "clamp"
	CellFail     CellPolicy = "fail"
)

// TapePolicy decides what MoveLeft and MoveRight do at the ends of the tape.
type TapePolicy string

const (
	TapeCircular TapePolicy = "circular"
	TapeAppend   TapePolicy = "append"
	TapeFail     TapePolicy = "fail"
)

func ParseCellPolicy(str string) (CellPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "circular", "wrap":
		return CellCircular, nil
	case "clamp", "nothing", "saturate":
		return CellClamp, nil
	case "fail", "panic":
		return CellFail, nil
	}
	return "", fmt.Errorf("unknown cell policy: %q", str)
}

func ParseTapePolicy(str string) (TapePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "circular", "wrap":
		return TapeCircular, nil
	case "append", "grow":
		return TapeAppend, nil
	case "fail", "panic":
		return TapeFail, nil
	}
	return "", fmt.Errorf("unknown tape policy: %q", str)
}

func (c CellPolicy) Valid() bool {
	switch c {
	case CellCircular, CellClamp, CellFail:
		return true
	}
	return false
}

func (t TapePolicy) Valid() bool {
	switch t {
	case TapeCircular, TapeAppend, TapeFail:
		return true
	}
	return false
}

func (c *CellPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseCellPolicy(string(text))
	if err != nil {
		return err
	}
	*c = policy
	return nil
}

func (t *TapePolicy) UnmarshalText(text []byte) error {
	policy, err := ParseTapePolicy(string(text))
	if err != nil {
		return err
	}
	*t = policy
	return nil
}
