package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operator is an arithmetic operator applied by an Update.
type Operator int8

const (
	_ Operator = iota
	OperatorAdd
	OperatorSub
	OperatorMul
	OperatorDiv
	OperatorSet
)

var operators = map[string]Operator{
	"add": OperatorAdd,
	"sub": OperatorSub,
	"mul": OperatorMul,
	"div": OperatorDiv,
	"set": OperatorSet,
}

func (o Operator) String() string {
	for s, op := range operators {
		if op == o {
			return s
		}
	}
	return "unknown"
}

// Update computes a new value from the current one.
type Update struct {
	Operator Operator
	Operand  int64
}

// ParseUpdate parses "<operator> <operand>" where operator is any of
// add, sub, mul, div and set.
func ParseUpdate(s string) (Update, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return Update{}, fmt.Errorf("expected %q, got %q", "<operator> <operand>", s)
	}
	op, ok := operators[f[0]]
	if !ok {
		return Update{}, fmt.Errorf("unknown operator %q", f[0])
	}
	n, err := strconv.ParseInt(f[1], 10, 64)
	if err != nil {
		return Update{}, fmt.Errorf("parsing operand: %w", err)
	}
	if op == OperatorDiv && n == 0 {
		return Update{}, errors.New("division by zero")
	}
	return Update{Operator: op, Operand: n}, nil
}

// Apply returns the result of applying u to v.
// Overflows wrap around.
func (u Update) Apply(v int64) int64 {
	switch u.Operator {
	case OperatorAdd:
		return v + u.Operand
	case OperatorSub:
		return v - u.Operand
	case OperatorMul:
		return v * u.Operand
	case OperatorDiv:
		return v / u.Operand
	case OperatorSet:
		return u.Operand
	}
	return v
}

func (u Update) String() string {
	return u.Operator.String() + " " + strconv.FormatInt(u.Operand, 10)
}
