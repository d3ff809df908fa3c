package parser

import (
	"errors"
	"fmt"

	"github.com/reusee/bfem/program"
)

var (
	ErrUnrecognizedToken = errors.New("unrecognized token")
	ErrUnbalancedLoop    = errors.New("unbalanced loop")
	ErrUnterminatedAlias = errors.New("unterminated alias")
)

// Spanned is implemented by errors that point into the source text.
type Spanned interface {
	error
	ErrorSpan() program.Span
}

type UnrecognizedTokenError struct {
	Token rune
	Span  program.Span
}

var _ Spanned = new(UnrecognizedTokenError)

func (u *UnrecognizedTokenError) Error() string {
	return fmt.Sprintf("unrecognized character: %q", u.Token)
}

func (u *UnrecognizedTokenError) ErrorSpan() program.Span {
	return u.Span
}

func (u *UnrecognizedTokenError) Is(target error) bool {
	return target == ErrUnrecognizedToken
}

type UnbalancedLoopError struct {
	Span program.Span
}

var _ Spanned = new(UnbalancedLoopError)

func (u *UnbalancedLoopError) Error() string {
	return "loop opened here is never closed: reached end of input before ']'"
}

func (u *UnbalancedLoopError) ErrorSpan() program.Span {
	return u.Span
}

func (u *UnbalancedLoopError) Is(target error) bool {
	return target == ErrUnbalancedLoop
}

type UnterminatedAliasError struct {
	Span program.Span
}

var _ Spanned = new(UnterminatedAliasError)

func (u *UnterminatedAliasError) Error() string {
	return "alias opened here is never closed: reached end of input before '}'"
}

func (u *UnterminatedAliasError) ErrorSpan() program.Span {
	return u.Span
}

func (u *UnterminatedAliasError) Is(target error) bool {
	return target == ErrUnterminatedAlias
}
