// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gqlang

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// ErrorKind classifies an Error.
type ErrorKind int

// Error kinds.
const (
	// SyntaxError is a lexical or grammatical violation in a document.
	SyntaxError ErrorKind = 1 + iota
	// ValidationError is a well-formed but unresolvable reference, like an
	// undeclared variable.
	ValidationError
	// InputValueError is a value that does not fit its expected type.
	InputValueError
)

// String returns the kind's name.
func (kind ErrorKind) String() string {
	switch kind {
	case SyntaxError:
		return "SyntaxError"
	case ValidationError:
		return "ValidationError"
	case InputValueError:
		return "InputValueError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// Code returns the conventional extensions.code value for the kind.
func (kind ErrorKind) Code() string {
	switch kind {
	case SyntaxError:
		return "GRAPHQL_PARSE_FAILED"
	case ValidationError:
		return "GRAPHQL_VALIDATION_FAILED"
	case InputValueError:
		return "BAD_USER_INPUT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// Error is a GraphQL-visible failure. Syntax errors always carry exactly one
// position.
type Error struct {
	Kind    ErrorKind
	Message string
	// Source is the document the positions refer to. It may be nil if the
	// error is not tied to a document.
	Source    *Source
	Positions []Pos
	// Err is the underlying cause, if any.
	Err error
}

// NewError returns an error of the given kind. Positions in the error come
// from the given locations. Nil locations are skipped.
func NewError(kind ErrorKind, message string, locs ...*Location) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, loc := range locs {
		if loc == nil {
			continue
		}
		if e.Source == nil {
			e.Source = loc.Source
		}
		e.Positions = append(e.Positions, loc.Start)
	}
	return e
}

func syntaxError(src *Source, pos Pos, description string) *Error {
	return &Error{
		Kind:      SyntaxError,
		Message:   "Syntax Error: " + description,
		Source:    src,
		Positions: []Pos{pos},
	}
}

// Error returns e.Message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns e.Err.
func (e *Error) Unwrap() error {
	return e.Err
}

// Locations converts the error's positions to line and column numbers.
func (e *Error) Locations() []Position {
	if e.Source == nil || len(e.Positions) == 0 {
		return nil
	}
	locs := make([]Position, 0, len(e.Positions))
	for _, pos := range e.Positions {
		locs = append(locs, pos.ToPosition(e.Source.Body))
	}
	return locs
}

// Pretty returns the message followed by an excerpt of the source for each
// position.
func (e *Error) Pretty() string {
	sb := new(strings.Builder)
	sb.WriteString(e.Message)
	for _, p := range e.Locations() {
		sb.WriteString("\n\n")
		sb.WriteString(e.Source.Print(p))
	}
	return sb.String()
}

// ErrorPos attempts to extract an error's first Pos.
func ErrorPos(e error) (pos Pos, ok bool) {
	var ge *Error
	if !xerrors.As(e, &ge) || len(ge.Positions) == 0 {
		return 0, false
	}
	return ge.Positions[0], true
}

// ErrorPosition attempts to extract an error's first Position.
func ErrorPosition(e error) (p Position, ok bool) {
	var ge *Error
	if !xerrors.As(e, &ge) {
		return Position{}, false
	}
	locs := ge.Locations()
	if len(locs) == 0 {
		return Position{}, false
	}
	return locs[0], true
}

// ErrorKindOf returns the kind of the first *Error in e's chain.
func ErrorKindOf(e error) (kind ErrorKind, ok bool) {
	var ge *Error
	if !xerrors.As(e, &ge) {
		return 0, false
	}
	return ge.Kind, true
}
