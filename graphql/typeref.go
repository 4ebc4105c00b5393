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

package graphql

import (
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
)

// TypeReference is a compact description of a GraphQL input type: a named
// type, optionally wrapped in a single list, with nullability flags.
// IsElementNullable is only meaningful when IsList is true.
type TypeReference struct {
	Name              string
	IsNullable        bool
	IsList            bool
	IsElementNullable bool
}

// NamedType returns a nullable reference to the given type name.
func NamedType(name string) TypeReference {
	return TypeReference{Name: name, IsNullable: true}
}

// TypeReferenceOf returns the reference that describes a parsed type.
// Lists nested inside lists are described by their innermost named type.
func TypeReferenceOf(typ *gqlang.TypeRef) TypeReference {
	return TypeReference{
		Name:              typ.NamedType().Value,
		IsNullable:        typ.IsNullable(),
		IsList:            typ.IsList(),
		IsElementNullable: typ.IsElementNullable(),
	}
}

// ParseTypeReference parses a type reference in GraphQL syntax,
// like "[String!]!".
func ParseTypeReference(s string) (TypeReference, error) {
	typ, err := gqlang.ParseType(s, gqlang.ParseOptions{NoLocation: true})
	if err != nil {
		return TypeReference{}, xerrors.Errorf("parse type reference %q: %w", s, err)
	}
	if elem := typ.Elem(); elem != nil && elem.IsList() {
		return TypeReference{}, xerrors.Errorf("parse type reference %q: nested lists not supported", s)
	}
	return TypeReferenceOf(typ), nil
}

// String returns the reference in GraphQL syntax.
func (ref TypeReference) String() string {
	s := ref.Name
	if ref.IsList {
		if !ref.IsElementNullable {
			s += "!"
		}
		s = "[" + s + "]"
	}
	if !ref.IsNullable {
		s += "!"
	}
	return s
}

// elem returns the reference to the list's element type.
func (ref TypeReference) elem() TypeReference {
	return TypeReference{Name: ref.Name, IsNullable: ref.IsElementNullable}
}
