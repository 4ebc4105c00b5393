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

// Package gqlang provides a lexer, parser, and printer for the GraphQL
// language.
package gqlang

import (
	"fmt"
	"strings"
)

// Document is a parsed GraphQL source.
// https://spec.graphql.org/June2018/#sec-Language.Document
type Document struct {
	Definitions []*Definition
	Loc         *Location

	// selections holds every selection in the document, indexed by
	// SelectionID-1.
	selections []*Selection
}

// Selection returns the selection with the given ID or nil if the ID is zero
// or out of range.
func (doc *Document) Selection(id SelectionID) *Selection {
	if id <= 0 || int(id) > len(doc.selections) {
		return nil
	}
	return doc.selections[id-1]
}

// Parent returns the field or inline fragment that directly contains sel, or
// nil if sel is at the top level of an operation or fragment.
func (doc *Document) Parent(sel *Selection) *Selection {
	return doc.Selection(sel.Parent)
}

// Path returns the chain of enclosing selections of sel, outermost first,
// ending with sel itself.
func (doc *Document) Path(sel *Selection) []*Selection {
	n := 0
	for s := sel; s != nil; s = doc.Parent(s) {
		n++
	}
	path := make([]*Selection, n)
	for s := sel; s != nil; s = doc.Parent(s) {
		n--
		path[n] = s
	}
	return path
}

// Operations returns the document's operations in order of appearance.
func (doc *Document) Operations() []*Operation {
	var ops []*Operation
	for _, defn := range doc.Definitions {
		if defn.Operation != nil {
			ops = append(ops, defn.Operation)
		}
	}
	return ops
}

// Fragment returns the fragment definition with the given name or nil if
// none exists.
func (doc *Document) Fragment(name string) *FragmentDefinition {
	for _, defn := range doc.Definitions {
		if defn.Fragment != nil && defn.Fragment.Name.Value == name {
			return defn.Fragment
		}
	}
	return nil
}

// Location records the span of source text that produced a node.
type Location struct {
	Start      Pos
	End        Pos
	StartToken Token
	EndToken   Token
	Source     *Source
}

// Definition is a top-level GraphQL construct like an operation, a fragment, or
// a type. Only one of its fields will be set.
// https://spec.graphql.org/June2018/#sec-Language.Document
type Definition struct {
	Operation *Operation
	Fragment  *FragmentDefinition
	Schema    *SchemaDefinition
	Type      *TypeDefinition
	Directive *DirectiveDefinition
}

// Location returns the definition's location.
func (defn *Definition) Location() *Location {
	switch {
	case defn.Operation != nil:
		return defn.Operation.Loc
	case defn.Fragment != nil:
		return defn.Fragment.Loc
	case defn.Schema != nil:
		return defn.Schema.Loc
	case defn.Type != nil:
		return defn.Type.Location()
	case defn.Directive != nil:
		return defn.Directive.Loc
	default:
		panic("unknown definition")
	}
}

// Operation is a query, a mutation, or a subscription.
// https://spec.graphql.org/June2018/#sec-Language.Operations
type Operation struct {
	Type                OperationType
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
	Loc                 *Location
}

// OperationType is one of query, mutation, or subscription.
type OperationType int

// Types of operation.
const (
	Query OperationType = iota
	Mutation
	Subscription
)

// String returns the keyword that corresponds to the operation type.
func (typ OperationType) String() string {
	switch typ {
	case Query:
		return "query"
	case Mutation:
		return "mutation"
	case Subscription:
		return "subscription"
	default:
		return fmt.Sprintf("OperationType(%d)", int(typ))
	}
}

// FragmentDefinition is a named, reusable selection set.
// https://spec.graphql.org/June2018/#FragmentDefinition
type FragmentDefinition struct {
	Name          *Name
	TypeCondition *Name
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           *Location
}

// SelectionSet is the set of information an operation requests.
// https://spec.graphql.org/June2018/#SelectionSet
type SelectionSet struct {
	Selections []*Selection
	Loc        *Location
}

// SelectionID identifies a selection within its Document. IDs start at 1;
// the zero ID stands for "no selection".
type SelectionID int

// A Selection is either a field or a fragment. Only one of Field,
// FragmentSpread, or InlineFragment will be set.
// https://spec.graphql.org/June2018/#sec-Selection-Sets
type Selection struct {
	ID SelectionID
	// Parent is the ID of the field or inline fragment whose selection set
	// contains this selection.
	Parent SelectionID

	Field          *Field
	FragmentSpread *FragmentSpread
	InlineFragment *InlineFragment
}

// Location returns the selection's location.
func (sel *Selection) Location() *Location {
	switch {
	case sel.Field != nil:
		return sel.Field.Loc
	case sel.FragmentSpread != nil:
		return sel.FragmentSpread.Loc
	case sel.InlineFragment != nil:
		return sel.InlineFragment.Loc
	default:
		panic("unknown selection")
	}
}

// A Field is a discrete piece of information available to request within a
// selection set.
// https://spec.graphql.org/June2018/#sec-Language.Fields
type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          *Location
}

// ResponseKey returns the alias if present or the name otherwise.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

// FragmentSpread inserts the selections of a named fragment.
// https://spec.graphql.org/June2018/#FragmentSpread
type FragmentSpread struct {
	Name       *Name
	Directives []*Directive
	Loc        *Location
}

// InlineFragment is a selection set conditioned on the runtime type.
// https://spec.graphql.org/June2018/#InlineFragment
type InlineFragment struct {
	// TypeCondition is nil if the fragment has no "on" clause.
	TypeCondition *Name
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           *Location
}

// Argument is a named input to a field or directive.
// https://spec.graphql.org/June2018/#sec-Language.Arguments
type Argument struct {
	Name  *Name
	Value *InputValue
	Loc   *Location
}

// Directive annotates a part of a document.
// https://spec.graphql.org/June2018/#sec-Language.Directives
type Directive struct {
	Name      *Name
	Arguments []*Argument
	Loc       *Location
}

// An InputValue is a literal or a variable reference. Only one of its fields
// will be set.
// https://spec.graphql.org/June2018/#sec-Input-Values
type InputValue struct {
	Variable *Variable
	Scalar   *ScalarValue
	// Null is the "null" keyword.
	Null   *Name
	List   *ListValue
	Object *ObjectValue
}

// Location returns the value's location.
func (ival *InputValue) Location() *Location {
	switch {
	case ival.Variable != nil:
		return ival.Variable.Loc
	case ival.Scalar != nil:
		return ival.Scalar.Loc
	case ival.Null != nil:
		return ival.Null.Loc
	case ival.List != nil:
		return ival.List.Loc
	case ival.Object != nil:
		return ival.Object.Loc
	default:
		panic("unknown input value")
	}
}

// String returns the value in GraphQL syntax.
func (ival *InputValue) String() string {
	sb := new(strings.Builder)
	printValue(sb, ival)
	return sb.String()
}

// ScalarValue is a primitive literal like a string or integer.
type ScalarValue struct {
	Type ScalarType
	// Raw is the literal's source text.
	Raw string
	// Value is the literal's value: unescaped for strings, dedented for
	// block strings, and Raw for everything else.
	Value string
	// Block is true for strings written with triple quotes.
	Block bool
	Loc   *Location
}

// String returns sval.Raw.
func (sval *ScalarValue) String() string {
	return sval.Raw
}

// ScalarType indicates the type of a ScalarValue.
type ScalarType int

// Scalar types.
const (
	StringScalar ScalarType = iota
	BooleanScalar
	EnumScalar
	IntScalar
	FloatScalar
)

// ListValue is an ordered sequence of values.
// https://spec.graphql.org/June2018/#sec-List-Value
type ListValue struct {
	Values []*InputValue
	Loc    *Location
}

// ObjectValue is an unordered set of named values.
// https://spec.graphql.org/June2018/#sec-Input-Object-Values
type ObjectValue struct {
	Fields []*ObjectField
	Loc    *Location
}

// ObjectField is a single element of an ObjectValue.
type ObjectField struct {
	Name  *Name
	Value *InputValue
	Loc   *Location
}

// A Variable is an input to a GraphQL operation.
// https://spec.graphql.org/June2018/#Variable
type Variable struct {
	Name *Name
	Loc  *Location
}

// String returns the variable in the form "$foo".
func (v *Variable) String() string {
	if v == nil {
		return ""
	}
	return "$" + v.Name.String()
}

// VariableDefinition declares a variable of an operation.
// https://spec.graphql.org/June2018/#VariableDefinition
type VariableDefinition struct {
	Variable     *Variable
	Type         *TypeRef
	DefaultValue *InputValue
	Directives   []*Directive
	Loc          *Location
}

// A Name is an identifier.
// https://spec.graphql.org/June2018/#sec-Names
type Name struct {
	Value string
	Loc   *Location
}

// String returns the name or the empty string if the name is nil.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return n.Value
}

// A TypeRef is a named type, a list type, or a non-null type.
// https://spec.graphql.org/June2018/#Type
type TypeRef struct {
	Named   *Name
	List    *ListType
	NonNull *NonNullType
}

// ListType declares a homogenous sequence of another type.
// https://spec.graphql.org/June2018/#ListType
type ListType struct {
	Type *TypeRef
	Loc  *Location
}

// NonNullType declares a named or list type that cannot be null.
// Only one of Named or List will be set.
// https://spec.graphql.org/June2018/#NonNullType
type NonNullType struct {
	Named *Name
	List  *ListType
	Loc   *Location
}

// String returns the type reference in GraphQL syntax, like "[String!]!".
func (ref *TypeRef) String() string {
	switch {
	case ref == nil:
		return ""
	case ref.Named != nil:
		return ref.Named.Value
	case ref.List != nil:
		return "[" + ref.List.Type.String() + "]"
	case ref.NonNull != nil && ref.NonNull.Named != nil:
		return ref.NonNull.Named.Value + "!"
	case ref.NonNull != nil && ref.NonNull.List != nil:
		return "[" + ref.NonNull.List.Type.String() + "]!"
	default:
		return "<invalid type>"
	}
}

// IsNullable reports whether ref permits null.
func (ref *TypeRef) IsNullable() bool {
	return ref.NonNull == nil
}

// IsList reports whether ref is a (possibly non-null) list type.
func (ref *TypeRef) IsList() bool {
	return ref.listType() != nil
}

// IsElementNullable reports whether the elements of a list type permit null.
// It returns false if ref is not a list type.
func (ref *TypeRef) IsElementNullable() bool {
	list := ref.listType()
	return list != nil && list.Type.IsNullable()
}

// Elem returns the element type of a list type or nil if ref is not a list.
func (ref *TypeRef) Elem() *TypeRef {
	list := ref.listType()
	if list == nil {
		return nil
	}
	return list.Type
}

func (ref *TypeRef) listType() *ListType {
	switch {
	case ref.List != nil:
		return ref.List
	case ref.NonNull != nil:
		return ref.NonNull.List
	default:
		return nil
	}
}

// NamedType returns the innermost named type of ref.
func (ref *TypeRef) NamedType() *Name {
	for {
		switch {
		case ref.Named != nil:
			return ref.Named
		case ref.NonNull != nil && ref.NonNull.Named != nil:
			return ref.NonNull.Named
		default:
			ref = ref.Elem()
			if ref == nil {
				return nil
			}
		}
	}
}

// Location returns the type reference's location.
func (ref *TypeRef) Location() *Location {
	switch {
	case ref.Named != nil:
		return ref.Named.Loc
	case ref.List != nil:
		return ref.List.Loc
	case ref.NonNull != nil:
		return ref.NonNull.Loc
	default:
		return nil
	}
}

// SchemaDefinition declares the root operation types of a schema.
// https://spec.graphql.org/June2018/#SchemaDefinition
type SchemaDefinition struct {
	Description    *ScalarValue
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
	Loc            *Location
}

// OperationTypeDefinition binds an operation type to an object type.
type OperationTypeDefinition struct {
	Operation OperationType
	Type      *Name
	Loc       *Location
}

// TypeDefinition holds a type definition.
// https://spec.graphql.org/June2018/#TypeDefinition
type TypeDefinition struct {
	// One of the following must be non-nil:

	Scalar      *ScalarTypeDefinition
	Object      *ObjectTypeDefinition
	Interface   *InterfaceTypeDefinition
	Union       *UnionTypeDefinition
	Enum        *EnumTypeDefinition
	InputObject *InputObjectTypeDefinition
}

// Location returns the type definition's location.
func (defn *TypeDefinition) Location() *Location {
	switch {
	case defn.Scalar != nil:
		return defn.Scalar.Loc
	case defn.Object != nil:
		return defn.Object.Loc
	case defn.Interface != nil:
		return defn.Interface.Loc
	case defn.Union != nil:
		return defn.Union.Loc
	case defn.Enum != nil:
		return defn.Enum.Loc
	case defn.InputObject != nil:
		return defn.InputObject.Loc
	default:
		panic("unknown type definition")
	}
}

// Description returns the type definition's description or nil if it does not
// have one.
func (defn *TypeDefinition) Description() *ScalarValue {
	switch {
	case defn == nil:
		return nil
	case defn.Scalar != nil:
		return defn.Scalar.Description
	case defn.Object != nil:
		return defn.Object.Description
	case defn.Interface != nil:
		return defn.Interface.Description
	case defn.Union != nil:
		return defn.Union.Description
	case defn.Enum != nil:
		return defn.Enum.Description
	case defn.InputObject != nil:
		return defn.InputObject.Description
	default:
		return nil
	}
}

// Name returns the type definition's name.
func (defn *TypeDefinition) Name() *Name {
	switch {
	case defn == nil:
		return nil
	case defn.Scalar != nil:
		return defn.Scalar.Name
	case defn.Object != nil:
		return defn.Object.Name
	case defn.Interface != nil:
		return defn.Interface.Name
	case defn.Union != nil:
		return defn.Union.Name
	case defn.Enum != nil:
		return defn.Enum.Name
	case defn.InputObject != nil:
		return defn.InputObject.Name
	default:
		return nil
	}
}

// ScalarTypeDefinition names a scalar type.
// https://spec.graphql.org/June2018/#ScalarTypeDefinition
type ScalarTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Loc         *Location
}

// ObjectTypeDefinition names an output object type.
// https://spec.graphql.org/June2018/#ObjectTypeDefinition
type ObjectTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Interfaces  []*Name
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         *Location
}

// InterfaceTypeDefinition names an abstract type with a set of fields.
// https://spec.graphql.org/June2018/#InterfaceTypeDefinition
type InterfaceTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         *Location
}

// UnionTypeDefinition names an abstract type that is one of a set of object
// types.
// https://spec.graphql.org/June2018/#UnionTypeDefinition
type UnionTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Types       []*Name
	Loc         *Location
}

// EnumTypeDefinition names a set of enumerated values.
// https://spec.graphql.org/June2018/#EnumTypeDefinition
type EnumTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Values      []*EnumValueDefinition
	Loc         *Location
}

// EnumValueDefinition is a single value in an EnumTypeDefinition.
type EnumValueDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Loc         *Location
}

// InputObjectTypeDefinition names an input object type.
// https://spec.graphql.org/June2018/#InputObjectTypeDefinition
type InputObjectTypeDefinition struct {
	Description *ScalarValue
	Name        *Name
	Directives  []*Directive
	Fields      []*InputValueDefinition
	Loc         *Location
}

// FieldDefinition specifies a single field in an object or interface.
// https://spec.graphql.org/June2018/#FieldsDefinition
type FieldDefinition struct {
	Description *ScalarValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Type        *TypeRef
	Directives  []*Directive
	Loc         *Location
}

// InputValueDefinition specifies an argument in a FieldDefinition or a field
// in an InputObjectTypeDefinition.
// https://spec.graphql.org/June2018/#InputValueDefinition
type InputValueDefinition struct {
	Description  *ScalarValue
	Name         *Name
	Type         *TypeRef
	DefaultValue *InputValue
	Directives   []*Directive
	Loc          *Location
}

// DirectiveDefinition declares a directive.
// https://spec.graphql.org/June2018/#DirectiveDefinition
type DirectiveDefinition struct {
	Description *ScalarValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []*Name
	Loc         *Location
}
