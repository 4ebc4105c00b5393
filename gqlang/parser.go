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

import "fmt"

// ParseOptions controls the behavior of the parser.
type ParseOptions struct {
	// NoLocation disables recording Location on AST nodes.
	NoLocation bool

	// AllowLegacySDLEmptyFields permits an empty "{}" fields block in type
	// definitions, like "type Query {}".
	AllowLegacySDLEmptyFields bool

	// AllowLegacySDLImplementsInterfaces permits interfaces to be listed
	// without "&" separators, like "type Foo implements Bar Baz".
	AllowLegacySDLImplementsInterfaces bool

	// MaxDepth limits the nesting of selection sets, list and object values,
	// and list types. Zero means no limit.
	MaxDepth int

	// MaxSize limits the size of the source body in bytes. Zero means no
	// limit.
	MaxSize int
}

type parser struct {
	lexer *Lexer
	opts  ParseOptions
	doc   *Document
	depth int
}

// Parse parses a GraphQL document into an abstract syntax tree using the
// default options.
func Parse(input string) (*Document, error) {
	return ParseSource(NewSource(input, ""), ParseOptions{})
}

// ParseSource parses a GraphQL document into an abstract syntax tree. Any
// error returned is an *Error of kind SyntaxError. Parsing stops at the first
// error.
func ParseSource(src *Source, opts ParseOptions) (*Document, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}
	return p.document()
}

// ParseValue parses a single GraphQL value literal, such as `[1, "two"]`.
// Variables are permitted.
func ParseValue(input string, opts ParseOptions) (*InputValue, error) {
	p, err := newParser(NewSource(input, ""), opts)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindSOF); err != nil {
		return nil, err
	}
	val, err := p.valueLiteral(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindEOF); err != nil {
		return nil, err
	}
	return val, nil
}

// ParseType parses a single GraphQL type reference, such as `[String!]!`.
func ParseType(input string, opts ParseOptions) (*TypeRef, error) {
	p, err := newParser(NewSource(input, ""), opts)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindSOF); err != nil {
		return nil, err
	}
	ref, err := p.typeRef()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindEOF); err != nil {
		return nil, err
	}
	return ref, nil
}

func newParser(src *Source, opts ParseOptions) (*parser, error) {
	if opts.MaxSize > 0 && len(src.Body) > opts.MaxSize {
		return nil, syntaxError(src, 0,
			fmt.Sprintf("Document of %d bytes exceeds the maximum size of %d bytes.", len(src.Body), opts.MaxSize))
	}
	return &parser{
		lexer: NewLexer(src),
		opts:  opts,
		doc:   new(Document),
	}, nil
}

// document parses Definition+ between the start and end of the source.
func (p *parser) document() (*Document, error) {
	start := p.lexer.Token()
	defs, err := many(p, KindSOF, p.definition, KindEOF)
	if err != nil {
		return nil, err
	}
	p.doc.Definitions = defs
	p.doc.Loc = p.loc(start)
	return p.doc, nil
}

func (p *parser) definition() (*Definition, error) {
	tok := p.lexer.Token()
	switch {
	case tok.Kind == KindName:
		switch tok.Value {
		case "query", "mutation", "subscription":
			op, err := p.operation()
			if err != nil {
				return nil, err
			}
			return &Definition{Operation: op}, nil
		case "fragment":
			frag, err := p.fragmentDefinition()
			if err != nil {
				return nil, err
			}
			return &Definition{Fragment: frag}, nil
		case "schema", "scalar", "type", "interface", "union", "enum", "input", "directive":
			return p.typeSystemDefinition()
		case "extend":
			return nil, syntaxError(p.lexer.Source(), tok.Start, "Type system extensions are not supported.")
		default:
			return nil, p.unexpected(tok)
		}
	case tok.Kind == KindLeftBrace:
		op, err := p.operation()
		if err != nil {
			return nil, err
		}
		return &Definition{Operation: op}, nil
	case p.peekDescription():
		return p.typeSystemDefinition()
	default:
		return nil, p.unexpected(tok)
	}
}

// operation parses an OperationDefinition, which is either a bare selection
// set or OperationType Name? VariableDefinitions? Directives? SelectionSet.
func (p *parser) operation() (*Operation, error) {
	start := p.lexer.Token()
	if p.peek(KindLeftBrace) {
		selSet, err := p.selectionSet(0)
		if err != nil {
			return nil, err
		}
		return &Operation{
			Type:         Query,
			SelectionSet: selSet,
			Loc:          p.loc(start),
		}, nil
	}
	op := new(Operation)
	var err error
	if op.Type, err = p.operationType(); err != nil {
		return nil, err
	}
	if p.peek(KindName) {
		if op.Name, err = p.name(); err != nil {
			return nil, err
		}
	}
	if op.VariableDefinitions, err = optionalMany(p, KindLeftParen, p.variableDefinition, KindRightParen); err != nil {
		return nil, err
	}
	if op.Directives, err = p.directives(false); err != nil {
		return nil, err
	}
	if op.SelectionSet, err = p.selectionSet(0); err != nil {
		return nil, err
	}
	op.Loc = p.loc(start)
	return op, nil
}

func (p *parser) operationType() (OperationType, error) {
	tok, err := p.expectToken(KindName)
	if err != nil {
		return 0, err
	}
	switch tok.Value {
	case "query":
		return Query, nil
	case "mutation":
		return Mutation, nil
	case "subscription":
		return Subscription, nil
	default:
		return 0, p.unexpected(tok)
	}
}

// variableDefinition parses Variable : Type DefaultValue? Directives[Const]?
func (p *parser) variableDefinition() (*VariableDefinition, error) {
	start := p.lexer.Token()
	defn := new(VariableDefinition)
	var err error
	if defn.Variable, err = p.variable(); err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	if defn.Type, err = p.typeRef(); err != nil {
		return nil, err
	}
	if defn.DefaultValue, err = p.defaultValue(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

func (p *parser) defaultValue() (*InputValue, error) {
	hasDefault, err := p.expectOptionalToken(KindEquals)
	if err != nil || !hasDefault {
		return nil, err
	}
	return p.valueLiteral(true)
}

func (p *parser) variable() (*Variable, error) {
	start := p.lexer.Token()
	if _, err := p.expectToken(KindDollar); err != nil {
		return nil, err
	}
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	return &Variable{Name: name, Loc: p.loc(start)}, nil
}

// selectionSet parses { Selection+ }. parent is the ID of the selection
// that owns the set or zero at the top level.
func (p *parser) selectionSet(parent SelectionID) (*SelectionSet, error) {
	start := p.lexer.Token()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	sels, err := many(p, KindLeftBrace, func() (*Selection, error) {
		return p.selection(parent)
	}, KindRightBrace)
	if err != nil {
		return nil, err
	}
	return &SelectionSet{Selections: sels, Loc: p.loc(start)}, nil
}

func (p *parser) selection(parent SelectionID) (*Selection, error) {
	if p.peek(KindSpread) {
		return p.fragment(parent)
	}
	return p.field(parent)
}

// newSelection adds a selection to the document's arena.
func (p *parser) newSelection(parent SelectionID) *Selection {
	sel := &Selection{
		ID:     SelectionID(len(p.doc.selections) + 1),
		Parent: parent,
	}
	p.doc.selections = append(p.doc.selections, sel)
	return sel
}

// field parses Alias? Name Arguments? Directives? SelectionSet?
func (p *parser) field(parent SelectionID) (*Selection, error) {
	start := p.lexer.Token()
	nameOrAlias, err := p.name()
	if err != nil {
		return nil, err
	}
	f := new(Field)
	hasAlias, err := p.expectOptionalToken(KindColon)
	if err != nil {
		return nil, err
	}
	if hasAlias {
		f.Alias = nameOrAlias
		if f.Name, err = p.name(); err != nil {
			return nil, err
		}
	} else {
		f.Name = nameOrAlias
	}
	if f.Arguments, err = p.arguments(false); err != nil {
		return nil, err
	}
	if f.Directives, err = p.directives(false); err != nil {
		return nil, err
	}
	sel := p.newSelection(parent)
	sel.Field = f
	if p.peek(KindLeftBrace) {
		if f.SelectionSet, err = p.selectionSet(sel.ID); err != nil {
			return nil, err
		}
	}
	f.Loc = p.loc(start)
	return sel, nil
}

func (p *parser) arguments(isConst bool) ([]*Argument, error) {
	return optionalMany(p, KindLeftParen, func() (*Argument, error) {
		return p.argument(isConst)
	}, KindRightParen)
}

// argument parses Name : Value.
func (p *parser) argument(isConst bool) (*Argument, error) {
	start := p.lexer.Token()
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	val, err := p.valueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &Argument{Name: name, Value: val, Loc: p.loc(start)}, nil
}

// fragment parses either a FragmentSpread or an InlineFragment:
//
//	... FragmentName Directives?
//	... TypeCondition? Directives? SelectionSet
func (p *parser) fragment(parent SelectionID) (*Selection, error) {
	start := p.lexer.Token()
	if _, err := p.expectToken(KindSpread); err != nil {
		return nil, err
	}
	hasTypeCondition, err := p.expectOptionalKeyword("on")
	if err != nil {
		return nil, err
	}
	if !hasTypeCondition && p.peek(KindName) {
		spread := new(FragmentSpread)
		if spread.Name, err = p.fragmentName(); err != nil {
			return nil, err
		}
		if spread.Directives, err = p.directives(false); err != nil {
			return nil, err
		}
		spread.Loc = p.loc(start)
		sel := p.newSelection(parent)
		sel.FragmentSpread = spread
		return sel, nil
	}

	frag := new(InlineFragment)
	if hasTypeCondition {
		if frag.TypeCondition, err = p.name(); err != nil {
			return nil, err
		}
	}
	if frag.Directives, err = p.directives(false); err != nil {
		return nil, err
	}
	sel := p.newSelection(parent)
	sel.InlineFragment = frag
	if frag.SelectionSet, err = p.selectionSet(sel.ID); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return sel, nil
}

// fragmentDefinition parses
// fragment FragmentName on TypeCondition Directives? SelectionSet.
func (p *parser) fragmentDefinition() (*FragmentDefinition, error) {
	start := p.lexer.Token()
	if err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}
	frag := new(FragmentDefinition)
	var err error
	if frag.Name, err = p.fragmentName(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if frag.TypeCondition, err = p.name(); err != nil {
		return nil, err
	}
	if frag.Directives, err = p.directives(false); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = p.selectionSet(0); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return frag, nil
}

// fragmentName parses a Name that is not "on".
func (p *parser) fragmentName() (*Name, error) {
	if tok := p.lexer.Token(); tok.Kind == KindName && tok.Value == "on" {
		return nil, p.unexpected(tok)
	}
	return p.name()
}

// valueLiteral parses a Value. Variables are rejected if isConst is true.
// https://spec.graphql.org/June2018/#Value
func (p *parser) valueLiteral(isConst bool) (*InputValue, error) {
	tok := p.lexer.Token()
	switch tok.Kind {
	case KindLeftBracket:
		list, err := p.listValue(isConst)
		if err != nil {
			return nil, err
		}
		return &InputValue{List: list}, nil
	case KindLeftBrace:
		obj, err := p.objectValue(isConst)
		if err != nil {
			return nil, err
		}
		return &InputValue{Object: obj}, nil
	case KindInt, KindFloat:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		typ := IntScalar
		if tok.Kind == KindFloat {
			typ = FloatScalar
		}
		return &InputValue{Scalar: &ScalarValue{
			Type:  typ,
			Raw:   tok.Value,
			Value: tok.Value,
			Loc:   p.loc(tok),
		}}, nil
	case KindString, KindBlockString:
		sval, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}
		return &InputValue{Scalar: sval}, nil
	case KindName:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		switch tok.Value {
		case "null":
			return &InputValue{Null: &Name{Value: tok.Value, Loc: p.loc(tok)}}, nil
		case "true", "false":
			return &InputValue{Scalar: &ScalarValue{
				Type:  BooleanScalar,
				Raw:   tok.Value,
				Value: tok.Value,
				Loc:   p.loc(tok),
			}}, nil
		default:
			return &InputValue{Scalar: &ScalarValue{
				Type:  EnumScalar,
				Raw:   tok.Value,
				Value: tok.Value,
				Loc:   p.loc(tok),
			}}, nil
		}
	case KindDollar:
		if isConst {
			return nil, p.unexpected(tok)
		}
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		return &InputValue{Variable: v}, nil
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parser) stringLiteral() (*ScalarValue, error) {
	tok := p.lexer.Token()
	if _, err := p.lexer.Advance(); err != nil {
		return nil, err
	}
	return &ScalarValue{
		Type:  StringScalar,
		Raw:   p.lexer.Source().Body[tok.Start:tok.End],
		Value: tok.Value,
		Block: tok.Kind == KindBlockString,
		Loc:   p.loc(tok),
	}, nil
}

// listValue parses [ ] or [ Value+ ].
func (p *parser) listValue(isConst bool) (*ListValue, error) {
	start := p.lexer.Token()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	vals, err := parseAny(p, KindLeftBracket, func() (*InputValue, error) {
		return p.valueLiteral(isConst)
	}, KindRightBracket)
	if err != nil {
		return nil, err
	}
	return &ListValue{Values: vals, Loc: p.loc(start)}, nil
}

// objectValue parses { } or { ObjectField+ }.
func (p *parser) objectValue(isConst bool) (*ObjectValue, error) {
	start := p.lexer.Token()
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	fields, err := parseAny(p, KindLeftBrace, func() (*ObjectField, error) {
		return p.objectField(isConst)
	}, KindRightBrace)
	if err != nil {
		return nil, err
	}
	return &ObjectValue{Fields: fields, Loc: p.loc(start)}, nil
}

func (p *parser) objectField(isConst bool) (*ObjectField, error) {
	start := p.lexer.Token()
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	val, err := p.valueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &ObjectField{Name: name, Value: val, Loc: p.loc(start)}, nil
}

func (p *parser) directives(isConst bool) ([]*Directive, error) {
	var dirs []*Directive
	for p.peek(KindAt) {
		d, err := p.directive(isConst)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// directive parses @ Name Arguments?
func (p *parser) directive(isConst bool) (*Directive, error) {
	start := p.lexer.Token()
	if _, err := p.expectToken(KindAt); err != nil {
		return nil, err
	}
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	args, err := p.arguments(isConst)
	if err != nil {
		return nil, err
	}
	return &Directive{Name: name, Arguments: args, Loc: p.loc(start)}, nil
}

// typeRef parses a Type: a NamedType, [ Type ], or either followed by "!".
// https://spec.graphql.org/June2018/#Type
func (p *parser) typeRef() (*TypeRef, error) {
	start := p.lexer.Token()
	isList, err := p.expectOptionalToken(KindLeftBracket)
	if err != nil {
		return nil, err
	}
	if !isList {
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		nonNull, err := p.expectOptionalToken(KindBang)
		if err != nil {
			return nil, err
		}
		if nonNull {
			return &TypeRef{NonNull: &NonNullType{Named: name, Loc: p.loc(start)}}, nil
		}
		return &TypeRef{Named: name}, nil
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	elem, err := p.typeRef()
	p.leave()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindRightBracket); err != nil {
		return nil, err
	}
	list := &ListType{Type: elem, Loc: p.loc(start)}
	nonNull, err := p.expectOptionalToken(KindBang)
	if err != nil {
		return nil, err
	}
	if nonNull {
		return &TypeRef{NonNull: &NonNullType{List: list, Loc: p.loc(start)}}, nil
	}
	return &TypeRef{List: list}, nil
}

// typeSystemDefinition dispatches on the definition keyword, which may
// follow a description.
func (p *parser) typeSystemDefinition() (*Definition, error) {
	keyword := p.lexer.Token()
	if p.peekDescription() {
		var err error
		if keyword, err = p.lexer.Lookahead(); err != nil {
			return nil, err
		}
	}
	if keyword.Kind != KindName {
		return nil, p.unexpected(keyword)
	}
	switch keyword.Value {
	case "schema":
		defn, err := p.schemaDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Schema: defn}, nil
	case "scalar":
		defn, err := p.scalarTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{Scalar: defn}}, nil
	case "type":
		defn, err := p.objectTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{Object: defn}}, nil
	case "interface":
		defn, err := p.interfaceTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{Interface: defn}}, nil
	case "union":
		defn, err := p.unionTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{Union: defn}}, nil
	case "enum":
		defn, err := p.enumTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{Enum: defn}}, nil
	case "input":
		defn, err := p.inputObjectTypeDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Type: &TypeDefinition{InputObject: defn}}, nil
	case "directive":
		defn, err := p.directiveDefinition()
		if err != nil {
			return nil, err
		}
		return &Definition{Directive: defn}, nil
	default:
		return nil, p.unexpected(keyword)
	}
}

func (p *parser) peekDescription() bool {
	return p.peek(KindString) || p.peek(KindBlockString)
}

func (p *parser) description() (*ScalarValue, error) {
	if !p.peekDescription() {
		return nil, nil
	}
	return p.stringLiteral()
}

// schemaDefinition parses
// Description? schema Directives[Const]? { OperationTypeDefinition+ }
func (p *parser) schemaDefinition() (*SchemaDefinition, error) {
	start := p.lexer.Token()
	defn := new(SchemaDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	if defn.OperationTypes, err = many(p, KindLeftBrace, p.operationTypeDefinition, KindRightBrace); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// operationTypeDefinition parses OperationType : NamedType.
func (p *parser) operationTypeDefinition() (*OperationTypeDefinition, error) {
	start := p.lexer.Token()
	op, err := p.operationType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	typ, err := p.name()
	if err != nil {
		return nil, err
	}
	return &OperationTypeDefinition{Operation: op, Type: typ, Loc: p.loc(start)}, nil
}

func (p *parser) scalarTypeDefinition() (*ScalarTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(ScalarTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// objectTypeDefinition parses
// Description? type Name ImplementsInterfaces? Directives[Const]? FieldsDefinition?
func (p *parser) objectTypeDefinition() (*ObjectTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(ObjectTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Interfaces, err = p.implementsInterfaces(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	if defn.Fields, err = p.fieldsDefinition(); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// implementsInterfaces parses implements &? NamedType (& NamedType)*.
func (p *parser) implementsInterfaces() ([]*Name, error) {
	ok, err := p.expectOptionalKeyword("implements")
	if err != nil || !ok {
		return nil, err
	}
	if _, err := p.expectOptionalToken(KindAmp); err != nil {
		return nil, err
	}
	var types []*Name
	for {
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		types = append(types, name)
		more, err := p.expectOptionalToken(KindAmp)
		if err != nil {
			return nil, err
		}
		if !more && !(p.opts.AllowLegacySDLImplementsInterfaces && p.peek(KindName)) {
			return types, nil
		}
	}
}

// fieldsDefinition parses { FieldDefinition+ }, which may be absent.
func (p *parser) fieldsDefinition() ([]*FieldDefinition, error) {
	if p.opts.AllowLegacySDLEmptyFields && p.peek(KindLeftBrace) {
		next, err := p.lexer.Lookahead()
		if err != nil {
			return nil, err
		}
		if next.Kind == KindRightBrace {
			if _, err := p.lexer.Advance(); err != nil {
				return nil, err
			}
			if _, err := p.lexer.Advance(); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}
	return optionalMany(p, KindLeftBrace, p.fieldDefinition, KindRightBrace)
}

// fieldDefinition parses
// Description? Name ArgumentsDefinition? : Type Directives[Const]?
func (p *parser) fieldDefinition() (*FieldDefinition, error) {
	start := p.lexer.Token()
	defn := new(FieldDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Arguments, err = p.argumentDefinitions(); err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	if defn.Type, err = p.typeRef(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

func (p *parser) argumentDefinitions() ([]*InputValueDefinition, error) {
	return optionalMany(p, KindLeftParen, p.inputValueDefinition, KindRightParen)
}

// inputValueDefinition parses
// Description? Name : Type DefaultValue? Directives[Const]?
func (p *parser) inputValueDefinition() (*InputValueDefinition, error) {
	start := p.lexer.Token()
	defn := new(InputValueDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindColon); err != nil {
		return nil, err
	}
	if defn.Type, err = p.typeRef(); err != nil {
		return nil, err
	}
	if defn.DefaultValue, err = p.defaultValue(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// interfaceTypeDefinition parses
// Description? interface Name Directives[Const]? FieldsDefinition?
func (p *parser) interfaceTypeDefinition() (*InterfaceTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(InterfaceTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	if defn.Fields, err = p.fieldsDefinition(); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// unionTypeDefinition parses
// Description? union Name Directives[Const]? (= |? NamedType (| NamedType)*)?
func (p *parser) unionTypeDefinition() (*UnionTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(UnionTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	hasMembers, err := p.expectOptionalToken(KindEquals)
	if err != nil {
		return nil, err
	}
	if hasMembers {
		if defn.Types, err = p.pipeSeparated(p.name); err != nil {
			return nil, err
		}
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// pipeSeparated parses |? item (| item)*.
func (p *parser) pipeSeparated(item func() (*Name, error)) ([]*Name, error) {
	if _, err := p.expectOptionalToken(KindPipe); err != nil {
		return nil, err
	}
	var names []*Name
	for {
		name, err := item()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		more, err := p.expectOptionalToken(KindPipe)
		if err != nil {
			return nil, err
		}
		if !more {
			return names, nil
		}
	}
}

// enumTypeDefinition parses
// Description? enum Name Directives[Const]? { EnumValueDefinition+ }?
func (p *parser) enumTypeDefinition() (*EnumTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(EnumTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	if defn.Values, err = optionalMany(p, KindLeftBrace, p.enumValueDefinition, KindRightBrace); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

func (p *parser) enumValueDefinition() (*EnumValueDefinition, error) {
	start := p.lexer.Token()
	defn := new(EnumValueDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// inputObjectTypeDefinition parses
// Description? input Name Directives[Const]? { InputValueDefinition+ }?
func (p *parser) inputObjectTypeDefinition() (*InputObjectTypeDefinition, error) {
	start := p.lexer.Token()
	defn := new(InputObjectTypeDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Directives, err = p.directives(true); err != nil {
		return nil, err
	}
	if defn.Fields, err = optionalMany(p, KindLeftBrace, p.inputValueDefinition, KindRightBrace); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// directiveDefinition parses
// Description? directive @ Name ArgumentsDefinition? repeatable? on DirectiveLocations
func (p *parser) directiveDefinition() (*DirectiveDefinition, error) {
	start := p.lexer.Token()
	defn := new(DirectiveDefinition)
	var err error
	if defn.Description, err = p.description(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expectToken(KindAt); err != nil {
		return nil, err
	}
	if defn.Name, err = p.name(); err != nil {
		return nil, err
	}
	if defn.Arguments, err = p.argumentDefinitions(); err != nil {
		return nil, err
	}
	if defn.Repeatable, err = p.expectOptionalKeyword("repeatable"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if defn.Locations, err = p.pipeSeparated(p.directiveLocation); err != nil {
		return nil, err
	}
	defn.Loc = p.loc(start)
	return defn, nil
}

// directiveLocations is the set of valid DirectiveLocation names.
// https://spec.graphql.org/June2018/#DirectiveLocation
var directiveLocations = map[string]struct{}{
	"QUERY":                  {},
	"MUTATION":               {},
	"SUBSCRIPTION":           {},
	"FIELD":                  {},
	"FRAGMENT_DEFINITION":    {},
	"FRAGMENT_SPREAD":        {},
	"INLINE_FRAGMENT":        {},
	"VARIABLE_DEFINITION":    {},
	"SCHEMA":                 {},
	"SCALAR":                 {},
	"OBJECT":                 {},
	"FIELD_DEFINITION":       {},
	"ARGUMENT_DEFINITION":    {},
	"INTERFACE":              {},
	"UNION":                  {},
	"ENUM":                   {},
	"ENUM_VALUE":             {},
	"INPUT_OBJECT":           {},
	"INPUT_FIELD_DEFINITION": {},
}

func (p *parser) directiveLocation() (*Name, error) {
	start := p.lexer.Token()
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	if _, ok := directiveLocations[name.Value]; !ok {
		return nil, p.unexpected(start)
	}
	return name, nil
}

func (p *parser) name() (*Name, error) {
	tok, err := p.expectToken(KindName)
	if err != nil {
		return nil, err
	}
	return &Name{Value: tok.Value, Loc: p.loc(tok)}, nil
}

// loc returns the location from start to the last consumed token, or nil
// if locations are disabled.
func (p *parser) loc(start Token) *Location {
	if p.opts.NoLocation {
		return nil
	}
	end := p.lexer.LastToken()
	return &Location{
		Start:      start.Start,
		End:        end.End,
		StartToken: start,
		EndToken:   end,
		Source:     p.lexer.Source(),
	}
}

func (p *parser) peek(kind TokenKind) bool {
	return p.lexer.Token().Kind == kind
}

// expectToken consumes the current token if it is of the given kind and
// returns an error otherwise.
func (p *parser) expectToken(kind TokenKind) (Token, error) {
	tok := p.lexer.Token()
	if tok.Kind != kind {
		return Token{}, syntaxError(p.lexer.Source(), tok.Start,
			fmt.Sprintf("Expected %s, found %v.", kind.describe(), tok))
	}
	if _, err := p.lexer.Advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// expectOptionalToken consumes the current token if it is of the given kind.
func (p *parser) expectOptionalToken(kind TokenKind) (bool, error) {
	if !p.peek(kind) {
		return false, nil
	}
	if _, err := p.lexer.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expectKeyword consumes the current token if it is the given name and
// returns an error otherwise.
func (p *parser) expectKeyword(value string) error {
	tok := p.lexer.Token()
	if tok.Kind != KindName || tok.Value != value {
		return syntaxError(p.lexer.Source(), tok.Start,
			fmt.Sprintf("Expected %q, found %v.", value, tok))
	}
	_, err := p.lexer.Advance()
	return err
}

// expectOptionalKeyword consumes the current token if it is the given name.
func (p *parser) expectOptionalKeyword(value string) (bool, error) {
	tok := p.lexer.Token()
	if tok.Kind != KindName || tok.Value != value {
		return false, nil
	}
	if _, err := p.lexer.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *parser) unexpected(tok Token) error {
	return syntaxError(p.lexer.Source(), tok.Start, fmt.Sprintf("Unexpected %v.", tok))
}

// enter records one more level of nesting. Callers must call leave once
// enter succeeds.
func (p *parser) enter() error {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return syntaxError(p.lexer.Source(), p.lexer.Token().Start,
			fmt.Sprintf("Document exceeds the maximum nesting depth of %d.", p.opts.MaxDepth))
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseAny parses zero or more items surrounded by open and close.
func parseAny[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if _, err := p.expectToken(open); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		done, err := p.expectOptionalToken(close)
		if err != nil {
			return nil, err
		}
		if done {
			return nodes, nil
		}
		n, err := item()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// optionalMany parses one or more items surrounded by open and close, or
// nothing if the current token is not open.
func optionalMany[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if !p.peek(open) {
		return nil, nil
	}
	return many(p, open, item, close)
}

// many parses one or more items surrounded by open and close.
func many[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if _, err := p.expectToken(open); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		n, err := item()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		done, err := p.expectOptionalToken(close)
		if err != nil {
			return nil, err
		}
		if done {
			return nodes, nil
		}
	}
}
