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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newName(value string) *Name {
	return &Name{Value: value}
}

func namedType(name string) *TypeRef {
	return &TypeRef{Named: newName(name)}
}

func scalarValue(typ ScalarType, raw string) *InputValue {
	return &InputValue{Scalar: &ScalarValue{Type: typ, Raw: raw, Value: raw}}
}

func stringValue(raw, value string) *ScalarValue {
	return &ScalarValue{Type: StringScalar, Raw: raw, Value: value}
}

// astOptions compares documents structurally, ignoring the selection arena.
var astOptions = cmp.Options{
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreUnexported(Document{}),
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ParseOptions
		want  *Document
	}{
		{
			name:  "OverviewQuery",
			input: "query MyQuery { user(id: 4) { firstName, lastName } }\n",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					Name: newName("MyQuery"),
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{
							Name: newName("user"),
							Arguments: []*Argument{
								{Name: newName("id"), Value: scalarValue(IntScalar, "4")},
							},
							SelectionSet: &SelectionSet{Selections: []*Selection{
								{ID: 2, Parent: 1, Field: &Field{Name: newName("firstName")}},
								{ID: 3, Parent: 1, Field: &Field{Name: newName("lastName")}},
							}},
						}},
					}},
				}},
			}},
		},
		{
			name:  "Shorthand",
			input: "{ a }",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{Name: newName("a")}},
					}},
				}},
			}},
		},
		{
			name:  "Alias",
			input: "{ smallPic: profilePic(size: 64) }",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{
							Alias: newName("smallPic"),
							Name:  newName("profilePic"),
							Arguments: []*Argument{
								{Name: newName("size"), Value: scalarValue(IntScalar, "64")},
							},
						}},
					}},
				}},
			}},
		},
		{
			name:  "MutationAndSubscription",
			input: "mutation { a } subscription S { b }",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Mutation,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{Name: newName("a")}},
					}},
				}},
				{Operation: &Operation{
					Type: Subscription,
					Name: newName("S"),
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 2, Field: &Field{Name: newName("b")}},
					}},
				}},
			}},
		},
		{
			name:  "VariablesAndDirectives",
			input: `query Q($id: ID! = "x", $list: [Int!] @v) @dir { node(id: $id) @skip(if: false) }`,
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					Name: newName("Q"),
					VariableDefinitions: []*VariableDefinition{
						{
							Variable:     &Variable{Name: newName("id")},
							Type:         &TypeRef{NonNull: &NonNullType{Named: newName("ID")}},
							DefaultValue: &InputValue{Scalar: stringValue(`"x"`, "x")},
						},
						{
							Variable: &Variable{Name: newName("list")},
							Type: &TypeRef{List: &ListType{
								Type: &TypeRef{NonNull: &NonNullType{Named: newName("Int")}},
							}},
							Directives: []*Directive{{Name: newName("v")}},
						},
					},
					Directives: []*Directive{{Name: newName("dir")}},
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{
							Name: newName("node"),
							Arguments: []*Argument{
								{Name: newName("id"), Value: &InputValue{Variable: &Variable{Name: newName("id")}}},
							},
							Directives: []*Directive{
								{
									Name: newName("skip"),
									Arguments: []*Argument{
										{Name: newName("if"), Value: scalarValue(BooleanScalar, "false")},
									},
								},
							},
						}},
					}},
				}},
			}},
		},
		{
			name:  "Fragments",
			input: "{ ...Foo ... on Bar { b } ... @include(if: true) { c } }\nfragment Foo on Baz { d }",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, FragmentSpread: &FragmentSpread{Name: newName("Foo")}},
						{ID: 2, InlineFragment: &InlineFragment{
							TypeCondition: newName("Bar"),
							SelectionSet: &SelectionSet{Selections: []*Selection{
								{ID: 3, Parent: 2, Field: &Field{Name: newName("b")}},
							}},
						}},
						{ID: 4, InlineFragment: &InlineFragment{
							Directives: []*Directive{
								{
									Name: newName("include"),
									Arguments: []*Argument{
										{Name: newName("if"), Value: scalarValue(BooleanScalar, "true")},
									},
								},
							},
							SelectionSet: &SelectionSet{Selections: []*Selection{
								{ID: 5, Parent: 4, Field: &Field{Name: newName("c")}},
							}},
						}},
					}},
				}},
				{Fragment: &FragmentDefinition{
					Name:          newName("Foo"),
					TypeCondition: newName("Baz"),
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 6, Field: &Field{Name: newName("d")}},
					}},
				}},
			}},
		},
		{
			name:  "Values",
			input: `{ f(a: 1, b: -1.5e3, c: "s\n", d: """ b """, e: true, g: null, h: ENUM, i: [1, 2], j: {k: $v}, l: [], m: {}) }`,
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{
							Name: newName("f"),
							Arguments: []*Argument{
								{Name: newName("a"), Value: scalarValue(IntScalar, "1")},
								{Name: newName("b"), Value: scalarValue(FloatScalar, "-1.5e3")},
								{Name: newName("c"), Value: &InputValue{Scalar: stringValue(`"s\n"`, "s\n")}},
								{Name: newName("d"), Value: &InputValue{Scalar: &ScalarValue{
									Type:  StringScalar,
									Raw:   `""" b """`,
									Value: " b ",
									Block: true,
								}}},
								{Name: newName("e"), Value: scalarValue(BooleanScalar, "true")},
								{Name: newName("g"), Value: &InputValue{Null: newName("null")}},
								{Name: newName("h"), Value: scalarValue(EnumScalar, "ENUM")},
								{Name: newName("i"), Value: &InputValue{List: &ListValue{Values: []*InputValue{
									scalarValue(IntScalar, "1"),
									scalarValue(IntScalar, "2"),
								}}}},
								{Name: newName("j"), Value: &InputValue{Object: &ObjectValue{Fields: []*ObjectField{
									{Name: newName("k"), Value: &InputValue{Variable: &Variable{Name: newName("v")}}},
								}}}},
								{Name: newName("l"), Value: &InputValue{List: &ListValue{}}},
								{Name: newName("m"), Value: &InputValue{Object: &ObjectValue{}}},
							},
						}},
					}},
				}},
			}},
		},
		{
			name: "Schema",
			input: `"""Root"""
schema @a { query: Query mutation: Mutation }
"desc" scalar Date @b
type Foo implements Bar & Baz @c { "f" f(x: Int = 1 @d): [String!]! }
interface Bar { f: String }
union U = | A | B
enum E { "v" V @e W }
input I { x: Int = 2 }
directive @d(a: Int) repeatable on FIELD | QUERY
`,
			want: &Document{Definitions: []*Definition{
				{Schema: &SchemaDefinition{
					Description: &ScalarValue{Type: StringScalar, Raw: `"""Root"""`, Value: "Root", Block: true},
					Directives:  []*Directive{{Name: newName("a")}},
					OperationTypes: []*OperationTypeDefinition{
						{Operation: Query, Type: newName("Query")},
						{Operation: Mutation, Type: newName("Mutation")},
					},
				}},
				{Type: &TypeDefinition{Scalar: &ScalarTypeDefinition{
					Description: stringValue(`"desc"`, "desc"),
					Name:        newName("Date"),
					Directives:  []*Directive{{Name: newName("b")}},
				}}},
				{Type: &TypeDefinition{Object: &ObjectTypeDefinition{
					Name:       newName("Foo"),
					Interfaces: []*Name{newName("Bar"), newName("Baz")},
					Directives: []*Directive{{Name: newName("c")}},
					Fields: []*FieldDefinition{
						{
							Description: stringValue(`"f"`, "f"),
							Name:        newName("f"),
							Arguments: []*InputValueDefinition{
								{
									Name:         newName("x"),
									Type:         namedType("Int"),
									DefaultValue: scalarValue(IntScalar, "1"),
									Directives:   []*Directive{{Name: newName("d")}},
								},
							},
							Type: &TypeRef{NonNull: &NonNullType{List: &ListType{
								Type: &TypeRef{NonNull: &NonNullType{Named: newName("String")}},
							}}},
						},
					},
				}}},
				{Type: &TypeDefinition{Interface: &InterfaceTypeDefinition{
					Name: newName("Bar"),
					Fields: []*FieldDefinition{
						{Name: newName("f"), Type: namedType("String")},
					},
				}}},
				{Type: &TypeDefinition{Union: &UnionTypeDefinition{
					Name:  newName("U"),
					Types: []*Name{newName("A"), newName("B")},
				}}},
				{Type: &TypeDefinition{Enum: &EnumTypeDefinition{
					Name: newName("E"),
					Values: []*EnumValueDefinition{
						{
							Description: stringValue(`"v"`, "v"),
							Name:        newName("V"),
							Directives:  []*Directive{{Name: newName("e")}},
						},
						{Name: newName("W")},
					},
				}}},
				{Type: &TypeDefinition{InputObject: &InputObjectTypeDefinition{
					Name: newName("I"),
					Fields: []*InputValueDefinition{
						{Name: newName("x"), Type: namedType("Int"), DefaultValue: scalarValue(IntScalar, "2")},
					},
				}}},
				{Directive: &DirectiveDefinition{
					Name: newName("d"),
					Arguments: []*InputValueDefinition{
						{Name: newName("a"), Type: namedType("Int")},
					},
					Repeatable: true,
					Locations:  []*Name{newName("FIELD"), newName("QUERY")},
				}},
			}},
		},
		{
			name:  "LegacyEmptyFields",
			input: "type Query {}",
			opts:  ParseOptions{AllowLegacySDLEmptyFields: true},
			want: &Document{Definitions: []*Definition{
				{Type: &TypeDefinition{Object: &ObjectTypeDefinition{Name: newName("Query")}}},
			}},
		},
		{
			name:  "LegacyImplementsInterfaces",
			input: "type Foo implements Bar Baz { a: Int }",
			opts:  ParseOptions{AllowLegacySDLImplementsInterfaces: true},
			want: &Document{Definitions: []*Definition{
				{Type: &TypeDefinition{Object: &ObjectTypeDefinition{
					Name:       newName("Foo"),
					Interfaces: []*Name{newName("Bar"), newName("Baz")},
					Fields: []*FieldDefinition{
						{Name: newName("a"), Type: namedType("Int")},
					},
				}}},
			}},
		},
		{
			name:  "KeywordsAsNames",
			input: "{ query on: type(null: null, true: true) }",
			want: &Document{Definitions: []*Definition{
				{Operation: &Operation{
					Type: Query,
					SelectionSet: &SelectionSet{Selections: []*Selection{
						{ID: 1, Field: &Field{Name: newName("query")}},
						{ID: 2, Field: &Field{
							Alias: newName("on"),
							Name:  newName("type"),
							Arguments: []*Argument{
								{Name: newName("null"), Value: &InputValue{Null: newName("null")}},
								{Name: newName("true"), Value: scalarValue(BooleanScalar, "true")},
							},
						}},
					}},
				}},
			}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := test.opts
			opts.NoLocation = true
			got, err := ParseSource(NewSource(test.input, ""), opts)
			if err != nil {
				if p, ok := ErrorPosition(err); ok {
					t.Fatalf("%v: %v", p, err)
				}
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got, astOptions); diff != "" {
				t.Errorf("-want +got:\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    ParseOptions
		wantMsg string
		wantPos Position
	}{
		{
			name:    "Empty",
			input:   "",
			wantMsg: "Syntax Error: Unexpected <EOF>.",
			wantPos: Position{1, 1},
		},
		{
			name:    "UnclosedSelectionSet",
			input:   "{",
			wantMsg: "Syntax Error: Expected Name, found <EOF>.",
			wantPos: Position{1, 2},
		},
		{
			name:    "FragmentNamedOn",
			input:   "fragment on on on { on }",
			wantMsg: `Syntax Error: Unexpected Name "on".`,
			wantPos: Position{1, 10},
		},
		{
			name:    "InlineFragmentMissingType",
			input:   "{ ...on }",
			wantMsg: `Syntax Error: Expected Name, found "}".`,
			wantPos: Position{1, 9},
		},
		{
			name:    "VariableInConstContext",
			input:   "query Q($a: Int = $b) { a }",
			wantMsg: `Syntax Error: Unexpected "$".`,
			wantPos: Position{1, 19},
		},
		{
			name:    "VariableInDirectiveDefault",
			input:   "type Foo { f(x: Int @d(a: $b)): Int }",
			wantMsg: `Syntax Error: Unexpected "$".`,
			wantPos: Position{1, 27},
		},
		{
			name:    "UnknownDefinition",
			input:   "notanoperation { a }",
			wantMsg: `Syntax Error: Unexpected Name "notanoperation".`,
			wantPos: Position{1, 1},
		},
		{
			name:    "UnknownOperationType",
			input:   `"desc" query { a }`,
			wantMsg: `Syntax Error: Unexpected Name "query".`,
			wantPos: Position{1, 8},
		},
		{
			name:    "Extension",
			input:   "extend type Foo { a: Int }",
			wantMsg: "Syntax Error: Type system extensions are not supported.",
			wantPos: Position{1, 1},
		},
		{
			name:    "TrailingBrace",
			input:   "{ a }}",
			wantMsg: `Syntax Error: Unexpected "}".`,
			wantPos: Position{1, 6},
		},
		{
			name:    "MissingColonInArgument",
			input:   "{ a(b 1) }",
			wantMsg: `Syntax Error: Expected ":", found Int "1".`,
			wantPos: Position{1, 7},
		},
		{
			name:    "FragmentMissingOn",
			input:   "fragment Foo Bar { a }",
			wantMsg: `Syntax Error: Expected "on", found Name "Bar".`,
			wantPos: Position{1, 14},
		},
		{
			name:    "UnknownDirectiveLocation",
			input:   "directive @d on FOO",
			wantMsg: `Syntax Error: Unexpected Name "FOO".`,
			wantPos: Position{1, 17},
		},
		{
			name:    "EmptyFieldsWithoutLegacyOption",
			input:   "type Foo {}",
			wantMsg: `Syntax Error: Expected Name, found "}".`,
			wantPos: Position{1, 11},
		},
		{
			name:    "ImplementsWithoutAmpersand",
			input:   "type Foo implements Bar Baz { a: Int }",
			wantMsg: `Syntax Error: Unexpected Name "Baz".`,
			wantPos: Position{1, 25},
		},
		{
			name:    "LexErrorInValue",
			input:   "{ a(b: 01) }",
			wantMsg: `Syntax Error: Invalid number, unexpected digit after 0: "1".`,
			wantPos: Position{1, 9},
		},
		{
			name:    "LexErrorOnSecondLine",
			input:   "{\n  a(b: \"oops)\n}",
			wantMsg: "Syntax Error: Unterminated string.",
			wantPos: Position{2, 14},
		},
		{
			name:    "TooDeep",
			input:   "{ a { b { c } } }",
			opts:    ParseOptions{MaxDepth: 2},
			wantMsg: "Syntax Error: Document exceeds the maximum nesting depth of 2.",
			wantPos: Position{1, 9},
		},
		{
			name:    "TooDeepList",
			input:   "{ a(b: [[1]]) }",
			opts:    ParseOptions{MaxDepth: 2},
			wantMsg: "Syntax Error: Document exceeds the maximum nesting depth of 2.",
			wantPos: Position{1, 9},
		},
		{
			name:    "TooLarge",
			input:   "{ a }",
			opts:    ParseOptions{MaxSize: 3},
			wantMsg: "Syntax Error: Document of 5 bytes exceeds the maximum size of 3 bytes.",
			wantPos: Position{1, 1},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := ParseSource(NewSource(test.input, ""), test.opts)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, <nil>; want error", test.input, doc)
			}
			if got := err.Error(); got != test.wantMsg {
				t.Errorf("error = %q; want %q", got, test.wantMsg)
			}
			if got, ok := ErrorPosition(err); !ok || got != test.wantPos {
				t.Errorf("ErrorPosition(err) = %v, %t; want %v, true", got, ok, test.wantPos)
			}
			if kind, ok := ErrorKindOf(err); !ok || kind != SyntaxError {
				t.Errorf("ErrorKindOf(err) = %v, %t; want %v, true", kind, ok, SyntaxError)
			}
		})
	}
}

func TestParseLocations(t *testing.T) {
	src := NewSource("query Q { a }", "")
	doc, err := ParseSource(src, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	op := doc.Definitions[0].Operation
	field := op.SelectionSet.Selections[0].Field
	tests := []struct {
		name      string
		loc       *Location
		wantStart Pos
		wantEnd   Pos
	}{
		{"Document", doc.Loc, 0, 13},
		{"Operation", op.Loc, 0, 13},
		{"Name", op.Name.Loc, 6, 7},
		{"SelectionSet", op.SelectionSet.Loc, 8, 13},
		{"Field", field.Loc, 10, 11},
	}
	for _, test := range tests {
		if test.loc == nil {
			t.Errorf("%s.Loc = nil", test.name)
			continue
		}
		if test.loc.Start != test.wantStart || test.loc.End != test.wantEnd {
			t.Errorf("%s.Loc = [%d, %d); want [%d, %d)", test.name, test.loc.Start, test.loc.End, test.wantStart, test.wantEnd)
		}
		if test.loc.Source != src {
			t.Errorf("%s.Loc.Source = %p; want %p", test.name, test.loc.Source, src)
		}
	}
	if got := op.Loc.StartToken; got.Kind != KindName || got.Value != "query" {
		t.Errorf("Operation.Loc.StartToken = %v; want Name \"query\"", got)
	}
	if got := op.Loc.EndToken.Kind; got != KindRightBrace {
		t.Errorf("Operation.Loc.EndToken.Kind = %v; want %v", got, KindRightBrace)
	}
}

func TestParseNoLocation(t *testing.T) {
	doc, err := ParseSource(NewSource("query Q($a: [Int!]) { a(b: $a) }", ""), ParseOptions{NoLocation: true})
	if err != nil {
		t.Fatal(err)
	}
	op := doc.Definitions[0].Operation
	if doc.Loc != nil || op.Loc != nil || op.Name.Loc != nil || op.VariableDefinitions[0].Type.Location() != nil {
		t.Error("locations recorded with NoLocation set")
	}
}

func TestParseDeterministic(t *testing.T) {
	src := NewSource("query Q($id: ID!) { node(id: $id) { ... on User { name } ...F } }\nfragment F on Node { id }", "")
	doc1, err := ParseSource(src, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := ParseSource(src, ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc1, doc2, cmp.AllowUnexported(Document{})); diff != "" {
		t.Errorf("-first +second:\n%s", diff)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  *InputValue
	}{
		{"123", scalarValue(IntScalar, "123")},
		{"$foo", &InputValue{Variable: &Variable{Name: newName("foo")}}},
		{`[1, "two"]`, &InputValue{List: &ListValue{Values: []*InputValue{
			scalarValue(IntScalar, "1"),
			{Scalar: stringValue(`"two"`, "two")},
		}}}},
		{"{a: null}", &InputValue{Object: &ObjectValue{Fields: []*ObjectField{
			{Name: newName("a"), Value: &InputValue{Null: newName("null")}},
		}}}},
	}
	for _, test := range tests {
		got, err := ParseValue(test.input, ParseOptions{NoLocation: true})
		if err != nil {
			t.Errorf("ParseValue(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, astOptions); diff != "" {
			t.Errorf("ParseValue(%q) (-want +got):\n%s", test.input, diff)
		}
	}

	if _, err := ParseValue("1 2", ParseOptions{}); err == nil || err.Error() != `Syntax Error: Expected <EOF>, found Int "2".` {
		t.Errorf("ParseValue(\"1 2\") error = %v; want Expected <EOF>", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input             string
		want              string
		nullable          bool
		list              bool
		elementNullable   bool
		wantNamedTypeName string
	}{
		{"String", "String", true, false, false, "String"},
		{"String!", "String!", false, false, false, "String"},
		{"[String]", "[String]", true, true, true, "String"},
		{"[String!]", "[String!]", true, true, false, "String"},
		{"[ String ! ] !", "[String!]!", false, true, false, "String"},
		{"[[Int]!]", "[[Int]!]", true, true, false, "Int"},
	}
	for _, test := range tests {
		ref, err := ParseType(test.input, ParseOptions{})
		if err != nil {
			t.Errorf("ParseType(%q): %v", test.input, err)
			continue
		}
		if got := ref.String(); got != test.want {
			t.Errorf("ParseType(%q).String() = %q; want %q", test.input, got, test.want)
		}
		if got := ref.IsNullable(); got != test.nullable {
			t.Errorf("ParseType(%q).IsNullable() = %t; want %t", test.input, got, test.nullable)
		}
		if got := ref.IsList(); got != test.list {
			t.Errorf("ParseType(%q).IsList() = %t; want %t", test.input, got, test.list)
		}
		if got := ref.IsElementNullable(); got != test.elementNullable {
			t.Errorf("ParseType(%q).IsElementNullable() = %t; want %t", test.input, got, test.elementNullable)
		}
		if got := ref.NamedType().Value; got != test.wantNamedTypeName {
			t.Errorf("ParseType(%q).NamedType() = %q; want %q", test.input, got, test.wantNamedTypeName)
		}
	}
}

func TestErrorPretty(t *testing.T) {
	_, err := Parse("{")
	ge, ok := err.(*Error)
	if !ok {
		t.Fatalf("Parse(\"{\") error = %#v; want *Error", err)
	}
	const want = "Syntax Error: Expected Name, found <EOF>.\n\n" +
		"GraphQL request:1:2\n" +
		"1 | {\n" +
		"  |  ^"
	if got := ge.Pretty(); got != want {
		t.Errorf("Pretty() =\n%s\nwant:\n%s", got, want)
	}
	if got := ge.Kind.Code(); got != "GRAPHQL_PARSE_FAILED" {
		t.Errorf("Kind.Code() = %q; want GRAPHQL_PARSE_FAILED", got)
	}
}

func BenchmarkParse(b *testing.B) {
	benches := []struct {
		name  string
		input string
	}{
		{
			name: "Operation",
			input: `
query ProjectList {
	inbox {
		id
		items(includeCompleted: true) {
			id
			name
			labels { name }
		}
	}

	projects {
		id
		name
	}
}
`,
		},
		{
			name: "Schema",
			input: `
"""
The DateTime scalar type represents a DateTime. The DateTime is serialized as an RFC 3339 quoted string
"""
scalar DateTime

"""A single task in a project"""
type Item {
  completed: Boolean!
  completedAt: DateTime
  createdAt: DateTime!
  id: ID!
  text: String!
}

"""Fields for creating an Item"""
input ItemInput {
  projectId: ID!
  text: String!
}

type Mutation {
  """Create a new item"""
  createItem(input: ItemInput!): Item

  """Create a new project"""
  createProject(name: String!): Project

  """Delete a project"""
  deleteProject(id: ID!): ID
}

"""A group of tasks"""
type Project {
  createdAt: DateTime!
  id: ID!
  items(
    """Whether to include completed items in the list"""
    includeCompleted: Boolean = false
  ): [Item]
  name: String!
}

type Query {
  """The inbox project"""
  inbox(date: String): Project

  """List of all active projects"""
  projects: [Project]
}
`,
		},
	}
	for _, bench := range benches {
		b.Run(bench.name, func(b *testing.B) {
			b.SetBytes(int64(len(bench.input)))
			for i := 0; i < b.N; i++ {
				if _, err := Parse(bench.input); err != nil {
					if p, ok := ErrorPosition(err); ok {
						b.Fatalf("%v: %v", p, err)
					}
					b.Fatal(err)
				}
			}
		})
	}
}
