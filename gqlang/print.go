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
)

// Print formats a document as GraphQL source. Parsing the result yields a
// document equal to doc, ignoring locations.
func Print(doc *Document) string {
	p := &printer{sb: new(strings.Builder)}
	for i, defn := range doc.Definitions {
		if i > 0 {
			p.sb.WriteString("\n\n")
		}
		p.definition(defn)
	}
	return p.sb.String()
}

type printer struct {
	sb     *strings.Builder
	indent string
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(p.indent)
}

// block writes n items between braces, one per line.
func (p *printer) block(n int, item func(i int)) {
	p.sb.WriteByte('{')
	p.indent += "  "
	for i := 0; i < n; i++ {
		p.newline()
		item(i)
	}
	p.indent = p.indent[:len(p.indent)-2]
	p.newline()
	p.sb.WriteByte('}')
}

func (p *printer) definition(defn *Definition) {
	switch {
	case defn.Operation != nil:
		p.operation(defn.Operation)
	case defn.Fragment != nil:
		p.fragmentDefinition(defn.Fragment)
	case defn.Schema != nil:
		p.schemaDefinition(defn.Schema)
	case defn.Type != nil:
		p.typeDefinition(defn.Type)
	case defn.Directive != nil:
		p.directiveDefinition(defn.Directive)
	default:
		panic("unknown definition")
	}
}

func (p *printer) operation(op *Operation) {
	anonymous := op.Type == Query && op.Name == nil &&
		len(op.VariableDefinitions) == 0 && len(op.Directives) == 0
	if !anonymous {
		p.sb.WriteString(op.Type.String())
		if op.Name != nil {
			p.sb.WriteByte(' ')
			p.sb.WriteString(op.Name.Value)
		}
		if len(op.VariableDefinitions) > 0 {
			p.sb.WriteByte('(')
			for i, defn := range op.VariableDefinitions {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				p.variableDefinition(defn)
			}
			p.sb.WriteByte(')')
		}
		p.directives(op.Directives)
		p.sb.WriteByte(' ')
	}
	p.selectionSet(op.SelectionSet)
}

func (p *printer) variableDefinition(defn *VariableDefinition) {
	p.sb.WriteString(defn.Variable.String())
	p.sb.WriteString(": ")
	p.sb.WriteString(defn.Type.String())
	if defn.DefaultValue != nil {
		p.sb.WriteString(" = ")
		p.value(defn.DefaultValue)
	}
	p.directives(defn.Directives)
}

func (p *printer) fragmentDefinition(frag *FragmentDefinition) {
	fmt.Fprintf(p.sb, "fragment %s on %s", frag.Name.Value, frag.TypeCondition.Value)
	p.directives(frag.Directives)
	p.sb.WriteByte(' ')
	p.selectionSet(frag.SelectionSet)
}

func (p *printer) selectionSet(set *SelectionSet) {
	p.block(len(set.Selections), func(i int) {
		p.selection(set.Selections[i])
	})
}

func (p *printer) selection(sel *Selection) {
	switch {
	case sel.Field != nil:
		f := sel.Field
		if f.Alias != nil {
			p.sb.WriteString(f.Alias.Value)
			p.sb.WriteString(": ")
		}
		p.sb.WriteString(f.Name.Value)
		p.arguments(f.Arguments)
		p.directives(f.Directives)
		if f.SelectionSet != nil {
			p.sb.WriteByte(' ')
			p.selectionSet(f.SelectionSet)
		}
	case sel.FragmentSpread != nil:
		p.sb.WriteString("...")
		p.sb.WriteString(sel.FragmentSpread.Name.Value)
		p.directives(sel.FragmentSpread.Directives)
	case sel.InlineFragment != nil:
		frag := sel.InlineFragment
		p.sb.WriteString("...")
		if frag.TypeCondition != nil {
			p.sb.WriteString(" on ")
			p.sb.WriteString(frag.TypeCondition.Value)
		}
		p.directives(frag.Directives)
		p.sb.WriteByte(' ')
		p.selectionSet(frag.SelectionSet)
	default:
		panic("unknown selection")
	}
}

func (p *printer) arguments(args []*Argument) {
	if len(args) == 0 {
		return
	}
	p.sb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(arg.Name.Value)
		p.sb.WriteString(": ")
		p.value(arg.Value)
	}
	p.sb.WriteByte(')')
}

func (p *printer) directives(dirs []*Directive) {
	for _, d := range dirs {
		p.sb.WriteString(" @")
		p.sb.WriteString(d.Name.Value)
		p.arguments(d.Arguments)
	}
}

func (p *printer) value(ival *InputValue) {
	switch {
	case ival.Variable != nil:
		p.sb.WriteString(ival.Variable.String())
	case ival.Null != nil:
		p.sb.WriteString("null")
	case ival.Scalar != nil:
		p.scalar(ival.Scalar)
	case ival.List != nil:
		p.sb.WriteByte('[')
		for i, elem := range ival.List.Values {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.value(elem)
		}
		p.sb.WriteByte(']')
	case ival.Object != nil:
		p.sb.WriteByte('{')
		for i, field := range ival.Object.Fields {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(field.Name.Value)
			p.sb.WriteString(": ")
			p.value(field.Value)
		}
		p.sb.WriteByte('}')
	default:
		panic("unknown input value")
	}
}

func (p *printer) scalar(sval *ScalarValue) {
	switch {
	case sval.Type != StringScalar:
		p.sb.WriteString(sval.Value)
	case sval.Block:
		p.sb.WriteString(PrintBlockString(sval.Value, p.indent, false))
	default:
		p.sb.WriteString(quoteString(sval.Value))
	}
}

// printValue writes a value with no enclosing indentation.
func printValue(sb *strings.Builder, ival *InputValue) {
	(&printer{sb: sb}).value(ival)
}

func (p *printer) description(desc *ScalarValue) {
	if desc == nil {
		return
	}
	if desc.Block {
		p.sb.WriteString(PrintBlockString(desc.Value, p.indent, len(desc.Value) > 70))
	} else {
		p.sb.WriteString(quoteString(desc.Value))
	}
	p.newline()
}

func (p *printer) schemaDefinition(defn *SchemaDefinition) {
	p.description(defn.Description)
	p.sb.WriteString("schema")
	p.directives(defn.Directives)
	p.sb.WriteByte(' ')
	p.block(len(defn.OperationTypes), func(i int) {
		opType := defn.OperationTypes[i]
		fmt.Fprintf(p.sb, "%v: %s", opType.Operation, opType.Type.Value)
	})
}

func (p *printer) typeDefinition(defn *TypeDefinition) {
	p.description(defn.Description())
	switch {
	case defn.Scalar != nil:
		p.sb.WriteString("scalar ")
		p.sb.WriteString(defn.Scalar.Name.Value)
		p.directives(defn.Scalar.Directives)
	case defn.Object != nil:
		p.sb.WriteString("type ")
		p.sb.WriteString(defn.Object.Name.Value)
		if len(defn.Object.Interfaces) > 0 {
			p.sb.WriteString(" implements ")
			p.names(defn.Object.Interfaces, " & ")
		}
		p.directives(defn.Object.Directives)
		p.fieldDefinitions(defn.Object.Fields)
	case defn.Interface != nil:
		p.sb.WriteString("interface ")
		p.sb.WriteString(defn.Interface.Name.Value)
		p.directives(defn.Interface.Directives)
		p.fieldDefinitions(defn.Interface.Fields)
	case defn.Union != nil:
		p.sb.WriteString("union ")
		p.sb.WriteString(defn.Union.Name.Value)
		p.directives(defn.Union.Directives)
		if len(defn.Union.Types) > 0 {
			p.sb.WriteString(" = ")
			p.names(defn.Union.Types, " | ")
		}
	case defn.Enum != nil:
		p.sb.WriteString("enum ")
		p.sb.WriteString(defn.Enum.Name.Value)
		p.directives(defn.Enum.Directives)
		if len(defn.Enum.Values) > 0 {
			p.sb.WriteByte(' ')
			p.block(len(defn.Enum.Values), func(i int) {
				val := defn.Enum.Values[i]
				p.description(val.Description)
				p.sb.WriteString(val.Name.Value)
				p.directives(val.Directives)
			})
		}
	case defn.InputObject != nil:
		p.sb.WriteString("input ")
		p.sb.WriteString(defn.InputObject.Name.Value)
		p.directives(defn.InputObject.Directives)
		if len(defn.InputObject.Fields) > 0 {
			p.sb.WriteByte(' ')
			p.block(len(defn.InputObject.Fields), func(i int) {
				p.inputValueDefinition(defn.InputObject.Fields[i])
			})
		}
	default:
		panic("unknown type definition")
	}
}

func (p *printer) names(names []*Name, sep string) {
	for i, name := range names {
		if i > 0 {
			p.sb.WriteString(sep)
		}
		p.sb.WriteString(name.Value)
	}
}

func (p *printer) fieldDefinitions(fields []*FieldDefinition) {
	if len(fields) == 0 {
		return
	}
	p.sb.WriteByte(' ')
	p.block(len(fields), func(i int) {
		f := fields[i]
		p.description(f.Description)
		p.sb.WriteString(f.Name.Value)
		p.argumentDefinitions(f.Arguments)
		p.sb.WriteString(": ")
		p.sb.WriteString(f.Type.String())
		p.directives(f.Directives)
	})
}

// argumentDefinitions writes the arguments on one line unless one of them
// has a description.
func (p *printer) argumentDefinitions(args []*InputValueDefinition) {
	if len(args) == 0 {
		return
	}
	multiline := false
	for _, arg := range args {
		if arg.Description != nil {
			multiline = true
			break
		}
	}
	if !multiline {
		p.sb.WriteByte('(')
		for i, arg := range args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.inputValueDefinition(arg)
		}
		p.sb.WriteByte(')')
		return
	}
	p.sb.WriteByte('(')
	p.indent += "  "
	for _, arg := range args {
		p.newline()
		p.inputValueDefinition(arg)
	}
	p.indent = p.indent[:len(p.indent)-2]
	p.newline()
	p.sb.WriteByte(')')
}

func (p *printer) inputValueDefinition(defn *InputValueDefinition) {
	p.description(defn.Description)
	p.sb.WriteString(defn.Name.Value)
	p.sb.WriteString(": ")
	p.sb.WriteString(defn.Type.String())
	if defn.DefaultValue != nil {
		p.sb.WriteString(" = ")
		p.value(defn.DefaultValue)
	}
	p.directives(defn.Directives)
}

func (p *printer) directiveDefinition(defn *DirectiveDefinition) {
	p.description(defn.Description)
	p.sb.WriteString("directive @")
	p.sb.WriteString(defn.Name.Value)
	p.argumentDefinitions(defn.Arguments)
	if defn.Repeatable {
		p.sb.WriteString(" repeatable")
	}
	p.sb.WriteString(" on ")
	p.names(defn.Locations, " | ")
}

// quoteString formats s as a GraphQL string literal.
func quoteString(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(sb, `\u%04X`, c)
			} else {
				sb.WriteRune(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
