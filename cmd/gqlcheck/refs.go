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

package main

import "zombiezen.com/go/graphql-request/gqlang"

// variableReferences returns the first reference to each variable used by op,
// including references inside the fragments it spreads, in document order.
func variableReferences(doc *gqlang.Document, op *gqlang.Operation) []*gqlang.Variable {
	w := &refWalker{
		doc:       doc,
		seen:      make(map[string]bool),
		fragments: make(map[string]bool),
	}
	w.directives(op.Directives)
	w.selectionSet(op.SelectionSet)
	return w.refs
}

type refWalker struct {
	doc       *gqlang.Document
	refs      []*gqlang.Variable
	seen      map[string]bool
	fragments map[string]bool
}

func (w *refWalker) selectionSet(set *gqlang.SelectionSet) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch {
		case sel.Field != nil:
			w.arguments(sel.Field.Arguments)
			w.directives(sel.Field.Directives)
			w.selectionSet(sel.Field.SelectionSet)
		case sel.InlineFragment != nil:
			w.directives(sel.InlineFragment.Directives)
			w.selectionSet(sel.InlineFragment.SelectionSet)
		case sel.FragmentSpread != nil:
			w.directives(sel.FragmentSpread.Directives)
			name := sel.FragmentSpread.Name.Value
			if w.fragments[name] {
				continue
			}
			w.fragments[name] = true
			if frag := w.doc.Fragment(name); frag != nil {
				w.directives(frag.Directives)
				w.selectionSet(frag.SelectionSet)
			}
		}
	}
}

func (w *refWalker) directives(dirs []*gqlang.Directive) {
	for _, d := range dirs {
		w.arguments(d.Arguments)
	}
}

func (w *refWalker) arguments(args []*gqlang.Argument) {
	for _, arg := range args {
		w.value(arg.Value)
	}
}

func (w *refWalker) value(v *gqlang.InputValue) {
	switch {
	case v.Variable != nil:
		if !w.seen[v.Variable.Name.Value] {
			w.seen[v.Variable.Name.Value] = true
			w.refs = append(w.refs, v.Variable)
		}
	case v.List != nil:
		for _, elem := range v.List.Values {
			w.value(elem)
		}
	case v.Object != nil:
		for _, field := range v.Object.Fields {
			w.value(field.Value)
		}
	}
}
