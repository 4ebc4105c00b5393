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
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
)

// Request holds the inputs for a GraphQL request.
type Request struct {
	// Query is the GraphQL document text.
	Query string
	// If OperationName is not empty, then the operation with the given name will
	// be selected. Otherwise, the query must only include a single operation.
	OperationName string
	// Variables is the raw variables payload.
	Variables VariablesJSON
}

// ParseRequest decodes a request from the GraphQL-over-HTTP JSON body format:
//
//	{"query": "...", "operationName": "...", "variables": {...}}
//
// operationName and variables may be omitted or null.
func ParseRequest(body []byte) (*Request, error) {
	if !gjson.ValidBytes(body) {
		return nil, xerrors.New("parse request: invalid JSON")
	}
	if root := gjson.ParseBytes(body); !root.IsObject() {
		return nil, xerrors.Errorf("parse request: found %s instead of an object", jsonTypeName(root))
	}
	fields := gjson.GetManyBytes(body, "query", "operationName", "variables")
	query, opName, vars := fields[0], fields[1], fields[2]

	req := new(Request)
	if !query.Exists() {
		return nil, xerrors.New("parse request: missing query")
	}
	if query.Type != gjson.String {
		return nil, xerrors.New("parse request: query must be a string")
	}
	req.Query = query.Str
	switch opName.Type {
	case gjson.String:
		req.OperationName = opName.Str
	case gjson.Null:
	default:
		return nil, xerrors.New("parse request: operationName must be a string")
	}
	if vars.Exists() {
		if vars.Type != gjson.Null && !vars.IsObject() {
			return nil, xerrors.Errorf("parse request: variables: found %s instead of an object", jsonTypeName(vars))
		}
		req.Variables = DefinedVariablesJSON(vars)
	}
	return req, nil
}

// Parse parses the request's query through the cache and selects the
// operation to run.
func (req *Request) Parse(ctx context.Context, cache *DocumentCache) (*gqlang.Document, *gqlang.Operation, error) {
	doc, err := cache.Parse(ctx, req.Query)
	if err != nil {
		return nil, nil, err
	}
	op, err := req.Operation(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, op, nil
}

// Operation returns the operation in doc that the request names. The returned
// error is a *gqlang.Error.
// https://spec.graphql.org/June2018/#GetOperation()
func (req *Request) Operation(doc *gqlang.Document) (*gqlang.Operation, error) {
	ops := doc.Operations()
	if req.OperationName == "" {
		switch len(ops) {
		case 0:
			return nil, gqlang.NewError(gqlang.ValidationError, "Must provide an operation.")
		case 1:
			return ops[0], nil
		default:
			return nil, gqlang.NewError(gqlang.ValidationError,
				"Must provide operation name if query contains multiple operations.")
		}
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == req.OperationName {
			return op, nil
		}
	}
	return nil, gqlang.NewError(gqlang.ValidationError,
		fmt.Sprintf("Unknown operation named %q.", req.OperationName))
}

// VariablesFor binds the request's variables to the operation's definitions.
func (req *Request) VariablesFor(op *gqlang.Operation) *Variables {
	return NewVariables(req.Variables, op.VariableDefinitions)
}
