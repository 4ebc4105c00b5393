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
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
)

// VariablesJSON is the raw variables payload of a request. The zero value is
// the empty binding used for requests without a payload.
type VariablesJSON struct {
	json    gjson.Result
	defined bool
}

// EmptyVariablesJSON returns a binding with no payload.
func EmptyVariablesJSON() VariablesJSON {
	return VariablesJSON{}
}

// DefinedVariablesJSON returns a binding over an already parsed payload.
func DefinedVariablesJSON(json gjson.Result) VariablesJSON {
	return VariablesJSON{json: json, defined: true}
}

// ParseVariablesJSON parses a variables payload. Empty input yields the empty
// binding. The payload must be a JSON object or null.
func ParseVariablesJSON(data []byte) (VariablesJSON, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return EmptyVariablesJSON(), nil
	}
	if !gjson.ValidBytes(data) {
		return VariablesJSON{}, xerrors.New("parse variables: invalid JSON")
	}
	json := gjson.ParseBytes(data)
	if json.Type != gjson.Null && !json.IsObject() {
		return VariablesJSON{}, xerrors.Errorf("parse variables: found %s instead of an object", jsonTypeName(json))
	}
	return DefinedVariablesJSON(json), nil
}

// Raw returns the payload. A JSON null payload is reported as no payload.
func (vj VariablesJSON) Raw() (gjson.Result, bool) {
	if !vj.defined || vj.json.Type == gjson.Null || !vj.json.Exists() {
		return gjson.Result{}, false
	}
	return vj.json, true
}

// Get returns the payload's entry for the named variable.
func (vj VariablesJSON) Get(name string) (gjson.Result, bool) {
	json, ok := vj.Raw()
	if !ok || !json.IsObject() {
		return gjson.Result{}, false
	}
	// Variable names never contain gjson path metacharacters.
	value := json.Get(name)
	return value, value.Exists()
}

// Variables binds a request's variables payload to the variable definitions
// of the operation being executed. Values are type-checked as they are
// requested. It is safe to call from multiple goroutines.
type Variables struct {
	json VariablesJSON
	defs []*gqlang.VariableDefinition
}

// NewVariables returns a new binding.
func NewVariables(json VariablesJSON, defs []*gqlang.VariableDefinition) *Variables {
	return &Variables{json: json, defs: defs}
}

// Raw returns the untyped variables payload.
func (vars *Variables) Raw() (gjson.Result, bool) {
	return vars.json.Raw()
}

// Definition returns the definition of the named variable or nil if the
// operation does not declare it.
func (vars *Variables) Definition(name string) *gqlang.VariableDefinition {
	for _, defn := range vars.defs {
		if defn.Variable.Name.Value == name {
			return defn
		}
	}
	return nil
}

// Get resolves a variable reference used in a position that accepts the
// expected type. defaultValue is the default of that position, if any: it
// permits a nullable variable to be used where a non-null value is expected.
//
// The value is taken from the payload if present, then from the variable's
// default. Get returns nil if neither is available. The returned error is a
// *gqlang.Error.
func (vars *Variables) Get(expected TypeReference, ref *gqlang.Variable, defaultValue *gqlang.InputValue) (*gqlang.InputValue, error) {
	name := ref.Name.Value
	defn := vars.Definition(name)
	if defn == nil {
		return nil, gqlang.NewError(gqlang.ValidationError,
			fmt.Sprintf("Variable '$%s' was not declared for this operation", name),
			ref.Loc)
	}
	if err := checkVariableType(expected, defn, defaultValue); err != nil {
		return nil, err
	}

	raw, ok := vars.json.Get(name)
	if !ok {
		return defn.DefaultValue, nil
	}
	if raw.Type == gjson.Null {
		switch {
		case !defn.Type.IsNullable():
			return nil, nullVariableError(ref, defn.Type.String(), defn.Loc)
		case !expected.IsNullable:
			return nil, nullVariableError(ref, expected.String(), ref.Loc)
		}
		return nullValue(), nil
	}
	return coerceJSON(expected, ref, raw)
}

func checkVariableType(expected TypeReference, defn *gqlang.VariableDefinition, defaultValue *gqlang.InputValue) error {
	declared := defn.Type
	hasDefault := defn.DefaultValue != nil || defaultValue != nil
	invalidName := expected.Name != declared.NamedType().Value
	invalidIsList := expected.IsList != declared.IsList()
	invalidNullability := !expected.IsNullable && declared.IsNullable() && !hasDefault
	invalidElementNullability := expected.IsList && !expected.IsElementNullable &&
		declared.IsList() && declared.IsElementNullable()
	if invalidName || invalidIsList || invalidNullability || invalidElementNullability {
		return gqlang.NewError(gqlang.InputValueError,
			fmt.Sprintf("Invalid variable %v argument type %v, expected %v", defn.Variable, declared, expected),
			defn.Loc)
	}
	return nil
}

func nullVariableError(ref *gqlang.Variable, typ string, loc *gqlang.Location) error {
	return gqlang.NewError(gqlang.InputValueError,
		fmt.Sprintf("Variable %v of non-null type %s must not be null.", ref, typ),
		loc)
}

// coerceJSON converts a non-null payload entry into a value of the expected
// type. A non-array value given for a list type is treated as a list of one.
// https://spec.graphql.org/June2018/#sec-Type-System.List
func coerceJSON(expected TypeReference, ref *gqlang.Variable, raw gjson.Result) (*gqlang.InputValue, error) {
	if !expected.IsList {
		return coerceJSONNamed(expected, ref, raw)
	}
	elems := []gjson.Result{raw}
	if raw.IsArray() {
		elems = raw.Array()
	}
	elemType := expected.elem()
	list := &gqlang.ListValue{Values: make([]*gqlang.InputValue, 0, len(elems))}
	for _, elem := range elems {
		if elem.Type == gjson.Null {
			if !expected.IsElementNullable {
				return nil, gqlang.NewError(gqlang.InputValueError,
					fmt.Sprintf("Invalid argument value %s from variable %v, expected list with non-null arguments", raw.Raw, ref),
					ref.Loc)
			}
			list.Values = append(list.Values, nullValue())
			continue
		}
		v, err := coerceJSONNamed(elemType, ref, elem)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, v)
	}
	return &gqlang.InputValue{List: list}, nil
}

// coerceJSONNamed converts a non-null payload value into a value of a named
// type. Built-in scalars are checked for the right shape. Other types are
// converted structurally and left to the caller to validate.
func coerceJSONNamed(expected TypeReference, ref *gqlang.Variable, raw gjson.Result) (*gqlang.InputValue, error) {
	ok := true
	switch expected.Name {
	case "Int":
		ok = isIntegral(raw) && fitsInt32(raw.Raw)
	case "Float":
		ok = raw.Type == gjson.Number
	case "String":
		ok = raw.Type == gjson.String
	case "Boolean":
		ok = raw.Type == gjson.True || raw.Type == gjson.False
	case "ID":
		ok = raw.Type == gjson.String || isIntegral(raw)
	}
	if !ok {
		return nil, gqlang.NewError(gqlang.InputValueError,
			fmt.Sprintf("Failed to coerce %s as %v", raw.Raw, expected),
			ref.Loc)
	}
	return jsonValue(raw), nil
}

// jsonValue converts a JSON value into the equivalent GraphQL literal.
func jsonValue(raw gjson.Result) *gqlang.InputValue {
	switch {
	case raw.Type == gjson.Null:
		return nullValue()
	case raw.Type == gjson.String:
		// JSON string escapes are a subset of GraphQL's.
		return &gqlang.InputValue{Scalar: &gqlang.ScalarValue{
			Type:  gqlang.StringScalar,
			Raw:   raw.Raw,
			Value: raw.Str,
		}}
	case raw.Type == gjson.Number:
		typ := gqlang.FloatScalar
		if isIntegral(raw) {
			typ = gqlang.IntScalar
		}
		return &gqlang.InputValue{Scalar: &gqlang.ScalarValue{
			Type:  typ,
			Raw:   raw.Raw,
			Value: raw.Raw,
		}}
	case raw.Type == gjson.True || raw.Type == gjson.False:
		s := strconv.FormatBool(raw.Type == gjson.True)
		return &gqlang.InputValue{Scalar: &gqlang.ScalarValue{
			Type:  gqlang.BooleanScalar,
			Raw:   s,
			Value: s,
		}}
	case raw.IsArray():
		list := new(gqlang.ListValue)
		raw.ForEach(func(_, elem gjson.Result) bool {
			list.Values = append(list.Values, jsonValue(elem))
			return true
		})
		return &gqlang.InputValue{List: list}
	case raw.IsObject():
		obj := new(gqlang.ObjectValue)
		raw.ForEach(func(key, value gjson.Result) bool {
			obj.Fields = append(obj.Fields, &gqlang.ObjectField{
				Name:  &gqlang.Name{Value: key.Str},
				Value: jsonValue(value),
			})
			return true
		})
		return &gqlang.InputValue{Object: obj}
	default:
		panic("unknown JSON type")
	}
}

func nullValue() *gqlang.InputValue {
	return &gqlang.InputValue{Null: &gqlang.Name{Value: "null"}}
}

func isIntegral(raw gjson.Result) bool {
	return raw.Type == gjson.Number && !strings.ContainsAny(raw.Raw, ".eE")
}

func fitsInt32(s string) bool {
	_, err := strconv.ParseInt(s, 10, 32)
	return err == nil
}

func jsonTypeName(raw gjson.Result) string {
	switch {
	case raw.IsArray():
		return "array"
	case raw.Type == gjson.String:
		return "string"
	case raw.Type == gjson.Number:
		return "number"
	case raw.Type == gjson.True || raw.Type == gjson.False:
		return "boolean"
	default:
		return raw.Type.String()
	}
}
