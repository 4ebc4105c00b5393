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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
)

// Response holds the output of a GraphQL request. Data is the JSON encoding
// of the result and is omitted when empty.
type Response struct {
	Data   json.RawMessage  `json:"data"`
	Errors []*ResponseError `json:"errors,omitempty"`
}

// ErrorResponse returns a response carrying the given errors and no data.
func ErrorResponse(errs ...error) Response {
	resp := Response{}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, ToResponseError(err))
	}
	return resp
}

// MarshalJSON converts the response to JSON format.
func (resp Response) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	if len(resp.Errors) > 0 {
		buf = append(buf, `"errors":`...)
		errorsData, err := json.Marshal(resp.Errors)
		if err != nil {
			return buf, xerrors.Errorf("marshal response: %w", err)
		}
		buf = append(buf, errorsData...)
		if len(resp.Data) > 0 {
			buf = append(buf, ',')
		}
	}
	if len(resp.Data) > 0 {
		buf = append(buf, `"data":`...)
		buf = append(buf, resp.Data...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// ResponseError describes an error that occurred during the processing of a
// GraphQL request, in the shape clients expect.
type ResponseError struct {
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       []PathSegment          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Error returns e.Message.
func (e *ResponseError) Error() string {
	return e.Message
}

// Code returns the "code" extension or the empty string.
func (e *ResponseError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// ToResponseError converts an error into a response error. Locations and the
// error code are taken from the first *gqlang.Error in the chain.
func ToResponseError(e error) *ResponseError {
	var re *ResponseError
	if xerrors.As(e, &re) {
		return re
	}
	re = &ResponseError{
		Message: e.Error(),
	}
	var ge *gqlang.Error
	if xerrors.As(e, &ge) {
		for _, pos := range ge.Locations() {
			re.Locations = append(re.Locations, astPositionToLocation(pos))
		}
		re.Extensions = map[string]interface{}{"code": ge.Kind.Code()}
	}
	return re
}

// Location identifies a position in a GraphQL document. Line and column
// are 1-based.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func astPositionToLocation(pos gqlang.Position) Location {
	return Location{
		Line:   pos.Line,
		Column: pos.Column,
	}
}

// String returns the location in the form "line:col".
func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}

// PathSegment identifies a field or array index in an output object.
type PathSegment struct {
	Field     string
	ListIndex int
}

// SelectionPath returns the response path of a field selection: the response
// keys of the fields enclosing it, outermost first. Fragments do not
// contribute to the path.
func SelectionPath(doc *gqlang.Document, sel *gqlang.Selection) []PathSegment {
	var path []PathSegment
	for _, s := range doc.Path(sel) {
		if s.Field != nil {
			path = append(path, PathSegment{Field: s.Field.ResponseKey()})
		}
	}
	return path
}

// String returns the segment's index or field name as a string.
func (seg PathSegment) String() string {
	if seg.Field == "" {
		return strconv.Itoa(seg.ListIndex)
	}
	return seg.Field
}

// MarshalJSON converts the segment to a JSON integer or a JSON string.
func (seg PathSegment) MarshalJSON() ([]byte, error) {
	if seg.Field == "" {
		return strconv.AppendInt(nil, int64(seg.ListIndex), 10), nil
	}
	return json.Marshal(seg.Field)
}

// UnmarshalJSON converts JSON strings into field segments and JSON numbers into
// list index segments.
func (seg *PathSegment) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(data, []byte(`"`)) {
		i, err := json.Number(string(data)).Int64()
		if err != nil {
			return err
		}
		seg.ListIndex = int(i)
		return nil
	}
	err := json.Unmarshal(data, &seg.Field)
	return err
}
