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

/*
Package graphql prepares GraphQL requests for execution. It decodes request
bodies, parses documents through a bounded cache, selects the operation to run,
and binds the request's JSON variables to the operation's variable definitions.
Parsing itself is done by the gqlang package in this module. This package
follows the specification laid out at https://spec.graphql.org/June2018/

Caching

A DocumentCache memoizes parse results by the literal document text. Failed
parses are cached too: a cache hit on a malformed document returns the same
error value the first parse produced.

Variables

Variables.Get resolves a variable reference for a position of a known type.
It checks that the variable's declared type can be used in that position and
converts the JSON payload entry into a gqlang.InputValue:

	JSON string         -> String
	JSON integer        -> Int
	other JSON number   -> Float
	JSON true or false  -> Boolean
	JSON null           -> null
	JSON array          -> list
	JSON object         -> input object

The built-in scalars Int, Float, String, Boolean, and ID are checked for the
right JSON shape. Values for other types are converted structurally.

Telemetry

DocumentCache records OpenCensus measures and trace spans. Register
DefaultViews to collect them.
*/
package graphql
