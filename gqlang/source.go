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
	"strconv"
	"strings"
)

// DefaultSourceName is the name given to a Source that was created without
// one.
const DefaultSourceName = "GraphQL request"

// A Source is a GraphQL document's text along with a name used when
// reporting errors. Sources are compared by identity and must not be modified
// after creation.
type Source struct {
	Body string
	Name string
}

// NewSource returns a new source. If name is empty, DefaultSourceName is used.
func NewSource(body, name string) *Source {
	if name == "" {
		name = DefaultSourceName
	}
	return &Source{Body: body, Name: name}
}

// A Pos is a 0-based byte offset in a GraphQL document.
type Pos int

// ToPosition converts a byte position into a line and column number.
// "\r\n", "\n", and "\r" each end a line.
func (pos Pos) ToPosition(input string) Position {
	line, lineStart := 1, 0
	for i := 0; i < int(pos) && i < len(input); i++ {
		switch input[i] {
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				// Counted when the '\n' is reached.
				continue
			}
			fallthrough
		case '\n':
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Column: int(pos) - lineStart + 1}
}

// A Position is a line/column pair. Both are 1-based.
// The column is byte-based.
type Position struct {
	Line   int
	Column int
}

// String returns p in the form "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Print renders an excerpt of the source around p with a caret pointing at
// the column. The first line of the result is "name:line:col".
func (src *Source) Print(p Position) string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "%s:%d:%d\n", src.Name, p.Line, p.Column)

	lines := splitAllLines(src.Body)
	lineIndex := p.Line - 1
	if lineIndex < 0 || lineIndex >= len(lines) {
		return strings.TrimSuffix(sb.String(), "\n")
	}
	locationLine := lines[lineIndex]

	if len(locationLine) > 120 {
		// Minified documents: wrap the offending line every 80 bytes.
		subLineIndex := p.Column / 80
		subLineColumn := p.Column % 80
		var subLines []string
		for i := 0; i < len(locationLine); i += 80 {
			end := i + 80
			if end > len(locationLine) {
				end = len(locationLine)
			}
			subLines = append(subLines, locationLine[i:end])
		}
		excerpt := []prefixedLine{{prefix: strconv.Itoa(p.Line), line: subLines[0]}}
		for i := 1; i <= subLineIndex && i < len(subLines); i++ {
			excerpt = append(excerpt, prefixedLine{line: subLines[i]})
		}
		excerpt = append(excerpt, prefixedLine{prefix: " ", line: spaces(subLineColumn-1) + "^"})
		if subLineIndex+1 < len(subLines) {
			excerpt = append(excerpt, prefixedLine{line: subLines[subLineIndex+1]})
		}
		printPrefixedLines(sb, excerpt)
		return sb.String()
	}

	excerpt := make([]prefixedLine, 0, 4)
	if lineIndex > 0 {
		excerpt = append(excerpt, prefixedLine{prefix: strconv.Itoa(p.Line - 1), line: lines[lineIndex-1]})
	}
	excerpt = append(excerpt,
		prefixedLine{prefix: strconv.Itoa(p.Line), line: locationLine},
		prefixedLine{line: spaces(p.Column-1) + "^"},
	)
	if lineIndex+1 < len(lines) {
		excerpt = append(excerpt, prefixedLine{prefix: strconv.Itoa(p.Line + 1), line: lines[lineIndex+1]})
	}
	printPrefixedLines(sb, excerpt)
	return sb.String()
}

type prefixedLine struct {
	prefix string
	line   string
}

func printPrefixedLines(sb *strings.Builder, lines []prefixedLine) {
	padLen := 0
	for _, l := range lines {
		if len(l.prefix) > padLen {
			padLen = len(l.prefix)
		}
	}
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(spaces(padLen - len(l.prefix)))
		sb.WriteString(l.prefix)
		if strings.TrimSpace(l.line) == "" {
			sb.WriteString(" |")
		} else {
			sb.WriteString(" | ")
			sb.WriteString(l.line)
		}
	}
}

// splitAllLines splits s on "\r\n", "\n", or "\r". Unlike splitLines, a
// trailing line terminator produces a final empty line.
func splitAllLines(s string) []string {
	lines := splitLines(s)
	if len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') || len(s) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
