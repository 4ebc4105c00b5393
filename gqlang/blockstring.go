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

import "strings"

// DedentBlockStringValue produces the value of a block string from its raw
// text between the triple quotes. Common indentation is removed from every
// line but the first and leading and trailing blank lines are dropped.
// https://spec.graphql.org/June2018/#BlockStringValue()
func DedentBlockStringValue(raw string) string {
	lines := splitAllLines(raw)

	if commonIndent := BlockStringIndentation(lines); commonIndent != 0 {
		for i := 1; i < len(lines); i++ {
			if commonIndent < len(lines[i]) {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// BlockStringIndentation returns the smallest indentation of the non-blank
// lines after the first.
func BlockStringIndentation(lines []string) int {
	commonIndent := -1
	for i := 1; i < len(lines); i++ {
		indent := countLeadingWhitespace(lines[i])
		if indent == len(lines[i]) {
			continue
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
			if commonIndent == 0 {
				break
			}
		}
	}
	if commonIndent == -1 {
		return 0
	}
	return commonIndent
}

// PrintBlockString formats value as a block string literal. Each line after
// the first, including the closing delimiter's, is prefixed with indentation. Multi-line values (or values ending
// in a quote) are printed with the delimiters on their own lines.
func PrintBlockString(value string, indentation string, preferMultipleLines bool) string {
	isSingleLine := !strings.Contains(value, "\n")
	hasLeadingSpace := len(value) > 0 && (value[0] == ' ' || value[0] == '\t')
	hasTrailingQuote := len(value) > 0 && value[len(value)-1] == '"'
	printAsMultipleLines := !isSingleLine || hasTrailingQuote || preferMultipleLines

	sb := new(strings.Builder)
	// A leading blank line would strip leading whitespace from a single line.
	if printAsMultipleLines && !(isSingleLine && hasLeadingSpace) {
		sb.WriteString("\n")
		sb.WriteString(indentation)
	}
	sb.WriteString(strings.ReplaceAll(value, "\n", "\n"+indentation))
	if printAsMultipleLines {
		sb.WriteString("\n")
		sb.WriteString(indentation)
	}
	return `"""` + strings.ReplaceAll(sb.String(), `"""`, `\"""`) + `"""`
}

func isBlank(s string) bool {
	return countLeadingWhitespace(s) == len(s)
}

func splitLines(s string) []string {
	lineStart := 0
	var lines []string
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			lines = append(lines, s[lineStart:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				// CRLF, advance.
				i++
			}
			lineStart = i + 1
		case '\n':
			lines = append(lines, s[lineStart:i])
			lineStart = i + 1
		}
	}
	if lineStart < len(s) {
		lines = append(lines, s[lineStart:])
	}
	return lines
}

func countLeadingWhitespace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
