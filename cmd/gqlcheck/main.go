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

// gqlcheck lexes, parses, and prints GraphQL documents and checks request
// variables against an operation's variable definitions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/phuslu/log"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
	"zombiezen.com/go/graphql-request/graphql"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "gqlcheck:", err)
		os.Exit(1)
	}
}

type checker struct {
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
	cache  *graphql.DocumentCache

	configPath *string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &checker{stdout: stdout, stderr: stderr}
	app := kingpin.New("gqlcheck", "Check GraphQL documents and request variables.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)
	c.configPath = app.Flag("config", "YAML configuration file").Short('c').Envar("GQL_CONFIG").String()
	app.PreAction(func(*kingpin.ParseContext) error {
		return c.init()
	})

	lexCmd := app.Command("lex", "Print the tokens of a document")
	lexFile := lexCmd.Arg("file", "GraphQL document").Required().String()
	lexCmd.Action(func(*kingpin.ParseContext) error {
		return c.lex(*lexFile)
	})

	parseCmd := app.Command("parse", "Parse documents and report syntax errors")
	parseFiles := parseCmd.Arg("files", "GraphQL documents").Required().Strings()
	parseCmd.Action(func(*kingpin.ParseContext) error {
		return c.parse(ctx, *parseFiles)
	})

	printCmd := app.Command("print", "Parse a document and print it in canonical form")
	printFile := printCmd.Arg("file", "GraphQL document").Required().String()
	printCmd.Action(func(*kingpin.ParseContext) error {
		return c.print(ctx, *printFile)
	})

	varsCmd := app.Command("vars", "Check variables for an operation in a document")
	varsFile := varsCmd.Arg("file", "GraphQL document").Required().String()
	varsJSON := varsCmd.Flag("variables", "JSON file holding the variables").Short('v').String()
	varsOperation := varsCmd.Flag("operation", "Name of the operation to check").Short('o').String()
	varsCmd.Action(func(*kingpin.ParseContext) error {
		return c.vars(ctx, *varsFile, *varsJSON, *varsOperation)
	})

	_, err := app.Parse(args)
	return err
}

func (c *checker) init() error {
	cfg, err := graphql.ReadConfigFile(*c.configPath)
	if err != nil {
		return err
	}
	c.log = cfg.Logger(c.stderr)
	c.cache, err = cfg.NewDocumentCache(graphql.WithLogger(c.log))
	if err != nil {
		return err
	}
	return nil
}

func (c *checker) lex(path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	lexer := gqlang.NewLexer(src)
	for {
		tok, err := lexer.Advance()
		if err != nil {
			return reportError(c.stdout, err)
		}
		if tok.Kind == gqlang.KindEOF {
			return nil
		}
		fmt.Fprintf(c.stdout, "%d:%d\t%v\n", tok.Line, tok.Column, tok)
	}
}

func (c *checker) parse(ctx context.Context, paths []string) error {
	failed := 0
	for _, path := range paths {
		src, err := readSource(path)
		if err != nil {
			return err
		}
		start := time.Now()
		doc, err := c.cache.Parse(ctx, src.Body)
		if err != nil {
			failed++
			fmt.Fprintf(c.stdout, "%s: %s\n", path, prettyError(err, src))
			continue
		}
		c.log.Info().
			Str("file", path).
			Str("size", humanize.Bytes(uint64(len(src.Body)))).
			Dur("elapsed", time.Since(start)).
			Msg("parsed")
		fmt.Fprintf(c.stdout, "%s: ok (%s definitions, %s)\n",
			path, humanize.Comma(int64(len(doc.Definitions))), humanize.Bytes(uint64(len(src.Body))))
	}
	if failed > 0 {
		return xerrors.Errorf("%d of %d documents failed to parse", failed, len(paths))
	}
	return nil
}

func (c *checker) print(ctx context.Context, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	doc, err := c.cache.Parse(ctx, src.Body)
	if err != nil {
		return reportError(c.stdout, err)
	}
	_, err = io.WriteString(c.stdout, gqlang.Print(doc)+"\n")
	return err
}

func (c *checker) vars(ctx context.Context, path, varsPath, operationName string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	req := &graphql.Request{Query: src.Body, OperationName: operationName}
	if varsPath != "" {
		data, err := os.ReadFile(varsPath)
		if err != nil {
			return err
		}
		req.Variables, err = graphql.ParseVariablesJSON(data)
		if err != nil {
			return xerrors.Errorf("%s: %w", varsPath, err)
		}
	}
	doc, op, err := req.Parse(ctx, c.cache)
	if err != nil {
		return reportError(c.stdout, err)
	}

	vars := req.VariablesFor(op)
	var errs []error
	referenced := make(map[string]bool)
	for _, ref := range variableReferences(doc, op) {
		referenced[ref.Name.Value] = true
		expected := graphql.TypeReference{Name: "?", IsNullable: true}
		if defn := vars.Definition(ref.Name.Value); defn != nil {
			expected = graphql.TypeReferenceOf(defn.Type)
		}
		if _, err := vars.Get(expected, ref, nil); err != nil {
			errs = append(errs, err)
		}
	}
	values := make([]*gqlang.InputValue, len(op.VariableDefinitions))
	for i, defn := range op.VariableDefinitions {
		value, err := vars.Get(graphql.TypeReferenceOf(defn.Type), defn.Variable, nil)
		if err != nil {
			if !referenced[defn.Variable.Name.Value] {
				errs = append(errs, err)
			}
			continue
		}
		values[i] = value
	}
	if len(errs) > 0 {
		return writeErrorResponse(c.stdout, errs...)
	}
	for i, defn := range op.VariableDefinitions {
		if values[i] == nil {
			fmt.Fprintf(c.stdout, "%v: %v (absent)\n", defn.Variable, defn.Type)
			continue
		}
		fmt.Fprintf(c.stdout, "%v: %v = %v\n", defn.Variable, defn.Type, values[i])
	}
	return nil
}

func readSource(path string) (*gqlang.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gqlang.NewSource(string(data), path), nil
}

// prettyError renders a GraphQL error with a source excerpt. The cache
// attributes errors to the default source name, so the excerpt is rendered
// against src.
func prettyError(err error, src *gqlang.Source) string {
	var ge *gqlang.Error
	if !xerrors.As(err, &ge) || ge.Source == nil {
		return err.Error()
	}
	named := *ge
	if named.Source.Body == src.Body {
		named.Source = src
	}
	return named.Pretty()
}

func reportError(w io.Writer, err error) error {
	var ge *gqlang.Error
	if !xerrors.As(err, &ge) {
		return err
	}
	return writeErrorResponse(w, err)
}

// writeErrorResponse writes errs in the GraphQL response format and returns
// an error summarizing them.
func writeErrorResponse(w io.Writer, errs ...error) error {
	data, err := json.MarshalIndent(graphql.ErrorResponse(errs...), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(errs) == 1 {
		return xerrors.New("1 error")
	}
	return xerrors.Errorf("%d errors", len(errs))
}
