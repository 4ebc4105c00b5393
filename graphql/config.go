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
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/phuslu/log"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/graphql-request/gqlang"
)

// EnvPrefix is the prefix of environment variables that override Config
// fields, like GQL_CACHE_MAXIMUM_SIZE.
const EnvPrefix = "GQL"

// Config is the configuration for parsing requests. It is read from a YAML
// document and then overridden by environment variables.
type Config struct {
	NoLocation                         bool   `yaml:"noLocation" envconfig:"NO_LOCATION"`
	AllowLegacySDLEmptyFields          bool   `yaml:"allowLegacySDLEmptyFields" envconfig:"ALLOW_LEGACY_SDL_EMPTY_FIELDS"`
	AllowLegacySDLImplementsInterfaces bool   `yaml:"allowLegacySDLImplementsInterfaces" envconfig:"ALLOW_LEGACY_SDL_IMPLEMENTS_INTERFACES"`
	CacheMaximumSize                   int    `yaml:"cacheMaximumSize" envconfig:"CACHE_MAXIMUM_SIZE"`
	MaxDepth                           int    `yaml:"maxDepth" envconfig:"MAX_DEPTH"`
	MaxSize                            int    `yaml:"maxSize" envconfig:"MAX_SIZE"`
	LogLevel                           string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns the configuration used for any field that is not set.
func DefaultConfig() Config {
	return Config{
		CacheMaximumSize: 1000,
		LogLevel:         "info",
	}
}

// LoadConfig reads a YAML configuration from r on top of DefaultConfig and
// then applies environment overrides. Unknown YAML fields are an error.
// r may be nil to use only defaults and the environment.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if r != nil {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		if err := d.Decode(&c); err != nil && err != io.EOF {
			return Config{}, xerrors.Errorf("load config: %w", err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, xerrors.Errorf("load config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, xerrors.Errorf("load config: %w", err)
	}
	return c, nil
}

// ReadConfigFile loads the configuration from the YAML file at path.
// An empty path loads only defaults and the environment.
func ReadConfigFile(path string) (Config, error) {
	if path == "" {
		return LoadConfig(nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, xerrors.Errorf("load config: %w", err)
	}
	defer f.Close()
	c, err := LoadConfig(f)
	if err != nil {
		return Config{}, xerrors.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.CacheMaximumSize < 1 {
		return xerrors.Errorf("cacheMaximumSize must be positive (got %d)", c.CacheMaximumSize)
	}
	if c.MaxDepth < 0 {
		return xerrors.Errorf("maxDepth must not be negative (got %d)", c.MaxDepth)
	}
	if c.MaxSize < 0 {
		return xerrors.Errorf("maxSize must not be negative (got %d)", c.MaxSize)
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return xerrors.Errorf("unknown logLevel %q", c.LogLevel)
	}
	return nil
}

// ParseOptions returns the parser options the configuration describes.
func (c Config) ParseOptions() gqlang.ParseOptions {
	return gqlang.ParseOptions{
		NoLocation:                         c.NoLocation,
		AllowLegacySDLEmptyFields:          c.AllowLegacySDLEmptyFields,
		AllowLegacySDLImplementsInterfaces: c.AllowLegacySDLImplementsInterfaces,
		MaxDepth:                           c.MaxDepth,
		MaxSize:                            c.MaxSize,
	}
}

var logLevels = map[string]log.Level{
	"trace": log.TraceLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
	"panic": log.PanicLevel,
}

// Logger returns a logger at the configured level that writes to w.
func (c Config) Logger(w io.Writer) *log.Logger {
	level, ok := logLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		level = log.InfoLevel
	}
	return &log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer:     &log.IOWriter{Writer: w},
	}
}

// NewDocumentCache returns a cache sized and configured by c.
func (c Config) NewDocumentCache(options ...CacheOption) (*DocumentCache, error) {
	return NewDocumentCache(c.CacheMaximumSize, c.ParseOptions(), options...)
}
