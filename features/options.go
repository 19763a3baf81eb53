// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package features

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
)

const (
	// DefaultTitleColumn is the column read when none is given.
	DefaultTitleColumn = "title"
	// DefaultLengthColumn is the column written when none is given.
	DefaultLengthColumn = "title_length"
)

type config struct {
	titleColumn  string
	lengthColumn string
	mode         LengthMode
	mem          memory.Allocator
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		titleColumn:  DefaultTitleColumn,
		lengthColumn: DefaultLengthColumn,
		mode:         CountRunes,
		mem:          memory.DefaultAllocator,
		logger:       zap.NewNop(),
	}
}

// Option configures a TitleLength.
type Option func(*config)

// WithTitleColumn sets the text column to measure.
func WithTitleColumn(name string) Option {
	return func(c *config) { c.titleColumn = name }
}

// WithLengthColumn sets the name of the derived column. An existing column
// with that name is overwritten in place.
func WithLengthColumn(name string) Option {
	return func(c *config) { c.lengthColumn = name }
}

// WithLengthMode sets how characters are counted.
func WithLengthMode(mode LengthMode) Option {
	return func(c *config) { c.mode = mode }
}

// WithAllocator sets the allocator for the derived column's buffers.
func WithAllocator(mem memory.Allocator) Option {
	return func(c *config) {
		if mem != nil {
			c.mem = mem
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
