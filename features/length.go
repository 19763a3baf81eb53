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
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// LengthMode selects how characters are counted.
type LengthMode int

const (
	// CountRunes counts Unicode code points.
	CountRunes LengthMode = iota
	// CountBytes counts UTF-8 bytes as stored.
	CountBytes
	// CountGraphemes counts user-perceived characters (grapheme clusters).
	CountGraphemes
)

// String returns the string representation of a LengthMode.
func (m LengthMode) String() string {
	switch m {
	case CountRunes:
		return "runes"
	case CountBytes:
		return "bytes"
	case CountGraphemes:
		return "graphemes"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ParseLengthMode parses the names returned by LengthMode.String.
func ParseLengthMode(s string) (LengthMode, error) {
	switch s {
	case "runes", "":
		return CountRunes, nil
	case "bytes":
		return CountBytes, nil
	case "graphemes":
		return CountGraphemes, nil
	default:
		return 0, fmt.Errorf("unknown length mode %q", s)
	}
}

func (m LengthMode) counter() func(string) int {
	switch m {
	case CountBytes:
		return func(s string) int { return len(s) }
	case CountGraphemes:
		return uniseg.GraphemeClusterCount
	default:
		return utf8.RuneCountInString
	}
}
