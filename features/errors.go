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
	"errors"
	"fmt"
)

var (
	// ErrNotTable is returned when the input is not an Arrow table or record.
	ErrNotTable = errors.New("input must be an arrow table")

	// ErrColumnNotFound is returned when the title column is absent.
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnNotText is returned when the title column does not hold text.
	ErrColumnNotText = errors.New("column is not a text column")
)

// ErrorKind classifies failures of AddTitleLength.
type ErrorKind int

const (
	// KindNone is reported for nil and foreign errors.
	KindNone ErrorKind = iota
	// TypeKind means the input was not a tabular dataset.
	TypeKind
	// ValueKind means the dataset does not fit the requested columns.
	ValueKind
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case TypeKind:
		return "type"
	case ValueKind:
		return "value"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Kind reports the kind of err.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotTable):
		return TypeKind
	case errors.Is(err, ErrColumnNotFound), errors.Is(err, ErrColumnNotText):
		return ValueKind
	default:
		return KindNone
	}
}

// ColumnNotFoundError names a column missing from a table.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("Column '%s' not found in table", e.Column)
}

// Unwrap lets errors.Is match ErrColumnNotFound.
func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}
