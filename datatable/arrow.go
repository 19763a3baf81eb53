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

package datatable

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ArrowSource is a DataSource backed by an Arrow table.
// It holds a reference to the table until Release is called.
type ArrowSource struct {
	table   arrow.Table
	names   []string
	types   []DataType
	offsets [][]int64 // per column, the starting row of each chunk
	meta    Metadata
}

var _ DataSource = (*ArrowSource)(nil)

// NewFromArrowTable wraps an Arrow table. The table is retained.
func NewFromArrowTable(table arrow.Table) (*ArrowSource, error) {
	if table == nil {
		return nil, ErrNoDataSource
	}

	schema := table.Schema()
	numCols := int(table.NumCols())
	src := &ArrowSource{
		table:   table,
		names:   make([]string, numCols),
		types:   make([]DataType, numCols),
		offsets: make([][]int64, numCols),
		meta:    Metadata{},
	}

	for i := 0; i < numCols; i++ {
		field := schema.Field(i)
		src.names[i] = field.Name
		src.types[i] = dataTypeOf(field.Type)

		chunks := table.Column(i).Data().Chunks()
		starts := make([]int64, len(chunks))
		var row int64
		for j, chunk := range chunks {
			starts[j] = row
			row += int64(chunk.Len())
		}
		src.offsets[i] = starts
	}

	md := schema.Metadata()
	for i, key := range md.Keys() {
		src.meta[key] = md.Values()[i]
	}

	table.Retain()
	return src, nil
}

// Release drops the reference to the underlying table.
func (s *ArrowSource) Release() {
	if s.table != nil {
		s.table.Release()
		s.table = nil
	}
}

// RowCount implements DataSource.
func (s *ArrowSource) RowCount() int {
	return int(s.table.NumRows())
}

// ColumnCount implements DataSource.
func (s *ArrowSource) ColumnCount() int {
	return len(s.names)
}

// ColumnName implements DataSource.
func (s *ArrowSource) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.names) {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return s.names[col], nil
}

// ColumnType implements DataSource.
func (s *ArrowSource) ColumnType(col int) (DataType, error) {
	if col < 0 || col >= len(s.types) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	return s.types[col], nil
}

// ColumnIndex returns the index of the first column with the given name.
func (s *ArrowSource) ColumnIndex(name string) (int, error) {
	for i, n := range s.names {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// Cell implements DataSource.
func (s *ArrowSource) Cell(row, col int) (Value, error) {
	if col < 0 || col >= len(s.names) {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	if row < 0 || row >= s.RowCount() {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}

	starts := s.offsets[col]
	// last chunk whose start is <= row
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > int64(row) }) - 1
	chunk := s.table.Column(col).Data().Chunk(idx)
	pos := row - int(starts[idx])

	dt := s.types[col]
	if chunk.IsNull(pos) {
		return NewNullValue(dt), nil
	}
	return NewValue(typedValue(chunk, pos), dt), nil
}

// Row implements DataSource.
func (s *ArrowSource) Row(row int) ([]Value, error) {
	if row < 0 || row >= s.RowCount() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}

	values := make([]Value, len(s.names))
	for col := range s.names {
		v, err := s.Cell(row, col)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}

// Metadata implements DataSource.
func (s *ArrowSource) Metadata() Metadata {
	return s.meta
}

func dataTypeOf(dt arrow.DataType) DataType {
	switch dt.ID() {
	case arrow.DICTIONARY:
		return dataTypeOf(dt.(*arrow.DictionaryType).ValueType)
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return TypeString
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return TypeFloat
	case arrow.BOOL:
		return TypeBool
	case arrow.DATE32, arrow.DATE64:
		return TypeDate
	case arrow.TIMESTAMP:
		return TypeTimestamp
	case arrow.BINARY, arrow.LARGE_BINARY:
		return TypeBinary
	default:
		return TypeOther
	}
}

// typedValue returns the Go value at pos. The slot must not be null.
func typedValue(col arrow.Array, pos int) interface{} {
	switch a := col.(type) {
	case *array.String:
		return a.Value(pos)
	case *array.LargeString:
		return a.Value(pos)
	case *array.StringView:
		return a.Value(pos)
	case *array.Binary:
		return a.Value(pos)
	case *array.Boolean:
		return a.Value(pos)
	case *array.Int8:
		return a.Value(pos)
	case *array.Int16:
		return a.Value(pos)
	case *array.Int32:
		return a.Value(pos)
	case *array.Int64:
		return a.Value(pos)
	case *array.Uint8:
		return a.Value(pos)
	case *array.Uint16:
		return a.Value(pos)
	case *array.Uint32:
		return a.Value(pos)
	case *array.Uint64:
		return a.Value(pos)
	case *array.Float16:
		return a.Value(pos).Float32()
	case *array.Float32:
		return a.Value(pos)
	case *array.Float64:
		return a.Value(pos)
	case *array.Date32:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Date64:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Dictionary:
		idx := a.GetValueIndex(pos)
		if a.Dictionary().IsNull(idx) {
			return nil
		}
		return typedValue(a.Dictionary(), idx)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(pos).ToTime(unit).Format("2006-01-02 15:04:05.999999999")
	default:
		return a.ValueStr(pos)
	}
}
