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

// Package features derives numeric feature columns from Arrow tables.
package features

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"go.uber.org/zap"
)

// TitleLength adds a column holding the character count of a text column.
// A TitleLength is immutable and safe for concurrent use.
type TitleLength struct {
	cfg config
}

// NewTitleLength creates a TitleLength. Without options it reads "title"
// and writes "title_length", counting code points.
func NewTitleLength(opts ...Option) *TitleLength {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TitleLength{cfg: cfg}
}

// AddTitleLength accepts an arrow.Table or arrow.Record and returns a new
// table with the length column added. Any other input, including nil, fails
// with ErrNotTable. The caller must Release the returned table.
func AddTitleLength(data any, opts ...Option) (arrow.Table, error) {
	tl := NewTitleLength(opts...)

	switch v := data.(type) {
	case arrow.Table:
		return tl.Apply(v)
	case arrow.Record:
		tbl := array.NewTableFromRecords(v.Schema(), []arrow.Record{v})
		defer tbl.Release()
		return tl.Apply(tbl)
	default:
		return nil, fmt.Errorf("%w, got %T", ErrNotTable, data)
	}
}

// Apply returns a copy of tbl with the length column added, or replaced in
// place when a column of that name already exists. tbl is left untouched;
// unchanged columns are shared with it. Null titles yield null lengths.
func (t *TitleLength) Apply(tbl arrow.Table) (arrow.Table, error) {
	if tbl == nil {
		return nil, ErrNotTable
	}

	schema := tbl.Schema()
	titleIdx := schema.FieldIndices(t.cfg.titleColumn)
	if len(titleIdx) == 0 {
		return nil, &ColumnNotFoundError{Column: t.cfg.titleColumn}
	}

	title := tbl.Column(titleIdx[0])
	if !isText(title.DataType()) {
		return nil, fmt.Errorf("%w: Column '%s' has type %s",
			ErrColumnNotText, t.cfg.titleColumn, title.DataType())
	}

	lengths := t.measure(title.Data())
	defer lengths.Release()

	field := arrow.Field{Name: t.cfg.lengthColumn, Type: arrow.PrimitiveTypes.Int64, Nullable: true}
	lengthCol := arrow.NewColumn(field, lengths)
	defer lengthCol.Release()

	fields := schema.Fields()
	columns := make([]arrow.Column, 0, len(fields)+1)
	for i := 0; i < int(tbl.NumCols()); i++ {
		columns = append(columns, *tbl.Column(i))
	}

	if idx := schema.FieldIndices(t.cfg.lengthColumn); len(idx) > 0 {
		fields[idx[0]] = field
		columns[idx[0]] = *lengthCol
	} else {
		fields = append(fields, field)
		columns = append(columns, *lengthCol)
	}

	md := schema.Metadata()
	out := array.NewTable(arrow.NewSchema(fields, &md), columns, tbl.NumRows())

	t.cfg.logger.Debug("added title length column",
		zap.String("title_column", t.cfg.titleColumn),
		zap.String("length_column", t.cfg.lengthColumn),
		zap.Stringer("mode", t.cfg.mode),
		zap.Int64("rows", out.NumRows()),
		zap.Int("null_titles", lengths.NullN()))

	return out, nil
}

type textArray interface {
	arrow.Array
	Value(i int) string
}

// isText reports whether dt holds strings, directly or dictionary-encoded.
func isText(dt arrow.DataType) bool {
	if dict, ok := dt.(*arrow.DictionaryType); ok {
		dt = dict.ValueType
	}
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return true
	default:
		return false
	}
}

// measure builds one length chunk per title chunk.
func (t *TitleLength) measure(titles *arrow.Chunked) *arrow.Chunked {
	count := t.cfg.mode.counter()

	builder := array.NewInt64Builder(t.cfg.mem)
	defer builder.Release()

	chunks := make([]arrow.Array, 0, len(titles.Chunks()))
	for _, chunk := range titles.Chunks() {
		builder.Reserve(chunk.Len())
		if dict, ok := chunk.(*array.Dictionary); ok {
			appendDictLengths(builder, dict, count)
		} else {
			appendLengths(builder, chunk.(textArray), count)
		}
		chunks = append(chunks, builder.NewArray())
	}

	lengths := arrow.NewChunked(arrow.PrimitiveTypes.Int64, chunks)
	for _, c := range chunks {
		c.Release()
	}
	return lengths
}

func appendLengths(b *array.Int64Builder, texts textArray, count func(string) int) {
	for i := 0; i < texts.Len(); i++ {
		if texts.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(int64(count(texts.Value(i))))
	}
}

// appendDictLengths measures each dictionary entry once and maps the
// lengths through the indices. A null index or a null entry yields null.
func appendDictLengths(b *array.Int64Builder, dict *array.Dictionary, count func(string) int) {
	values := dict.Dictionary().(textArray)
	lengths := make([]int64, values.Len())
	for i := range lengths {
		if values.IsValid(i) {
			lengths[i] = int64(count(values.Value(i)))
		}
	}

	for i := 0; i < dict.Len(); i++ {
		if dict.IsNull(i) {
			b.AppendNull()
			continue
		}
		idx := dict.GetValueIndex(i)
		if values.IsNull(idx) {
			b.AppendNull()
			continue
		}
		b.Append(lengths[idx])
	}
}
