package features

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

type testColumn struct {
	field  arrow.Field
	chunks []arrow.Array
}

func stringColumn(mem memory.Allocator, name string, values []string, valid []bool) testColumn {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return testColumn{
		field:  arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true},
		chunks: []arrow.Array{b.NewArray()},
	}
}

func int64Column(mem memory.Allocator, name string, values []int64) testColumn {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return testColumn{
		field:  arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		chunks: []arrow.Array{b.NewArray()},
	}
}

func float64Column(mem memory.Allocator, name string, values []float64) testColumn {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return testColumn{
		field:  arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		chunks: []arrow.Array{b.NewArray()},
	}
}

// newTable assembles a table and drops the builders' references, so the
// table is the only owner of its buffers.
func newTable(t *testing.T, cols ...testColumn) arrow.Table {
	t.Helper()

	fields := make([]arrow.Field, len(cols))
	columns := make([]arrow.Column, len(cols))
	for i, c := range cols {
		chunked := arrow.NewChunked(c.field.Type, c.chunks)
		column := arrow.NewColumn(c.field, chunked)
		chunked.Release()
		for _, arr := range c.chunks {
			arr.Release()
		}
		fields[i] = c.field
		columns[i] = *column
		defer column.Release()
	}

	return array.NewTable(arrow.NewSchema(fields, nil), columns, -1)
}

// columnValues flattens a column into Go values, with nil for nulls.
func columnValues(t *testing.T, tbl arrow.Table, name string) []interface{} {
	t.Helper()

	idx := tbl.Schema().FieldIndices(name)
	require.NotEmpty(t, idx, "column %q missing", name)

	values := make([]interface{}, 0, tbl.NumRows())
	for _, chunk := range tbl.Column(idx[0]).Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				values = append(values, nil)
				continue
			}
			switch a := chunk.(type) {
			case *array.Int64:
				values = append(values, a.Value(i))
			case *array.Float64:
				values = append(values, a.Value(i))
			case *array.String:
				values = append(values, a.Value(i))
			case *array.LargeString:
				values = append(values, a.Value(i))
			default:
				t.Fatalf("unexpected array type %T", chunk)
			}
		}
	}
	return values
}

func columnNames(tbl arrow.Table) []string {
	names := make([]string, 0, tbl.NumCols())
	for _, f := range tbl.Schema().Fields() {
		names = append(names, f.Name)
	}
	return names
}
