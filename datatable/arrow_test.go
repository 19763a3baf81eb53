package datatable

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTable returns a two-column table whose columns are split over two
// chunks: title ["Up", null | "Jaws"] and length [2, null | 4].
func buildTable(t *testing.T, mem memory.Allocator) arrow.Table {
	t.Helper()

	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.AppendValues([]string{"Up", ""}, []bool{true, false})
	s1 := sb.NewArray()
	sb.Append("Jaws")
	s2 := sb.NewArray()

	ib := array.NewInt64Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int64{2, 0}, []bool{true, false})
	i1 := ib.NewArray()
	ib.Append(4)
	i2 := ib.NewArray()

	titles := arrow.NewChunked(arrow.BinaryTypes.String, []arrow.Array{s1, s2})
	lengths := arrow.NewChunked(arrow.PrimitiveTypes.Int64, []arrow.Array{i1, i2})
	for _, a := range []arrow.Array{s1, s2, i1, i2} {
		a.Release()
	}
	defer titles.Release()
	defer lengths.Release()

	fields := []arrow.Field{
		{Name: "title", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "title_length", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}
	tc := arrow.NewColumn(fields[0], titles)
	defer tc.Release()
	lc := arrow.NewColumn(fields[1], lengths)
	defer lc.Release()

	md := arrow.NewMetadata([]string{"origin"}, []string{"test"})
	return array.NewTable(arrow.NewSchema(fields, &md), []arrow.Column{*tc, *lc}, -1)
}

func TestArrowSource(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl := buildTable(t, mem)
	src, err := NewFromArrowTable(tbl)
	require.NoError(t, err)
	tbl.Release()
	defer src.Release()

	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 2, src.ColumnCount())

	name, err := src.ColumnName(1)
	require.NoError(t, err)
	assert.Equal(t, "title_length", name)

	typ, err := src.ColumnType(0)
	require.NoError(t, err)
	assert.Equal(t, TypeString, typ)

	idx, err := src.ColumnIndex("title_length")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	v, err := src.Cell(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Jaws", v.Raw)
	assert.False(t, v.IsNull)

	v, err = src.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.Raw)
	assert.Equal(t, "4", v.Formatted)

	row, err := src.Row(1)
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.True(t, row[0].IsNull)
	assert.True(t, row[1].IsNull)
	assert.Equal(t, TypeInt, row[1].Type)

	assert.Equal(t, "test", src.Metadata()["origin"])
}

func TestArrowSource_Errors(t *testing.T) {
	_, err := NewFromArrowTable(nil)
	assert.ErrorIs(t, err, ErrNoDataSource)

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl := buildTable(t, mem)
	defer tbl.Release()
	src, err := NewFromArrowTable(tbl)
	require.NoError(t, err)
	defer src.Release()

	_, err = src.Cell(3, 0)
	assert.ErrorIs(t, err, ErrInvalidRow)
	_, err = src.Cell(0, 2)
	assert.ErrorIs(t, err, ErrInvalidColumn)
	_, err = src.Row(-1)
	assert.ErrorIs(t, err, ErrInvalidRow)
	_, err = src.ColumnName(5)
	assert.ErrorIs(t, err, ErrInvalidColumn)
	_, err = src.ColumnType(-1)
	assert.ErrorIs(t, err, ErrInvalidColumn)
	_, err = src.ColumnIndex("year")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}
