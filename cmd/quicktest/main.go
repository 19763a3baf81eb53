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

// Command quicktest builds a small movie table, adds the title length
// column and prints the result.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"moviefeatures/datatable"
	"moviefeatures/features"
)

var sampleTitles = []string{"Test", "Another Test", "A Much Longer Title"}

type options struct {
	titleColumn  string
	lengthColumn string
	mode         features.LengthMode
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "quicktest",
		Short:         "Smoke test for the title length feature",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v.GetBool("verbose"))
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			mode, err := features.ParseLengthMode(v.GetString("mode"))
			if err != nil {
				logger.Error("invalid flag", zap.Error(err))
				return err
			}

			opts := options{
				titleColumn:  v.GetString("title-column"),
				lengthColumn: v.GetString("length-column"),
				mode:         mode,
			}
			if err := run(out, opts, logger); err != nil {
				logger.Error("smoke test failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("title-column", features.DefaultTitleColumn, "name of the text column in the sample table")
	flags.String("length-column", features.DefaultLengthColumn, "name of the derived length column")
	flags.String("mode", features.CountRunes.String(), "length mode: runes, bytes or graphemes")
	flags.Bool("verbose", false, "enable debug logging")

	v.SetEnvPrefix("QUICKTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
		return nil
	}

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(out io.Writer, opts options, logger *zap.Logger) error {
	mem := memory.NewGoAllocator()

	tbl := sampleTable(mem, opts.titleColumn)
	defer tbl.Release()

	result, err := features.AddTitleLength(tbl,
		features.WithTitleColumn(opts.titleColumn),
		features.WithLengthColumn(opts.lengthColumn),
		features.WithLengthMode(opts.mode),
		features.WithAllocator(mem),
		features.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to add title length: %w", err)
	}
	defer result.Release()

	fmt.Fprintln(out, "Test successful!")
	return render(out, result)
}

func sampleTable(mem memory.Allocator, column string) arrow.Table {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(sampleTitles, nil)
	titles := b.NewArray()
	defer titles.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: column, Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{titles}, int64(titles.Len()))
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

// render prints tbl as a text table, one line per row.
func render(out io.Writer, tbl arrow.Table) error {
	src, err := datatable.NewFromArrowTable(tbl)
	if err != nil {
		return err
	}
	defer src.Release()

	table := tablewriter.NewWriter(out)

	headers := make([]any, src.ColumnCount())
	for i := range headers {
		headers[i], _ = src.ColumnName(i)
	}
	table.Header(headers...)

	for r := 0; r < src.RowCount(); r++ {
		values, err := src.Row(r)
		if err != nil {
			return err
		}
		cells := make([]string, len(values))
		for i, v := range values {
			if v.IsNull {
				cells[i] = "<null>"
				continue
			}
			cells[i] = v.Formatted
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}

	return table.Render()
}
