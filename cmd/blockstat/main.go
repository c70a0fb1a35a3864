// Command blockstat summarizes a serialized block tree: counts by block
// kind, list and table shape, and inline run totals. It is an offline
// coverage and regression aid for the importer, not part of the runtime
// pipeline.
//
//	blockstat ir.json
//	some-tool | blockstat -
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/swilloughby/typeset/model"
)

type stats struct {
	Paragraphs    int
	Headings      int
	Lists         int
	OrderedLists  int
	ListItems     int
	Tables        int
	TableRows     int
	TableCells    int
	Images        int
	Runs          int
	StyledRuns    int
	TextRuneCount int
}

func (st *stats) addBlocks(blocks []model.Block) {
	for _, b := range blocks {
		st.addBlock(b)
	}
}

func (st *stats) addBlock(b model.Block) {
	switch v := b.(type) {
	case *model.Paragraph:
		st.Paragraphs++
		st.addRuns(v.Runs)
	case *model.Heading:
		st.Headings++
		st.addRuns(v.Runs)
	case *model.List:
		st.Lists++
		if v.Ordered {
			st.OrderedLists++
		}
		st.ListItems += len(v.Items)
		for _, item := range v.Items {
			st.addBlocks(item.Blocks)
		}
	case *model.Table:
		st.Tables++
		st.TableRows += len(v.Rows)
		for _, row := range v.Rows {
			st.TableCells += len(row.Cells)
			for _, cell := range row.Cells {
				st.addBlocks(cell.Blocks)
			}
		}
	case *model.Image:
		st.Images++
	}
}

func (st *stats) addRuns(runs []model.Run) {
	st.Runs += len(runs)
	for _, r := range runs {
		if r.Style != nil {
			st.StyledRuns++
		}
		st.TextRuneCount += len([]rune(r.Text))
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		input = "-"
	}

	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	blocks, err := model.UnmarshalBlocks(data)
	if err != nil {
		return fmt.Errorf("decoding block tree: %w", err)
	}

	st := &stats{}
	st.addBlocks(blocks)

	w := cmd.Writer
	fmt.Fprintf(w, "blocks:      %d\n", len(blocks))
	fmt.Fprintf(w, "paragraphs:  %d\n", st.Paragraphs)
	fmt.Fprintf(w, "headings:    %d\n", st.Headings)
	fmt.Fprintf(w, "lists:       %d (%d ordered, %d items)\n", st.Lists, st.OrderedLists, st.ListItems)
	fmt.Fprintf(w, "tables:      %d (%d rows, %d cells)\n", st.Tables, st.TableRows, st.TableCells)
	fmt.Fprintf(w, "images:      %d\n", st.Images)
	fmt.Fprintf(w, "runs:        %d (%d styled, %d runes)\n", st.Runs, st.StyledRuns, st.TextRuneCount)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "blockstat",
		Usage:     "Summarize a serialized block tree by element type",
		ArgsUsage: "[file.json | -]",
		Action:    run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("blockstat failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
