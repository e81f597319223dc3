package main

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/table"
)

type listOptions struct {
	search   string
	sortKey  string
	desc     bool
	page     int // 1-based
	pageSize int
}

// list prints one page of a resource, filtered and sorted like the web tables.
func (cli *commandLine) list(kind record.Kind, opts listOptions) error {
	res, fields, err := cli.resource(kind)
	if err != nil {
		return err
	}

	st := table.State{Search: opts.search, Page: opts.page - 1, SortKey: opts.sortKey}
	if opts.desc {
		st.SortDir = table.Descending
	}
	tbl, err := table.New(columnsOf(fields), table.WithPageSize(opts.pageSize), table.WithState(st))
	if err != nil {
		return err
	}
	if opts.sortKey != "" {
		if _, ok := tbl.Column(opts.sortKey); !ok {
			return errors.Errorf("unknown sort key %q", opts.sortKey)
		}
	}

	rows, err := res.rows(context.Background())
	if err != nil {
		return errors.Wrapf(err, "listing %s", kind.Plural())
	}
	page := tbl.View(rows)

	w := tablewriter.NewWriter(cli.out)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	header := make([]string, 0, len(fields))
	for _, col := range tbl.Columns() {
		header = append(header, col.Label)
	}
	w.SetHeader(header)
	for _, rw := range page.Rows {
		cells := make([]string, 0, len(header))
		for _, col := range tbl.Columns() {
			cells = append(cells, table.String(tbl.Display(col, rw)))
		}
		w.Append(cells)
	}
	w.Render()

	fmt.Fprintf(cli.out, "%d results  page %d / %d\n", page.Filtered, page.Number+1, page.TotalPages)
	return nil
}
