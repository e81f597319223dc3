package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/spms/core/record"
)

// delete removes one record by natural key, prompting first unless yes is set.
func (cli *commandLine) delete(kind record.Kind, key []string, yes bool) error {
	fields := kind.KeyFields()
	if len(key) != len(fields) {
		return errors.Errorf("%s are keyed by %s: got %d key value(s), want %d",
			kind.Plural(), strings.Join(fields, ", "), len(key), len(fields))
	}
	res, _, err := cli.resource(kind)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := cli.confirm(fmt.Sprintf("Delete this %s (%s)?", kind.Noun(), strings.Join(key, " / ")))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "Cancelled")
			return nil
		}
	}

	if err := res.Delete(context.Background(), key...); err != nil {
		return errors.Wrapf(err, "deleting %s", kind.Noun())
	}
	fmt.Fprintf(cli.out, "Deleted %s\n", kind.Noun())
	return nil
}
