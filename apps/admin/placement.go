package main

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

func (cli *commandLine) placement(regID int) error {
	st, err := cli.store.Placement(context.Background(), regID)
	if err != nil {
		return err
	}

	if st.Ready() {
		fmt.Fprintln(cli.out, "Placement Ready! 🎉")
	} else {
		fmt.Fprintln(cli.out, "Not Ready Yet")
	}
	fmt.Fprintf(cli.out, "Student ID: %s\n", st.RegistrationID(fmt.Sprint(regID)))

	w := tablewriter.NewWriter(cli.out)
	w.SetAutoWrapText(false)
	for _, f := range st.Fields {
		w.Append([]string{f.Label(), f.Display()})
	}
	w.Render()
	return nil
}
