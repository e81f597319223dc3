package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/storage/recordstore"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp       = errors.New("help provided")
	errNotAllowed = errors.New("refusing to delete without confirmation; pass -yes")
)

type commandLine struct {
	store    *recordstore.Client
	pageSize int
	in       io.Reader
	out      io.Writer
	stdinFd  int
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list -resource RESOURCE [-search Q] [-sort KEY [-desc]] [-page N] [-pagesize N] - print one page of records")
	fmt.Fprintln(cli.out, "  placement -regid ID - print a student's placement readiness report")
	fmt.Fprintln(cli.out, "  delete -resource RESOURCE -key VALUE [-key VALUE] [-yes] - delete one record")
	fmt.Fprintf(cli.out, "\nResources: %s\n", strings.Join(resourceNames(), ", "))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listCmd.SetOutput(cli.out)
	listResource := listCmd.String("resource", "", "The resource to list: "+strings.Join(resourceNames(), ", "))
	listSearch := listCmd.String("search", "", "Case-insensitive substring filter over every column.")
	listSort := listCmd.String("sort", "", "The column key to sort by.")
	listDesc := listCmd.Bool("desc", false, "Sort in descending order.")
	listPage := listCmd.Int("page", 1, "The page to print (1-based).")
	listPageSize := listCmd.Int("pagesize", cli.pageSize, "Rows per page.")

	placementCmd := flag.NewFlagSet("placement", flag.ContinueOnError)
	placementCmd.SetOutput(cli.out)
	placementRegID := placementCmd.Int("regid", 0, "The student's registration ID.")

	deleteCmd := flag.NewFlagSet("delete", flag.ContinueOnError)
	deleteCmd.SetOutput(cli.out)
	deleteResource := deleteCmd.String("resource", "", "The resource holding the record: "+strings.Join(resourceNames(), ", "))
	var deleteKey keyFlag
	deleteCmd.Var(&deleteKey, "key", "A natural key value; repeat for composite keys, in key field order.")
	deleteYes := deleteCmd.Bool("yes", false, "Do not prompt for confirmation.")

	switch args[1] {
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return parseErr(err)
		}
		kind, err := record.ParseKind(*listResource)
		if err != nil {
			listCmd.Usage()
			return errHelp
		}
		return cli.list(kind, listOptions{
			search:   *listSearch,
			sortKey:  *listSort,
			desc:     *listDesc,
			page:     *listPage,
			pageSize: *listPageSize,
		})

	case "placement":
		if err := placementCmd.Parse(args[2:]); err != nil {
			return parseErr(err)
		}
		if *placementRegID <= 0 {
			placementCmd.Usage()
			return errHelp
		}
		return cli.placement(*placementRegID)

	case "delete":
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return parseErr(err)
		}
		kind, err := record.ParseKind(*deleteResource)
		if err != nil || len(deleteKey) == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.delete(kind, deleteKey, *deleteYes)

	default:
		cli.printUsage()
		return errHelp
	}
}

// confirm asks a yes/no question on the terminal. Anything but y/yes is a no.
func (cli *commandLine) confirm(question string) (bool, error) {
	if !isTerminalFunc(cli.stdinFd) {
		return false, errNotAllowed
	}
	fmt.Fprintf(cli.out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func newCommandLine(store *recordstore.Client, pageSize int) *commandLine {
	return &commandLine{
		store:    store,
		pageSize: pageSize,
		in:       os.Stdin,
		out:      os.Stdout,
		stdinFd:  int(os.Stdin.Fd()),
	}
}

// keyFlag collects repeated -key values.
type keyFlag []string

func (k *keyFlag) String() string { return strings.Join(*k, "/") }

func (k *keyFlag) Set(v string) error {
	if v = strings.TrimSpace(v); v == "" {
		return errors.New("empty key value")
	}
	*k = append(*k, v)
	return nil
}

func parseErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return errHelp
	}
	return err
}

func resourceNames() []string {
	names := make([]string, 0, len(record.AllKinds))
	for _, k := range record.AllKinds {
		names = append(names, string(k))
	}
	return names
}
