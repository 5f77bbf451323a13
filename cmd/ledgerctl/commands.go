package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/username/networth/src/model"
	"github.com/username/networth/src/security"
	"github.com/username/networth/src/security/validation"
	"golang.org/x/term"
)

type listCmd struct {
	*app
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list registered users and their net worth" }
func (*listCmd) Usage() string {
	return `ledgerctl [-snapshot <file>] list

  Prints one line per user in registration order. Users without a portfolio
  show "-" as their net worth.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.loadStore(false)
	if err != nil {
		return c.fail("Error loading snapshot: %v", err)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tNET WORTH")
	for _, u := range s.Users() {
		worth := "-"
		if amount, ok := u.NetWorth(); ok {
			worth = u.Portfolio.Currency.Format(amount)
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", u.Email, u.FirstName, u.LastName, worth)
	}
	if err := tw.Flush(); err != nil {
		return c.fail("Error writing output: %v", err)
	}
	return subcommands.ExitSuccess
}

type showCmd struct {
	*app
	email string
	raw   bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a user's portfolio report" }
func (*showCmd) Usage() string {
	return `ledgerctl [-snapshot <file>] show -email <email> [-raw]

  Renders a markdown report of the user's assets, liabilities and net worth.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of the user to show.")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprintln(c.stderr, "show: -email is required")
		return subcommands.ExitUsageError
	}
	s, err := c.loadStore(false)
	if err != nil {
		return c.fail("Error loading snapshot: %v", err)
	}
	u, err := s.GetUser(c.email)
	if err != nil {
		return c.fail("Error: %v", err)
	}

	md := userReport(u)
	if c.raw {
		fmt.Fprint(c.stdout, md)
	} else {
		c.printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

type addUserCmd struct {
	*app
	first string
	last  string
	age   int
	email string
}

func (*addUserCmd) Name() string     { return "add-user" }
func (*addUserCmd) Synopsis() string { return "register a new user in the snapshot" }
func (*addUserCmd) Usage() string {
	return `ledgerctl [-snapshot <file>] add-user -first <name> -last <name> -age <n> -email <email>

  Creates the snapshot if it does not exist yet.
`
}

func (c *addUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.first, "first", "", "First name.")
	f.StringVar(&c.last, "last", "", "Last name.")
	f.IntVar(&c.age, "age", -1, "Age in years.")
	f.StringVar(&c.email, "email", "", "Email, unique across the registry.")
}

func (c *addUserCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.first, c.last = validation.CleanName(c.first), validation.CleanName(c.last)
	c.email = strings.TrimSpace(c.email)
	if c.first == "" || c.last == "" || c.email == "" || c.age < 0 {
		fmt.Fprintln(c.stderr, "add-user: -first, -last, -age and -email are required")
		return subcommands.ExitUsageError
	}
	if !strings.Contains(c.email, "@") {
		return c.fail("Error: invalid email %q", c.email)
	}

	s, err := c.loadStore(true)
	if err != nil {
		return c.fail("Error loading snapshot: %v", err)
	}
	u, err := s.AddUser(c.first, c.last, c.age, c.email)
	if err != nil {
		return c.fail("Error: %v", err)
	}
	if err := s.SaveSnapshot(c.snapshot); err != nil {
		return c.fail("Error saving snapshot: %v", err)
	}
	fmt.Fprintf(c.stdout, "Added %s %s <%s> with id %s\n", u.FirstName, u.LastName, u.Email, u.ID)
	return subcommands.ExitSuccess
}

type setPortfolioCmd struct {
	*app
	email string
	file  string
}

func (*setPortfolioCmd) Name() string     { return "set-portfolio" }
func (*setPortfolioCmd) Synopsis() string { return "replace a user's portfolio from a JSON file" }
func (*setPortfolioCmd) Usage() string {
	return `ledgerctl [-snapshot <file>] set-portfolio -email <email> -file <portfolio.json>

  The file holds one portfolio object with camelCase fields, for example
  {"currency":"GBP","cash":{"checking":100},"longTermLiabilities":{"carLoans":50}}.
  A missing timestamp is set to now.
`
}

func (c *setPortfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of the user to update.")
	f.StringVar(&c.file, "file", "", "Path of the portfolio JSON file.")
}

func (c *setPortfolioCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.file == "" {
		fmt.Fprintln(c.stderr, "set-portfolio: -email and -file are required")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		return c.fail("Error reading portfolio file: %v", err)
	}
	var p model.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return c.fail("Error parsing portfolio file %q: %v", c.file, err)
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	s, err := c.loadStore(false)
	if err != nil {
		return c.fail("Error loading snapshot: %v", err)
	}
	if err := s.UpdatePortfolio(c.email, p); err != nil {
		return c.fail("Error: %v", err)
	}
	if err := s.SaveSnapshot(c.snapshot); err != nil {
		return c.fail("Error saving snapshot: %v", err)
	}
	fmt.Fprintf(c.stdout, "Updated portfolio of %s, net worth %s\n", c.email, p.Currency.Format(p.NetWorth()))
	return subcommands.ExitSuccess
}

type hashKeyCmd struct {
	*app
	key string
}

func (*hashKeyCmd) Name() string     { return "hash-key" }
func (*hashKeyCmd) Synopsis() string { return "print the ADMIN_KEY_HASH line for an admin key" }
func (*hashKeyCmd) Usage() string {
	return `ledgerctl hash-key [-key <admin key>]

  Without -key the key is read from stdin, without echo on a terminal.
  The output is a single-quoted .env line, so the "$" separators of the
  bcrypt hash are not expanded as variables when it is loaded.
`
}

func (c *hashKeyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "Admin key to hash (prompted for when omitted).")
}

func (c *hashKeyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := c.key
	if key == "" {
		fmt.Fprint(c.stderr, "Admin key: ")
		var err error
		key, err = readSecret(c.stdin)
		fmt.Fprintln(c.stderr)
		if err != nil {
			return c.fail("Error reading key: %v", err)
		}
	}
	if strings.TrimSpace(key) == "" {
		return c.fail("Error: admin key cannot be empty")
	}
	hash, err := security.HashKey(key)
	if err != nil {
		return c.fail("Error hashing key: %v", err)
	}
	fmt.Fprintf(c.stdout, "ADMIN_KEY_HASH='%s'\n", hash)
	return subcommands.ExitSuccess
}

// readSecret reads one line from stdin, without echo when stdin is a terminal.
func readSecret(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
