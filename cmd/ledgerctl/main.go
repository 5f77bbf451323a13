// Command ledgerctl inspects and edits net worth snapshot files while the
// server is stopped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/username/networth/src/config"
	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app is shared by every subcommand of one invocation.
type app struct {
	snapshot string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	top := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	top.SetOutput(stderr)
	top.StringVar(&a.snapshot, "snapshot", defaultSnapshotPath(), "Path to the snapshot file (.db selects SQLite, anything else JSON)")
	logLevel := top.String("log-level", "warn", "Log level written to stderr (debug, info, warn, error)")

	commander := subcommands.NewCommander(top, "ledgerctl")
	commander.Output = stdout
	commander.Error = stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&listCmd{app: a}, "registry")
	commander.Register(&showCmd{app: a}, "registry")
	commander.Register(&addUserCmd{app: a}, "registry")
	commander.Register(&setPortfolioCmd{app: a}, "registry")
	commander.Register(&hashKeyCmd{app: a}, "admin")

	if err := top.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return int(subcommands.ExitSuccess)
		}
		return int(subcommands.ExitUsageError)
	}
	logger.InitLoggerTo(*logLevel, stderr)

	return int(commander.Execute(context.Background()))
}

// defaultSnapshotPath is the file the server writes, honouring STORAGE_PATH
// and SNAPSHOT_FORMAT from the environment or .env.
func defaultSnapshotPath() string {
	return config.StorageFromEnv().SnapshotFile()
}

// loadStore opens the snapshot. When allowMissing is set a missing file
// yields an empty store.
func (a *app) loadStore(allowMissing bool) (*store.Store, error) {
	s := store.New(store.WithCodec(store.CodecFor(a.snapshot)))
	if err := s.LoadSnapshot(a.snapshot); err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	return s, nil
}

func (a *app) fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

// printMarkdown renders md for a terminal, falling back to the raw text.
func (a *app) printMarkdown(md string) {
	out, err := glamour.Render(md, "notty")
	if err != nil {
		logger.L.Warn("Could not render markdown", "error", err)
		out = md
	}
	fmt.Fprint(a.stdout, out)
}
