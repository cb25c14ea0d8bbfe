// Command odrive-log views and analyzes ODrive protocol log files.
//
// Log files are written by odrivetool with the -protocol-log flag.
//
// Usage:
//
//	odrive-log <command> [flags] <file.olog>
//
// Commands:
//
//	view     View log file in human-readable format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	odrive-log view session.olog
//
//	# View only property traffic of axis0
//	odrive-log view -layer property -namespace odrive.axis0 session.olog
//
//	# Show why candidates were rejected
//	odrive-log view -layer discovery -category state session.olog
//
//	# Keep one connection
//	odrive-log filter -conn-id 3f2a9c1e -o one.olog session.olog
//
//	# Show statistics
//	odrive-log stats session.olog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/odrive-go/odrive/cmd/odrive-log/commands"
	"github.com/odrive-go/odrive/pkg/log"
)

const usage = `odrive-log - ODrive Protocol Log Analyzer

Usage:
  odrive-log <command> [flags] <file.olog>

Commands:
  view     View log file in human-readable format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "odrive-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared filter flags.
func newFlagSet(name, synopsis string, opts *commands.FilterOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "odrive-log %s - %s\n\nUsage:\n  odrive-log %s [flags] <file.olog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&opts.Channel, "channel", "", "Filter by channel name")
	fs.StringVar(&opts.Namespace, "namespace", "", "Filter by namespace and everything below it")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, channel, property, schema, discovery)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out, none)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (message, state, diagnostic, error)")
	return fs
}

// parse parses args and returns the log path and filter, exiting on error.
func parse(fs *flag.FlagSet, args []string, opts *commands.FilterOptions) (string, log.Filter) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	filter, err := opts.Filter()
	if err != nil {
		fatal(err)
	}
	return fs.Arg(0), filter
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("view", "View log file in human-readable format", &opts)
	path, filter := parse(fs, args, &opts)

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("filter", "Filter log file and write to new file", &opts)
	output := fs.String("o", "", "Output file (required)")
	path, filter := parse(fs, args, &opts)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("stats", "Show statistics about the log file", &opts)
	path, filter := parse(fs, args, &opts)

	if err := commands.RunStats(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}
