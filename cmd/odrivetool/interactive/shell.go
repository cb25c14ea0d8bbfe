// Package interactive provides the interactive command-line interface
// for odrivetool.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/odrive-go/odrive/pkg/inspect"
	"github.com/odrive-go/odrive/pkg/model"
)

// Shell executes inspection commands against one device tree.
type Shell struct {
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	out       io.Writer
}

// NewShell creates a shell over root writing results to out.
func NewShell(root *model.Object, out io.Writer) *Shell {
	return &Shell{
		inspector: inspect.NewInspector(root),
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Execute runs one command line. It returns false when the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "ls":
		s.cmdList(args)

	case "tree", "t":
		s.cmdTree(ctx, args)

	case "get", "g":
		s.cmdGet(ctx, args)

	case "set", "s":
		s.cmdSet(ctx, args)

	case "ids":
		s.formatter.ShowIDs = !s.formatter.ShowIDs
		fmt.Fprintf(s.out, "Show IDs: %v\n", s.formatter.ShowIDs)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
ODrive Commands:
  ls [path]          - List members of an object
  tree [path]        - Show the tree with current values
  get <path>         - Read a property
  set <path> <val>   - Write a property
  ids                - Toggle display of endpoint IDs
  quit               - Exit

Paths are dotted, e.g. axis0.controller.config.vel_gain`)
}

func (s *Shell) cmdList(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	rows, err := s.inspector.Tree(context.Background(), path, false)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	for _, row := range rows {
		if row.Depth > 0 {
			continue
		}
		if row.IsObject() {
			fmt.Fprintf(s.out, "  %s/\n", row.Name)
			continue
		}
		fmt.Fprintln(s.out, s.formatter.Indent(1, s.formatter.FormatRow(row)))
	}
}

func (s *Shell) cmdTree(ctx context.Context, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	rows, err := s.inspector.Tree(ctx, path, true)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, s.formatter.FormatTree(rows))
}

func (s *Shell) cmdGet(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: get <path>")
		return
	}
	v, err := s.inspector.Read(ctx, args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", args[0], s.formatter.FormatValue(v))
}

func (s *Shell) cmdSet(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value>")
		return
	}
	v, err := s.inspector.Write(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s <- %s\n", args[0], s.formatter.FormatValue(v))
}

// completer offers commands and property paths.
func (s *Shell) completer() *readline.PrefixCompleter {
	paths := func(string) []string {
		var out []string
		s.inspector.Root().Walk(func(n model.Node) {
			out = append(out, strings.TrimPrefix(n.Path(), s.inspector.Root().Path()+"."))
		})
		return out
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("ls", readline.PcItemDynamic(paths)),
		readline.PcItem("tree", readline.PcItemDynamic(paths)),
		readline.PcItem("get", readline.PcItemDynamic(paths)),
		readline.PcItem("set", readline.PcItemDynamic(paths)),
		readline.PcItem("ids"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop on the terminal. It returns when
// the user quits, input ends, or ctx is done.
func Run(ctx context.Context, root *model.Object, prompt string) error {
	s := NewShell(root, nil)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	stop := context.AfterFunc(ctx, func() { _ = rl.Close() })
	defer stop()

	s.printHelp()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		if !s.Execute(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}
