package repl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

type (
	// REPL is a read-eval-print loop used to create a simple, minimalistic,
	// easy-to-use command line interface for genpass.
	REPL struct {
		prompt          string
		commands        map[string]Command
		prefixCompleter *readline.PrefixCompleter
		input           io.ReadCloser
		output          io.Writer
		rl              *readline.Instance
		stopfunc        func()
		stopOnce        sync.Once
	}

	// Command is a command that can be registered with the REPL. It consists
	// of a name, an action that is run when the name is input to the REPL, and
	// a usage string.
	Command struct {
		Name   string
		Action ActionFunc
		Usage  string
	}

	// ActionFunc defines the signature of an action associated with a command.
	// Actions take one parameter, a slice of strings, representing the arguments
	// passed to the command. Actions should return a string representing the
	// result of the action, or an error if the action fails.
	ActionFunc func([]string) (string, error)
)

// ErrUnknownCommand is returned from eval for input that names no command.
var ErrUnknownCommand = errors.New("command not recognized. Type `help` for a list of commands.")

// New instantiates a new REPL using the provided `prompt`.
func New(prompt string) *REPL {
	r := &REPL{
		commands: make(map[string]Command),
		prompt:   prompt,
		output:   os.Stdout,
	}

	// Add default commands clear, exit, and help
	r.AddCommand(Command{
		Name:  "help",
		Usage: "help: displays available commands and their usage",
		Action: func(args []string) (string, error) {
			return r.Usage(), nil
		},
	})

	r.AddCommand(Command{
		Name:  "exit",
		Usage: "exit: exit the interactive prompt",
		Action: func(args []string) (string, error) {
			r.Stop()
			return "", nil
		},
	})

	r.AddCommand(Command{
		Name:  "clear",
		Usage: "clear: clear the terminal",
		Action: func(args []string) (string, error) {
			_, err := readline.ClearScreen(r.output)
			if err != nil {
				return "", err
			}
			return "", nil
		},
	})

	return r
}

// SetInput reads commands from rd instead of the terminal.
func (r *REPL) SetInput(rd io.Reader) {
	r.input = io.NopCloser(rd)
}

// SetOutput redirects command results and errors to w.
func (r *REPL) SetOutput(w io.Writer) {
	r.output = w
}

// OnStop registers a function to be called once when the REPL stops, however
// Loop ends.
func (r *REPL) OnStop(sf func()) {
	r.stopfunc = sf
}

func (r *REPL) runStop() {
	r.stopOnce.Do(func() {
		if r.stopfunc != nil {
			r.stopfunc()
		}
	})
}

// Stop runs the stop function and ends Loop.
func (r *REPL) Stop() {
	r.runStop()
	if r.rl != nil {
		r.rl.Close()
	}
}

// Usage returns the usage for every command in the REPL, sorted by name.
func (r *REPL) Usage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(r.commands[name].Usage + "\n")
	}
	return b.String()
}

// AddCommand registers the command provided in `cmd` with the REPL.
func (r *REPL) AddCommand(cmd Command) {
	r.commands[cmd.Name] = cmd

	var completers []readline.PrefixCompleterInterface
	for name := range r.commands {
		completers = append(completers, readline.PcItem(name))
	}

	r.prefixCompleter = readline.NewPrefixCompleter(completers...)
}

// eval evaluates a line that was input to the REPL.
func (r *REPL) eval(line string) (string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}

	cmd, exists := r.commands[args[0]]
	if !exists {
		return "", ErrUnknownCommand
	}

	return cmd.Action(args[1:])
}

// Loop starts the Read-Eval-Print loop. It returns when the input ends, on
// interrupt, or after Stop.
func (r *REPL) Loop() error {
	cfg := &readline.Config{
		Prompt:       r.prompt,
		AutoComplete: r.prefixCompleter,
		Stdout:       r.output,
	}
	if r.input != nil {
		cfg.Stdin = r.input
		cfg.FuncIsTerminal = func() bool { return false }
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	r.rl = rl
	defer rl.Close()
	defer r.runStop()

	for {
		line, err := rl.Readline()
		if err != nil {
			// interrupt or end of input
			return nil
		}
		res, err := r.eval(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(r.output, err.Error())
			continue
		}
		fmt.Fprint(r.output, res)
	}
}
