package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/giac-go/giac"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive giac session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := giac.New()
			if err != nil {
				return err
			}
			defer ctx.Close()
			return runREPL(ctx)
		},
	}
}

// runREPL drives a raw-terminal line editor. Plain pipes fall back to
// unbuffered reads so `echo "2+3" | giac repl` still works.
func runREPL(ctx *giac.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return replLoop(ctx, term.NewTerminal(stdio{}, "giac> "))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(stdio{}, "giac> ")
	t.AutoCompleteCallback = completer(ctx)
	return replLoop(ctx, t)
}

func replLoop(ctx *giac.Context, t *term.Terminal) error {
	fmt.Fprintln(t, "giac repl — type quit to exit")
	for {
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		g, err := ctx.Eval(line)
		if err != nil {
			fmt.Fprintln(t, "error:", err)
			continue
		}
		fmt.Fprintln(t, g)
		g.Release()
	}
}

// completer completes a trailing command word against the registry on Tab.
func completer(ctx *giac.Context) func(string, int, rune) (string, int, bool) {
	return func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' || pos != len(line) {
			return "", 0, false
		}
		start := strings.LastIndexAny(line, " (+-*/^,[") + 1
		word := line[start:]
		if word == "" {
			return "", 0, false
		}
		matches := ctx.Commands(word)
		if len(matches) != 1 {
			return "", 0, false
		}
		newLine := line[:start] + matches[0]
		return newLine, len(newLine), true
	}
}

// stdio satisfies the io.ReadWriter the terminal needs.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
