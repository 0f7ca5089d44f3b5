// Command giac is a thin command-line front end for the GIAC bindings:
// one-shot evaluation, an interactive REPL, and command listing backed by
// the native help database.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giac-go/giac"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "giac:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "giac",
		Short:         "GIAC computer-algebra bindings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(evalCmd(), replCmd(), commandsCmd(), docCmd())
	return root
}

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate expressions and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := giac.New()
			if err != nil {
				return err
			}
			defer ctx.Close()
			for _, expr := range args {
				g, err := ctx.Eval(expr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), g)
				g.Release()
			}
			return nil
		},
	}
}

func commandsCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "commands [PREFIX]",
		Short: "List known giac commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := giac.New()
			if err != nil {
				return err
			}
			defer ctx.Close()
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			names := ctx.Commands(prefix)
			if len(names) == 0 {
				return fmt.Errorf("no commands matching %q (degraded mode?)", prefix)
			}
			for _, name := range names {
				h, _ := ctx.HelpFor(name)
				if category != "" && h.Category != category {
					continue
				}
				if h.Synopsis != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", name, h.Synopsis)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list commands in this category")
	return cmd
}

func docCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc NAME",
		Short: "Show the help record for a command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := giac.New()
			if err != nil {
				return err
			}
			defer ctx.Close()
			h, ok := ctx.HelpFor(args[0])
			if !ok {
				return fmt.Errorf("no help for %q", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — %s\n", h.Name, h.Synopsis)
			if h.Category != "" {
				fmt.Fprintf(out, "category: %s\n", h.Category)
			}
			if len(h.Related) > 0 {
				fmt.Fprintf(out, "see also: %s\n", strings.Join(h.Related, ", "))
			}
			for _, ex := range h.Examples {
				fmt.Fprintf(out, "  %s\n", ex)
			}
			return nil
		},
	}
}
