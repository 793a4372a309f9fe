package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lantern/pkg/browser"
)

func newDumpCommand(a *app) *cobra.Command {
	var tree, boxes, commands bool
	cmd := &cobra.Command{
		Use:   "dump <url|file>",
		Short: "Print the parsed tree, layout tree or paint commands of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseTarget(args[0])
			if err != nil {
				return err
			}
			b, err := a.newBrowser(nil)
			if err != nil {
				return err
			}
			if err := b.Load(cmd.Context(), u); err != nil {
				return err
			}
			if !tree && !boxes && !commands {
				tree = true
			}
			return dump(cmd.OutOrStdout(), b, tree, boxes, commands)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the document tree (default)")
	cmd.Flags().BoolVar(&boxes, "layout", false, "print the layout tree")
	cmd.Flags().BoolVar(&commands, "commands", false, "print the paint commands")
	return cmd
}

func dump(w io.Writer, b *browser.Browser, tree, boxes, commands bool) error {
	if tree {
		if _, err := io.WriteString(w, b.Document().Dump()); err != nil {
			return err
		}
	}
	if boxes {
		if _, err := io.WriteString(w, b.Layout().Dump()); err != nil {
			return err
		}
	}
	if commands {
		for _, c := range b.Commands() {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
	}
	return nil
}
