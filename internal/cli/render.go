package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lantern/pkg/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		output string
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "render <url|file>",
		Short: "Render a page to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseTarget(args[0])
			if err != nil {
				return err
			}
			canvas := render.NewCanvas(a.cfg.Viewport.Width, a.cfg.Viewport.Height, a.fonts)
			b, err := a.newBrowser(canvas)
			if err != nil {
				return err
			}
			if err := b.Load(cmd.Context(), u); err != nil {
				return err
			}
			for i := 0; i < steps; i++ {
				b.ScrollDown()
			}
			if err := b.Draw(); err != nil {
				return fmt.Errorf("painting: %w", err)
			}
			if err := canvas.SavePNG(output); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.logger.Info("rendered page",
				zap.Stringer("url", u),
				zap.String("output", output),
				zap.Float64("scroll", b.Scroll()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "page.png", "PNG file to write")
	cmd.Flags().IntVar(&steps, "scroll", 0, "number of scroll steps to move down before painting")
	return cmd
}
