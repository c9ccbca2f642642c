package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/time-gift24/mdflow/internal/config"
	"github.com/time-gift24/mdflow/internal/repair"
)

var renderStyle string
var renderWidth int

func init() {
	renderCmd.Flags().StringVar(&renderStyle, "style", "", "Glamour style name (defaults to config)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Word-wrap width (defaults to config)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render the healed document to the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		data, err := readInput(args)
		if err != nil {
			return err
		}

		style := renderStyle
		if style == "" {
			style = cfg.Render.Style
		}
		width := renderWidth
		if width <= 0 {
			width = cfg.Render.Width
		}

		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}

		out, err := tr.Render(repair.Repair(string(data)))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}
