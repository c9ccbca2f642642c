package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/time-gift24/mdflow/internal/config"
	"github.com/time-gift24/mdflow/internal/stream"
)

var streamStyle string
var streamWidth int

func init() {
	streamCmd.Flags().StringVar(&streamStyle, "style", "", "Glamour style name (defaults to config)")
	streamCmd.Flags().IntVar(&streamWidth, "width", 0, "Word-wrap width (defaults to config)")
	rootCmd.AddCommand(streamCmd)
}

var streamCmd = &cobra.Command{
	Use:   "stream [file]",
	Short: "Render markdown to the terminal as it streams in",
	Long: `stream renders markdown block by block while it is still arriving,
instead of waiting for the full document. Pipe an LLM's output through it:

  some-llm-tool | mdflow stream`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		src, err := openSource(args)
		if err != nil {
			return err
		}
		defer src.Close()

		style := streamStyle
		if style == "" {
			style = cfg.Render.Style
		}
		width := streamWidth
		if width <= 0 {
			width = cfg.Render.Width
		}

		sr, err := stream.NewRenderer(cmd.OutOrStdout(),
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return err
		}
		if _, err := io.Copy(sr, src); err != nil {
			return err
		}
		return sr.Close()
	},
}

// openSource opens the named file for streaming, or stdin when no argument
// (or "-") is given.
func openSource(args []string) (io.ReadCloser, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.Open(args[0])
	}
	return io.NopCloser(os.Stdin), nil
}
