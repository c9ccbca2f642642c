// Package cmd implements the mdflow CLI.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdflow",
	Short: "Parse streaming markdown into render-ready blocks",
	Long: `mdflow replays markdown through the incremental pipeline used for live
LLM output: unclosed markers are healed, only the unstable tail is
re-tokenized, and the result is a block tree with stable identities
suitable for UI diffing.

Examples:
  mdflow parse README.md --chunk 16    # replay in 16-byte increments
  cat doc.md | mdflow repair           # just heal dangling markers
  mdflow render doc.md                 # healed document through glamour`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when no argument (or "-") is
// given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
