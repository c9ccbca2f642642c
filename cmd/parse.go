package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/time-gift24/mdflow/internal/blocks"
	"github.com/time-gift24/mdflow/internal/config"
	"github.com/time-gift24/mdflow/internal/parser"
)

var parseChunk int
var parseSnapshots bool

func init() {
	parseCmd.Flags().IntVar(&parseChunk, "chunk", 0, "Replay input through the incremental parser in chunks of this many bytes (0 = one call)")
	parseCmd.Flags().BoolVar(&parseSnapshots, "snapshots", false, "Print every intermediate parse result, not just the final one")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse markdown into a block tree as JSON",
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

		chunk := parseChunk
		if !cmd.Flags().Changed("chunk") && cfg.Parse.Chunk > 0 {
			chunk = cfg.Parse.Chunk
		}
		snapshots := parseSnapshots || cfg.Parse.Snapshots

		enc := json.NewEncoder(cmd.OutOrStdout())
		if cfg.Parse.Indent {
			enc.SetIndent("", "  ")
		}

		p := parser.New()
		text := string(data)
		if chunk <= 0 {
			return enc.Encode(p.Parse(text))
		}

		var result blocks.ParseResult
		prev := ""
		for pos := 0; pos < len(text); pos += chunk {
			end := pos + chunk
			if end > len(text) {
				end = len(text)
			}
			next := text[:end]
			result = p.ParseIncremental(prev, next)
			prev = next
			if snapshots {
				if err := enc.Encode(result); err != nil {
					return err
				}
			}
		}
		if snapshots {
			return nil
		}
		return enc.Encode(result)
	},
}
