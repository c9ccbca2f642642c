package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/time-gift24/mdflow/internal/repair"
)

func init() {
	rootCmd.AddCommand(repairCmd)
}

var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Heal unclosed markdown markers and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), repair.Repair(string(data)))
		return err
	},
}
