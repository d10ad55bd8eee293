package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goglass/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goglass",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Structural Glass Facade Modelling Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
