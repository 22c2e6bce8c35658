// gridcalc-tui is the terminal frontend to the grid calculator. It binds
// the same form engine as the desktop app onto a full-screen text UI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GridCalc/internal/binding"
	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
	"github.com/piwi3910/GridCalc/internal/tui"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}

func newCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "gridcalc-tui",
		Short: "Plan ship grids from the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := data.Load()
			if err != nil {
				return fmt.Errorf("could not load block catalog: %w", err)
			}

			form := binding.NewForm(catalog, grid.NewCalculator())
			if file != "" {
				if err := form.Load(file); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
				}
			}
			return tui.Run(form)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "grid file to open on start")
	return cmd
}
