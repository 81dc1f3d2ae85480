package main

import (
	"fmt"
	"io"

	"github.com/plus3/orbitsim/orbit"
	"github.com/spf13/cobra"
)

func newScenarioCommand(out io.Writer) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Print the reference scenario, or validate and normalize a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := orbit.Reference()
			if file != "" {
				var err error
				if sc, err = orbit.LoadScenario(file); err != nil {
					return err
				}
			}

			data, err := sc.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario file (YAML or JSON) to validate")
	return cmd
}
