package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paycheck/budget-planner/internal/domain"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all inputs and restore the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		e.state = domain.DefaultState()
		if err := e.save(); err != nil {
			return err
		}
		e.render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
