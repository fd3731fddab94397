package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/optimizer"
)

func newOptimalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimal <id>",
		Short: "Overwrite a strategy with the exact optimal strategy under the simplified (Swine Swap only) ruleset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			strat, err := sess.Get(args[0])
			if err != nil {
				return err
			}
			if err := optimizer.MakeOptimalStrategy(strat); err != nil {
				return err
			}
			fmt.Printf("%q set to the optimal strategy\n", strat.UniqueID)
			return nil
		},
	}
}
