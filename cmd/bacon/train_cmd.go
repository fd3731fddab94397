package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/optimizer"
)

func newTrainCmd() *cobra.Command {
	var steps int
	var greedy, swineSwap, feralHogs, timeTrot bool
	cmd := &cobra.Command{
		Use:   "train <id> <opponent>",
		Short: "Improve a strategy by coordinate ascent against a fixed opponent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			strat, err := sess.Get(args[0])
			if err != nil {
				return err
			}
			opponent, err := sess.Get(args[1])
			if err != nil {
				return err
			}
			rules := hogconfig.Rules{
				EnableSwineSwap: swineSwap,
				EnableFeralHogs: feralHogs,
				EnableTimeTrot:  timeTrot,
			}
			trainLog := log.With().Str("strategy", strat.UniqueID).Logger()
			if greedy {
				err = optimizer.TrainStrategyGreedy(rules, strat, opponent, steps, trainLog)
			} else {
				err = optimizer.TrainStrategy(rules, strat, opponent, steps, trainLog)
			}
			if err != nil {
				return err
			}
			fmt.Printf("trained %q for %d steps\n", strat.UniqueID, steps)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", hogconfig.Goal, "number of coordinate-ascent steps")
	cmd.Flags().BoolVar(&greedy, "greedy", false, "use the faster, cache-reusing (and less reliable) greedy variant")
	cmd.Flags().BoolVar(&swineSwap, "swine-swap", false, "enable the Swine Swap rule")
	cmd.Flags().BoolVar(&feralHogs, "feral-hogs", false, "enable the Feral Hogs rule")
	cmd.Flags().BoolVar(&timeTrot, "time-trot", false, "enable the Time Trot rule")
	return cmd
}
