package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/hogconfig"
)

func newWinRateCmd() *cobra.Command {
	var swineSwap, feralHogs, timeTrot bool
	cmd := &cobra.Command{
		Use:   "winrate <id0> <id1>",
		Short: "Print the exact win rates between two strategies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			a, err := sess.Get(args[0])
			if err != nil {
				return err
			}
			b, err := sess.Get(args[1])
			if err != nil {
				return err
			}
			rules := hogconfig.Rules{
				EnableSwineSwap: swineSwap,
				EnableFeralHogs: feralHogs,
				EnableTimeTrot:  timeTrot,
			}
			fmt.Printf("win_rate:              %s\n", formatScore(sess.WinRate(rules, a, b)))
			fmt.Printf("win_rate_going_first:  %s\n", formatScore(sess.WinRate0(rules, a, b)))
			fmt.Printf("win_rate_going_last:   %s\n", formatScore(sess.WinRate1(rules, a, b)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&swineSwap, "swine-swap", false, "enable the Swine Swap rule")
	cmd.Flags().BoolVar(&feralHogs, "feral-hogs", false, "enable the Feral Hogs rule")
	cmd.Flags().BoolVar(&timeTrot, "time-trot", false, "enable the Time Trot rule")
	return cmd
}
