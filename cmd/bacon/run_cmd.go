package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/hogconfig"
	"github.com/sxyu/bacon2/pkg/tournament"
)

func newRunCmd() *cobra.Command {
	var swineSwap, feralHogs, timeTrot bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a round-robin tournament across every strategy in the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			rules := hogconfig.Rules{
				EnableSwineSwap: swineSwap,
				EnableFeralHogs: feralHogs,
				EnableTimeTrot:  timeTrot,
			}
			runLog := log.With().Str("run_id", uuid.NewString()).Logger()
			res := tournament.Run(rules, sess.Values(), sess.Results(), workers, runLog)
			sess.SetResults(res)

			printHeader("Tournament Results")
			fmt.Print(res.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&swineSwap, "swine-swap", false, "enable the Swine Swap rule")
	cmd.Flags().BoolVar(&feralHogs, "feral-hogs", false, "enable the Feral Hogs rule")
	cmd.Flags().BoolVar(&timeTrot, "time-trot", false, "enable the Time Trot rule")
	return cmd
}
