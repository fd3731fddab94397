package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/hogconfig"
)

func newDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <id>",
		Short: "Draw a strategy's roll-count table as an ASCII diagram",
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
			fmt.Println("Y-axis is player score, X-axis is opponent score. Bottom left is 0, 0.")
			fmt.Println()
			for i := hogconfig.Goal - 2; i >= 0; i -= 2 {
				fmt.Print("[")
				for j := 0; j < hogconfig.Goal; j++ {
					a := strat.MustGet(i, j)
					b := strat.MustGet(i+1, j)
					fmt.Print(shade((a + b) / 2))
				}
				fmt.Println("]")
			}
			fmt.Println()
			fmt.Println("LEGEND:  [ ] = 0  [:] = 1,2  [|] = 3,4  [%] = 5,6  [▓] = 7,8  [█] = 9,10.")
			return nil
		},
	}
}

// shade maps an averaged roll count to the same shading-block legend
// the original strategy diagram used.
func shade(v int) string {
	switch {
	case v <= 0:
		return " "
	case v <= 2:
		return ":"
	case v <= 4:
		return "|"
	case v <= 6:
		return "%"
	case v <= 8:
		return "▓"
	default:
		return "█"
	}
}
