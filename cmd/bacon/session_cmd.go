package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sxyu/bacon2/pkg/hogconfig"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the strategies in the current session",
	}
	cmd.AddCommand(newSessionAddCmd(), newSessionListCmd(), newSessionRemoveCmd())
	return cmd
}

func newSessionAddCmd() *cobra.Command {
	var name string
	var roll int
	var random bool
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a new constant-roll (or random) strategy to the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			id := args[0]
			if random {
				if _, err := sess.AddRandom(id, name, randSource()); err != nil {
					return err
				}
			} else {
				if roll < hogconfig.MinRolls || roll > hogconfig.MaxRolls {
					return fmt.Errorf("roll must be within [%d,%d]", hogconfig.MinRolls, hogconfig.MaxRolls)
				}
				if _, err := sess.AddNew(id, name, roll); err != nil {
					return err
				}
			}
			fmt.Printf("added strategy %q\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to id)")
	cmd.Flags().IntVar(&roll, "roll", 4, "constant roll count")
	cmd.Flags().BoolVar(&random, "random", false, "fill cells with independent uniform roll counts instead")
	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every strategy in the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			for _, s := range sess.Values() {
				fmt.Printf("%-12s %s\n", s.UniqueID, s.Name)
			}
			return nil
		},
	}
}

func newSessionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a strategy from the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(sessionName)
			if err != nil {
				return err
			}
			if !sess.RemoveByID(args[0]) {
				return fmt.Errorf("strategy %q not found", args[0])
			}
			fmt.Printf("removed strategy %q\n", args[0])
			return nil
		},
	}
}
