package main

import (
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-linkedlist/selftest"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/spf13/cobra"
)

func runSelftest(cmd *cobra.Command) error {
	results := selftest.Run(cmd.Context())
	if err := selftest.Write(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if !selftest.AllPassed(results) {
		err := stackerr.Errorf("LinkedList self-test failed")
		log.FromContext(cmd.Context()).Error(err)
		return err
	}
	return nil
}

func newSelftestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the LinkedList behavioural checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(cmd)
		},
	}
}
