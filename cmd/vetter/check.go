package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vetter/check"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <kind> <value>",
		Short: "Run one predicate; exits 1 when it answers false",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			pred, ok := check.Lookup(kind)
			if !ok {
				if s := check.Suggest(kind); s != "" {
					return fmt.Errorf("unknown kind %q, did you mean %q?", kind, s)
				}
				return fmt.Errorf("unknown kind %q (see 'vetter kinds')", kind)
			}
			ok = pred(args[1])
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return errRejected
			}
			return nil
		},
	}
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List predicate names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(check.Names(), "\n"))
		},
	}
}

func newDeviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "device [user-agent]",
		Short: "Classify a user agent (defaults to the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := check.Env{UserAgent: cfg.UserAgent}
			if len(args) == 1 {
				env.UserAgent = args[0]
			}
			if env.UserAgent == "" {
				fmt.Fprintln(os.Stderr, "no user agent given; set VETTER_USER_AGENT or pass one")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "android=%v ios=%v\n", env.IsAndroidDevice(), env.IsIOSDevice())
			return nil
		},
	}
}
