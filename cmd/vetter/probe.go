package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vetter/internal/browser"
)

func newProbeCmd() *cobra.Command {
	var ua string
	cmd := &cobra.Command{
		Use:   "probe <url> <selector>",
		Short: "Measure an element in headless Chrome and report whether it is scrolled to the bottom",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober := browser.New(browser.WithLogger(logger), browser.WithTimeout(cfg.Probe.Timeout))
			defer prober.Close()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if ua == "" {
				ua = cfg.UserAgent
			}
			snap, err := prober.Probe(ctx, browser.ProbeRequest{URL: args[0], Selector: args[1], UserAgent: ua})
			if err != nil {
				return err
			}
			env := snap.Env()
			fmt.Fprintf(cmd.OutOrStdout(), "url=%s found=%v scrollTop=%g clientHeight=%g scrollHeight=%g overflowY=%q bottom=%v android=%v ios=%v\n",
				snap.URL, snap.Found, snap.Top, snap.Client, snap.Height, snap.OverflowY,
				snap.AtBottom(), env.IsAndroidDevice(), env.IsIOSDevice())
			return nil
		},
	}
	cmd.Flags().StringVar(&ua, "ua", "", "user agent to emulate")
	return cmd
}
