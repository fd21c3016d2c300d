package main

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"vetter/style"
)

func newStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "style <url> <selector> [property]",
		Short: "Print the computed style of the first matching element",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, selector := args[0], args[1]
			fetcher := &style.HTTPFetcher{
				UserAgent: "vetter-style/1.0",
				Cache:     style.NewCache(cfg.Style.CacheTTL, nil),
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			body, err := fetcher.FetchDocument(ctx, target)
			if err != nil {
				return err
			}
			doc, err := html.Parse(bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("parse %s: %w", target, err)
			}
			node, err := style.Find(doc, selector)
			if err != nil {
				return err
			}
			if node == nil {
				return fmt.Errorf("no element matches %q", selector)
			}
			sheet := style.Parse(ctx, doc, style.Options{BaseURL: target, Fetcher: fetcher, Logger: logger})
			out := cmd.OutOrStdout()
			if len(args) == 3 {
				fmt.Fprintln(out, sheet.Value(node.HTML, args[2]))
				return nil
			}
			props := sheet.Compute(node.HTML)
			keys := make([]string, 0, len(props))
			for k := range props {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %s\n", k, props[k])
			}
			return nil
		},
	}
}
