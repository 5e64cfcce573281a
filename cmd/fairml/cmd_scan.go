package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runScan is the handler for "fairml scan". It needs no target or
// sensitive attributes.
func runScan(cmd *cobra.Command, opts *options, args []string) error {
	d, err := newDetector(cmd, opts)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd, opts, args)
	if err != nil {
		return err
	}

	matches, err := d.SuggestSensitiveAttributes(table)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		return printJSON(cmd, matches)
	}
	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sensitive attributes detected")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-12s %.2f\n", m.Column, m.Category, m.Confidence)
	}
	return nil
}
