package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hed1ad/gofairml/pkg/compliance"
	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/report"
)

// runEEOC is the handler for "fairml eeoc".
func runEEOC(cmd *cobra.Command, opts *options, args []string) error {
	d, err := newDetector(cmd, opts)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd, opts, args)
	if err != nil {
		return err
	}

	res, err := d.CheckEEOC(table)
	if err != nil {
		return err
	}

	rec := fio.Result{
		Kind:      "eeoc",
		Attribute: d.Config().SensitiveAttributes[0],
		Passed:    res.Compliant,
		Metrics:   prefixed(res.SelectionRates, "selection_rate_"),
		Metadata:  map[string]any{"failing_groups": res.FailingGroups, "regulation": res.Regulation},
	}
	rec.Metrics["impact_ratio"] = res.ImpactRatio
	if err := writeResults(opts, rec); err != nil {
		return err
	}

	if opts.jsonOut {
		return printJSON(cmd, res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.EEOC(res))
	return nil
}

// runECOA is the handler for "fairml ecoa".
func runECOA(cmd *cobra.Command, opts *options, args []string) error {
	d, err := newDetector(cmd, opts)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd, opts, args)
	if err != nil {
		return err
	}

	res, err := d.CheckECOA(table)
	if err != nil {
		return err
	}

	rec := fio.Result{
		Kind:      "ecoa",
		Attribute: d.Config().SensitiveAttributes[0],
		Passed:    res.Compliant,
		Metrics:   prefixed(res.ApprovalRates, "approval_rate_"),
		Metadata:  map[string]any{"disadvantaged_groups": res.DisadvantagedGroups, "regulation": res.Regulation},
	}
	rec.Metrics["disparate_impact"] = res.DisparateImpact
	rec.Metrics["chi_square"] = res.ChiSquare
	rec.Metrics["p_value"] = res.PValue
	if err := writeResults(opts, rec); err != nil {
		return err
	}

	if opts.jsonOut {
		return printJSON(cmd, res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.ECOA(res))
	return nil
}

func prefixed(rates map[string]float64, prefix string) map[string]float64 {
	out := make(map[string]float64, len(rates)+3)
	for _, g := range compliance.Groups(rates) {
		out[prefix+g] = rates[g]
	}
	return out
}
