package cli

import (
	"fmt"
	"strings"

	"github.com/libfix/libfix/pkg/audit"
)

// renderReport prints the styled audit report to stdout.
func renderReport(report *audit.Report) {
	printNewline()
	fmt.Println(StyleTitle.Render("Dependency audit") + "  " + StyleDim.Render(report.Root))
	printKeyValue("Run ID", report.ID.String())
	printKeyValue("Manifests", fmt.Sprintf("%d", report.FileCount()))
	printNewline()

	if len(report.Results) == 0 {
		printInfo("No dependencies found")
		return
	}

	for _, res := range report.Results {
		renderResult(res)
	}

	printNewline()
	if flagged := report.InactiveCount(); flagged > 0 {
		printWarning("%d of %d packages look inactive", flagged, len(report.Results))
	} else {
		printSuccess("All %s packages look active", StyleNumber.Render(fmt.Sprintf("%d", len(report.Results))))
	}
}

func renderResult(res audit.Result) {
	name := res.Package
	if name == "" {
		name = string(res.Specifier)
	}
	version := ""
	if res.LatestVersion != "" {
		version = " " + StyleDim.Render(res.LatestVersion)
	}

	if !res.Verdict.Inactive {
		printSuccess("%s%s  %s", StyleValue.Render(name), version, StyleDim.Render(res.Verdict.Reason))
		return
	}

	printError("%s%s", styleFlagged.Render(name), version)
	printDetail("%s", res.Verdict.Reason)
	if len(res.Verdict.Alternatives) > 0 {
		fmt.Println("  " + StyleDim.Render(iconArrow+" try:") + " " + styleAlternative.Render(strings.Join(res.Verdict.Alternatives, ", ")))
	}
}
