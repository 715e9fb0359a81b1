package run

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/sdr-ops/dormerge"
)

var (
	mergedStyle = lipgloss.NewStyle().Bold(true)
	failedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

// writeSummary renders the end-of-run summary for a merge report.
func writeSummary(w io.Writer, r *dormerge.Report) {
	merged := r.Merged()
	line := fmt.Sprintf("merged %d of %d children into %s", len(merged), len(r.Children), r.Primary)
	fmt.Fprintln(w, mergedStyle.Render(line))
	fmt.Fprintln(w, detailStyle.Render(fmt.Sprintf("virtual resources added: %d", r.TotalResources())))
	for _, c := range r.Failed() {
		fmt.Fprintln(w, failedStyle.Render("failed:"), c.Err.Error())
	}
}
