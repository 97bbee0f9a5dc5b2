package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-pcl/estimate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)
)

// printSummary writes the run summary and the bandpower table. styled
// selects lipgloss rendering for terminals.
func printSummary(w io.Writer, rep estimate.Report, styled bool) error {
	fields := [][2]string{
		{"correlation", rep.Correlation.String()},
		{"method", rep.Method.String()},
		{"workspace", rep.Cache.String()},
		{"nside", fmt.Sprint(rep.Nside)},
		{"fsky", fmt.Sprintf("%.4f / %.4f", rep.FSky1, rep.FSky2)},
		{"bins", fmt.Sprint(len(rep.Bins))},
		{"output", rep.OutputPath},
	}

	var table strings.Builder
	if err := writeBandpowers(&table, rep); err != nil {
		return err
	}

	if !styled {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, f := range fields {
			if _, err := fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1]); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%s", table.String())
		return err
	}

	lines := []string{titleStyle.Render("pclest")}
	for _, f := range fields {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-12s", f[0]))+valueStyle.Render(f[1]))
	}
	lines = append(lines, tableStyle.Render(strings.TrimRight(table.String(), "\n")))
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

func writeBandpowers(w io.Writer, rep estimate.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Bin\tlmin\tlmax\tl_eff\tC_l\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t----\t----\t-----\t---\n"); err != nil {
		return err
	}
	for i, iv := range rep.Bins {
		if i >= rep.Spectrum.Len() {
			break
		}
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%.6e\n",
			i, iv.LMin, iv.LMax, rep.Spectrum.Ell[i], rep.Spectrum.Cl[i]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
