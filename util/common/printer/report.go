package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harness/nexus-migrate/internal/style"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common"

	"github.com/pterm/pterm"
)

// PrintReport writes the outcome counts of a run, the uploaded volume and the
// failed paths in sorted order.
func PrintReport(w io.Writer, report *types.RunReport) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Title.Render("Results"))

	rows := [][]string{
		{string(types.StatusSkip), strconv.Itoa(report.Skipped())},
		{string(types.StatusUpload), strconv.Itoa(report.Uploaded())},
		{string(types.StatusHacked), strconv.Itoa(report.Hacked())},
		{string(types.StatusFail), strconv.Itoa(report.Failed())},
		{"Total", strconv.Itoa(report.Total())},
	}
	if err := PrintTable(w, []string{"Status", "Count"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "Uploaded %s\n", common.GetSize(report.BytesUploaded()))

	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Error.Render("Failed uploads:"))
	items := make([]pterm.BulletListItem, 0, len(failures))
	for _, f := range failures {
		items = append(items, pterm.BulletListItem{Level: 0, Text: f})
	}
	return pterm.DefaultBulletList.WithItems(items).WithWriter(w).Render()
}

// PrintFileStats writes one row per handled artifact.
func PrintFileStats(w io.Writer, stats []types.FileStat) error {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		size := "-"
		if s.Size > 0 {
			size = common.GetSize(s.Size)
		}
		errText := s.Error
		if errText == "" {
			errText = "-"
		}
		rows = append(rows, []string{s.Path, statusText(s.Status), size, errText})
	}
	return PrintTable(w, []string{"Path", "Status", "Size", "Error"}, rows)
}

func statusText(s types.Status) string {
	if !style.Enabled {
		return string(s)
	}
	switch s {
	case types.StatusUpload:
		return style.Success.Render(string(s))
	case types.StatusSkip:
		return style.Warning.Render(string(s))
	case types.StatusHacked:
		return style.Hacked.Render(string(s))
	case types.StatusFail:
		return style.Error.Render(string(s))
	}
	return string(s)
}
