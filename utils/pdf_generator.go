package utils

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"vinyasaclub/models"
	"vinyasaclub/repository"
)

const clubName = "Vinyasa Club"

//go:embed templates/attendance_report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("attendance_report.html").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/attendance_report.html"),
)

// BuildAttendanceReportData lays out the roster with each member's status
// on date. Members without a record have an empty status.
func BuildAttendanceReportData(ctx context.Context, repo *repository.ReportRepository, date string, now time.Time) (*models.AttendanceReportData, error) {
	members, statuses, err := repo.GetAttendanceSheet(ctx, date)
	if err != nil {
		return nil, err
	}

	data := &models.AttendanceReportData{
		ClubName:    clubName,
		Date:        date,
		GeneratedAt: now.Format("02-Jan-2006 15:04 MST"),
		Rows:        make([]models.AttendanceReportRow, 0, len(members)),
		Counts: map[string]int{
			string(models.StatusPresent): 0,
			string(models.StatusLate):    0,
			string(models.StatusAbsent):  0,
			string(models.StatusExcused): 0,
		},
		Total: len(members),
	}
	for _, m := range members {
		status := statuses[m.ID]
		if status != "" {
			data.Counts[string(status)]++
		}
		data.Rows = append(data.Rows, models.AttendanceReportRow{
			VIN:    m.VIN,
			Name:   m.Name,
			Branch: m.Branch,
			Year:   m.Year,
			Status: string(status),
		})
	}
	return data, nil
}

func RenderAttendanceReportHTML(data *models.AttendanceReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLToPDF prints an HTML document to A4 with headless Chrome.
func HTMLToPDF(ctx context.Context, html []byte) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), "attendance_"+time.Now().Format("20060102150405.000000")+".html")
	if err := os.WriteFile(tmpHTML, html, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
