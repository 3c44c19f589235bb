// Package export renders a task list as JSON, CSV or a PDF report.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Makepad-fr/dayplan/internal/model"
	"github.com/Makepad-fr/dayplan/internal/persist"
)

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "pdf"}

// Exporter renders tasks; Now stamps the PDF report.
type Exporter struct {
	Title string
	Now   func() time.Time
}

func New(title string) *Exporter {
	return &Exporter{Title: title, Now: time.Now}
}

// Export renders tasks in format. The JSON form is the persisted layout.
func (e *Exporter) Export(tasks []model.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return persist.JSONCodec{}.Marshal(tasks)
	case "csv":
		return e.csv(tasks)
	case "pdf":
		return e.pdf(tasks)
	default:
		return nil, fmt.Errorf("unknown format %s (want %s)", format, strings.Join(Formats, "|"))
	}
}

func (e *Exporter) csv(tasks []model.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "completed"})
	for _, t := range tasks {
		_ = w.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return b.Bytes(), nil
}

func (e *Exporter) pdf(tasks []model.Task) ([]byte, error) {
	c := model.CountTasks(tasks)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(e.Title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, fmt.Sprintf("%s  -  Total: %d  Completed: %d  Pending: %d",
		e.Now().Format(time.DateTime), c.Total, c.Completed, c.Pending))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		pdf.MultiCell(0, 6, tr(box+" "+t.Text), "0", "L", false)
	}
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks found", "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
