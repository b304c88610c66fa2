package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/samadhan-cg/samadhan-api/pkg/export"
)

// Export formats supported by the register download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the complaint register as a downloadable file.
type ExportService struct {
	complaints *ComplaintService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(complaints *ComplaintService, csv *export.CSVExporter, pdf *export.PDFExporter) *ExportService {
	return &ExportService{complaints: complaints, csv: csv, pdf: pdf}
}

var registerHeaders = []string{
	"Department", "Office", "Officer Post",
	"CM Jandarshan", "Collector Jandarshan", "Post Mail", "Web", "PG Portal", "Call Center",
	"Total",
}

// Register renders the full complaint register in the requested format.
func (s *ExportService) Register(ctx context.Context, format string) (*ExportFile, error) {
	rows, err := s.complaints.Recent(ctx, true)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: registerHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Department":           row.Department,
			"Office":               row.Office,
			"Officer Post":         row.OfficerPost,
			"CM Jandarshan":        strconv.Itoa(row.CMJanDarshan),
			"Collector Jandarshan": strconv.Itoa(row.CollectorJanDarshan),
			"Post Mail":            strconv.Itoa(row.PostMail),
			"Web":                  strconv.Itoa(row.Web),
			"PG Portal":            strconv.Itoa(row.PGPortal),
			"Call Center":          strconv.Itoa(row.CallCenter),
			"Total":                strconv.Itoa(row.Total),
		})
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case ExportFormatPDF:
		body, err := s.pdf.Render(dataset, "Complaint Register")
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("complaint-register-%s.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	case ExportFormatCSV, "":
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("complaint-register-%s.csv", stamp),
			ContentType: "text/csv",
			Body:        body,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
