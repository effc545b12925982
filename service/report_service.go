package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"crescer-uniformes/models"
	"crescer-uniformes/repository"
	"crescer-uniformes/utils"
)

//go:embed templates/pending_review.html
var templateFS embed.FS

const pendingSheet = "Pendentes"

var pendingHeaders = []interface{}{
	"ID", "Importado em", "Escola", "Cliente", "Telefone", "Pagamento", "Qtd", "Produto", "Tamanho",
}

var pendingReviewTemplate = template.Must(template.New("pending_review.html").
	Funcs(template.FuncMap{"formatPhone": utils.FormatPhone}).
	ParseFS(templateFS, "templates/pending_review.html"))

// ReportService renders the review queue as spreadsheets and printable sheets
type ReportService struct {
	repository repository.StagingOrderRepositoryInterface
	chromePath string
	now        func() time.Time
}

// NewReportService creates a new ReportService.
// chromePath may be empty, in which case common install locations are tried.
func NewReportService(repo repository.StagingOrderRepositoryInterface, chromePath string) *ReportService {
	return &ReportService{
		repository: repo,
		chromePath: chromePath,
		now:        time.Now,
	}
}

// Ensure ReportService implements ReportServiceInterface
var _ ReportServiceInterface = (*ReportService)(nil)

// ExportPendingXLSX writes the pending queue to a workbook, one row per parsed item
func (s *ReportService) ExportPendingXLSX(ctx context.Context) ([]byte, error) {
	orders, err := s.repository.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildPendingWorkbook(orders)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logrus.Infof("📊 ExportPendingXLSX: Exported %d pending orders", len(orders))
	return buf.Bytes(), nil
}

func buildPendingWorkbook(orders []models.StagingOrder) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pendingSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(pendingSheet, "A1", &pendingHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, o := range orders {
		base := []interface{}{o.ID, o.CreatedAt, o.School, o.CustomerName, utils.FormatPhone(o.Phone), string(o.PaymentStatus)}

		items := o.ParsedItems
		if len(items) == 0 {
			items = []models.ParsedItem{{}}
		}
		for _, item := range items {
			values := append(append([]interface{}{}, base...), "", item.Product, item.Size)
			if item.Quantity > 0 {
				values[6] = item.Quantity
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(pendingSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := applyPendingLayout(f, pendingSheet); err != nil {
		return nil, err
	}
	return f, nil
}

// pendingColumnWidths maps column ranges of the pending sheet to their width
var pendingColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 38},
	{"B", "F", 20},
	{"H", "H", 24},
}

// applyPendingLayout bolds the header row and sets the column widths
func applyPendingLayout(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "I1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for _, col := range pendingColumnWidths {
		if err := f.SetColWidth(sheet, col.from, col.to, col.width); err != nil {
			return fmt.Errorf("failed to set width of columns %s-%s: %w", col.from, col.to, err)
		}
	}
	return nil
}

// RenderPendingHTML renders the printable review sheet
func (s *ReportService) RenderPendingHTML(ctx context.Context) (string, error) {
	orders, err := s.repository.ListPending(ctx)
	if err != nil {
		return "", err
	}
	return renderPendingHTML(orders, s.now())
}

func renderPendingHTML(orders []models.StagingOrder, generatedAt time.Time) (string, error) {
	data := struct {
		Orders          []models.StagingOrder
		GeneratedAt     string
		UnknownCustomer string
	}{
		Orders:          orders,
		GeneratedAt:     generatedAt.Format("02/01/2006 15:04"),
		UnknownCustomer: models.UnknownCustomer,
	}

	var buf bytes.Buffer
	if err := pendingReviewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath returns the configured Chrome/Chromium executable,
// otherwise the first one found in common installation paths or on PATH
func (s *ReportService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
		logrus.Warnf("⚠️  detectChromePath: CHROME_PATH=%s not found", s.chromePath)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// RenderPendingPDF prints the review sheet to PDF with headless Chrome
func (s *ReportService) RenderPendingPDF(ctx context.Context) ([]byte, error) {
	html, err := s.RenderPendingHTML(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := s.detectChromePath()
	if chromePath == "" {
		return nil, ErrChromeUnavailable
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.NoSandbox, // Required for running in Docker/containers
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 landscape, margins come from the @page rule
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		logrus.Errorf("❌ RenderPendingPDF: Error printing review sheet: %v", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logrus.Infof("🖨️  RenderPendingPDF: Generated %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
