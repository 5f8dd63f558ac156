package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tipfit/internal/models"
)

// Generator builds the tip history report (interface so handlers can be
// tested with a stub).
type Generator interface {
	GenerateHistory(data HistoryData) (string, error)
}

type HistoryData struct {
	UserID   string
	UserName string
	Tips     []*models.Tip
	Filename string // optional; derived from the user id when empty
}

// ReportGenerator writes PDF reports under RootDir. FontPath may point to a
// TTF with full Latin coverage; without one the core Helvetica font plus the
// cp1252 translator still covers Spanish accents.
type ReportGenerator struct {
	RootDir  string
	FontPath string
	fontName string
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateHistory(data HistoryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("tips_history_%s.pdf", data.UserID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TipFit - Historial de consejos", false)
	pdf.SetAuthor("TipFit", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	font := g.addFont(pdf)
	// UTF-8 fonts take raw strings; the core font needs cp1252 translation
	tr := func(s string) string { return s }
	if font == "Helvetica" {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	pdf.SetFont(font, "B", 18)
	pdf.CellFormat(0, 10, tr("Historial de consejos"), "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 10)
	sub := fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006"))
	if data.UserName != "" {
		sub = fmt.Sprintf("%s para %s", sub, data.UserName)
	}
	pdf.CellFormat(0, 8, tr(sub), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(data.Tips) == 0 {
		pdf.SetFont(font, "I", 12)
		pdf.CellFormat(0, 10, tr("Aún no hay consejos generados."), "", 1, "L", false, 0, "")
	}

	for _, tip := range data.Tips {
		pdf.SetFont(font, "B", 13)
		pdf.MultiCell(0, 7, tr(tip.Title), "", "L", false)

		pdf.SetFont(font, "I", 9)
		meta := fmt.Sprintf("%s · %s", tip.CreatedAt.Format("02/01/2006"), tip.Category)
		pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")

		pdf.SetFont(font, "", 11)
		pdf.MultiCell(0, 6, tr(tip.Content), "", "L", false)
		pdf.Ln(4)
	}

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return absPath, nil
}

// addFont registers the configured TTF if it exists and returns the font
// name to use; otherwise falls back to the built-in Helvetica.
func (g *ReportGenerator) addFont(pdf *gofpdf.Fpdf) string {
	if g.FontPath == "" {
		return "Helvetica"
	}
	if _, err := os.Stat(g.FontPath); err != nil {
		return "Helvetica"
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "I", g.FontPath)
	return g.fontName
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}
