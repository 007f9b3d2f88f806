package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// OCRConfig tunes the rasterize-and-recognize path.
type OCRConfig struct {
	PdftoppmBin  string // if empty -> "pdftoppm"
	TesseractBin string // if empty -> "tesseract"
	DPI          int    // rasterization DPI, default 300
	Lang         string // default "eng"
	MaxPages     int    // 0 = no limit
	PageTimeout  time.Duration
}

// OCRStrategy renders each page to an image and runs optical character
// recognition on it. Last in the chain: it is the only path for scanned
// documents and by far the most expensive.
type OCRStrategy struct {
	cfg    OCRConfig
	runner Runner
}

func NewOCRStrategy(cfg OCRConfig) *OCRStrategy {
	return NewOCRStrategyWithRunner(cfg, execRunner{})
}

func NewOCRStrategyWithRunner(cfg OCRConfig, r Runner) *OCRStrategy {
	if cfg.PdftoppmBin == "" {
		cfg.PdftoppmBin = "pdftoppm"
	}
	if cfg.TesseractBin == "" {
		cfg.TesseractBin = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 60 * time.Second
	}
	return &OCRStrategy{cfg: cfg, runner: r}
}

func (s *OCRStrategy) Name() string { return "ocr" }

func (s *OCRStrategy) Attempt(ctx context.Context, data []byte, mimeHint string) (string, int, error) {
	if mimeHint != "" && mimeHint != "application/pdf" {
		return "", 0, fmt.Errorf("unsupported content type %q", mimeHint)
	}

	tmpDir, err := os.MkdirTemp("", "hs-ocr-*")
	if err != nil {
		return "", 0, err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return "", 0, err
	}

	// pdftoppm -r <dpi> -png <doc.pdf> <tmp/page>
	prefix := filepath.Join(tmpDir, "page")
	if _, errb, err := s.runner.Run(ctx, s.cfg.PdftoppmBin, "-r", fmt.Sprintf("%d", s.cfg.DPI), "-png", pdfPath, prefix); err != nil {
		return "", 0, fmt.Errorf("pdftoppm: %v: %s", err, strings.TrimSpace(string(errb)))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if s.cfg.MaxPages > 0 && len(matches) > s.cfg.MaxPages {
		matches = matches[:s.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, fmt.Errorf("pdftoppm produced no images")
	}

	var b strings.Builder
	for _, img := range matches {
		txt, err := s.recognizePage(ctx, img)
		if err != nil {
			// A failed page does not sink the document; the rest may read fine.
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\f")
		}
		b.WriteString(txt)
	}
	return b.String(), len(matches), nil
}

// recognizePage runs tesseract on one page image under a bounded time budget
// so a pathological scan cannot stall the whole chain.
func (s *OCRStrategy) recognizePage(ctx context.Context, imgPath string) (string, error) {
	pageCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	out, errb, err := s.runner.Run(pageCtx, s.cfg.TesseractBin, imgPath, "stdout", "-l", s.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %v: %s", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}
