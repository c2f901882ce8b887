package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pageTimeout bounds a single page read. Var so tests can shorten it.
var pageTimeout = 90 * time.Second

// pageSource is the slice of the go-fitz document the extractor reads from.
type pageSource interface {
	NumPage() int
	Text(pageNum int) (string, error)
}

// ExtractionService implements domain.TextExtractor with go-fitz (MuPDF).
// In sandbox mode it returns a fixed text without touching the PDF engine,
// so handler and orchestrator tests never depend on native code.
type ExtractionService struct {
	logger  domain.Logger
	sandbox bool
}

// NewExtractionService creates a new extraction service instance
func NewExtractionService(logger domain.Logger, sandbox bool) *ExtractionService {
	return &ExtractionService{
		logger:  logger,
		sandbox: sandbox,
	}
}

// PageCount reads the page count without extracting any text.
func (s *ExtractionService) PageCount(data []byte) (int, error) {
	if s.sandbox {
		return 1, nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// Extract pulls plain text from every page of the PDF. Encrypted or
// unreadable input fails; a document whose pages yield no text at all
// returns domain.ErrEmptyDocument.
func (s *ExtractionService) Extract(ctx context.Context, data []byte) (*domain.ExtractedText, error) {
	if s.sandbox {
		return &domain.ExtractedText{
			Text:      "This is mock text extracted from a PDF for testing purposes.",
			PageCount: 1,
		}, nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return s.extractPages(ctx, doc)
}

type pageResult struct {
	text string
	err  error
}

func (s *ExtractionService) extractPages(ctx context.Context, doc pageSource) (*domain.ExtractedText, error) {
	numPages := doc.NumPage()
	var pages []string

	// Timed-out page reads may still hold the document handle. They are
	// collected here and waited on before returning, so the caller's
	// doc.Close never races a read in flight.
	var pending []chan pageResult
	defer func() {
		for _, ch := range pending {
			<-ch
		}
	}()

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.logger.Debug("Extracting page", "page", pageNum+1, "total", numPages)
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			if res.err != nil {
				s.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", res.err)
				continue
			}
			text = res.text
		case <-time.After(pageTimeout):
			s.logger.Warn("Page extraction timeout; using empty page", "page", pageNum+1, "total", numPages)
			pending = append(pending, resultCh)
			continue
		}

		text = normalizeText(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	full := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if full == "" {
		return nil, domain.ErrEmptyDocument
	}

	return &domain.ExtractedText{
		Text:      full,
		PageCount: numPages,
	}, nil
}

// normalizeText collapses PDF line breaks into paragraph-shaped text.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	paragraphs := strings.Split(text, "\n\n")
	var out []string
	for _, para := range paragraphs {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para != "" {
			out = append(out, para)
		}
	}
	return strings.Join(out, "\n\n")
}
