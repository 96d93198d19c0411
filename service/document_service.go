package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/minhtran-dev/studynotes-be/types"
)

// DocumentProcessor extracts plain text out of an uploaded file. Binary
// format handling lives behind this interface; the generation core only
// ever sees the extracted text.
type DocumentProcessor interface {
	Extract(ctx context.Context, path string) (types.ExtractedDocument, error)
}

// AudioTranscriber turns an audio file into text. Provided by an external
// collaborator; this service only consumes the result.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, path string) (types.Transcript, error)
}

// LinkScraper fetches readable text for a URL. Provided by an external
// collaborator; this service only consumes the result.
type LinkScraper interface {
	Scrape(ctx context.Context, url string) (types.Transcript, error)
}

// TextProcessor handles plain-text style uploads (txt, md).
type TextProcessor struct{}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{}
}

func (p *TextProcessor) Extract(ctx context.Context, path string) (types.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ExtractedDocument{}, fmt.Errorf("failed to read file: %w", err)
	}
	mimeType := "text/plain"
	if strings.EqualFold(filepath.Ext(path), ".md") {
		mimeType = "text/markdown"
	}
	return types.ExtractedDocument{
		Text:     cleanExtractedText(string(data)),
		MimeType: mimeType,
	}, nil
}

// PDFProcessor extracts PDF text page by page through the poppler
// utilities (pdfinfo, pdftotext).
type PDFProcessor struct {
	logger *logrus.Entry
}

func NewPDFProcessor() *PDFProcessor {
	return &PDFProcessor{logger: logrus.WithField("service", "pdf")}
}

func (p *PDFProcessor) Extract(ctx context.Context, path string) (types.ExtractedDocument, error) {
	totalPages, err := getNumPages(ctx, path)
	if err != nil {
		return types.ExtractedDocument{}, err
	}

	var pages []string
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := extractPageText(ctx, path, pageNum)
		if err != nil {
			// Skip unreadable pages instead of failing the whole document.
			p.logger.WithField("page", pageNum).WithError(err).Warn("failed to extract page text")
			continue
		}
		if text = cleanExtractedText(text); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return types.ExtractedDocument{}, fmt.Errorf("no extractable text in %s", filepath.Base(path))
	}
	return types.ExtractedDocument{
		Text:     strings.Join(pages, "\n"),
		MimeType: "application/pdf",
	}, nil
}

func extractPageText(ctx context.Context, path string, pageNumber int) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed on page %d: %w", pageNumber, err)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("got nothing at page %d", pageNumber)
	}
	return text, nil
}

var pdfPagesRE = regexp.MustCompile(`Pages:\s+(\d+)`)

// getNumPages uses pdfinfo to get the total number of pages in a PDF file.
func getNumPages(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, "pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pdfPagesRE.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

// Cleanup rules run in order: form feeds become newlines before the
// whitespace collapse sees them.
var textCleanups = []struct {
	old string
	new string
}{
	{"\u0000", ""},
	{"\ufffd", ""},
	{"\u001b", ""},
	{"\r", ""},
	{"\f", "\n"},
	{"  ", " "},
}

func cleanExtractedText(text string) string {
	cleaned := text
	for _, r := range textCleanups {
		cleaned = strings.ReplaceAll(cleaned, r.old, r.new)
	}
	return strings.TrimSpace(cleaned)
}
