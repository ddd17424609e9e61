package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"google.golang.org/genai"
)

var errUnsupportedFormat = errors.New("unsupported file type")

// resumeExtensions lists the supported formats in the order document
// resolution probes them.
var resumeExtensions = []string{".pdf", ".docx", ".png", ".jpg", ".jpeg"}

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

func supportedExtension(ext string) bool {
	for _, known := range resumeExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// textExtractor turns stored document bytes into plain text. Raster images
// are delegated to the reader agent, which OCRs them through Gemini. A blank
// result is not an error here; callers decide what blank means.
type textExtractor struct {
	ocr textGenerator
}

func (e *textExtractor) extract(ctx context.Context, ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".png", ".jpg", ".jpeg":
		return e.extractImageText(ctx, strings.ToLower(ext), data)
	default:
		return "", fmt.Errorf("%w: %s", errUnsupportedFormat, ext)
	}
}

// extractPDFText concatenates the plain text of every page. Pages with no
// extractable text (scanned pages, pure images) contribute nothing instead
// of failing the document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		if text == "" {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return flattenDocxContent(doc.Editable().GetContent()), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

// flattenDocxContent reduces the document.xml markup to paragraph text,
// one paragraph per line.
func flattenDocxContent(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

func (e *textExtractor) extractImageText(ctx context.Context, ext string, data []byte) (string, error) {
	text, err := e.ocr.Generate(ctx, "ocr",
		&genai.Part{Text: ocrPrompt},
		&genai.Part{InlineData: &genai.Blob{
			MIMEType: imageMimeTypes[ext],
			Data:     data,
		}},
	)
	if err != nil {
		// An image with no recognizable text is a valid, empty result.
		if errors.Is(err, errEmptyModelResponse) {
			return "", nil
		}
		return "", fmt.Errorf("image ocr failed: %w", err)
	}
	return text, nil
}
