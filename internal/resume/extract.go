// Package resume extracts plain text from uploaded resumes and detects the
// skills mentioned in it.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FileType is a supported resume format.
type FileType string

// Supported resume formats
const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeHTML FileType = "html"
	FileTypeText FileType = "txt"
)

// ErrUnsupportedFileType is returned for extensions other than pdf, docx, html, htm and txt.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// DetectFileType maps a filename extension to a FileType.
func DetectFileType(filename string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileTypePDF, nil
	case ".docx":
		return FileTypeDOCX, nil
	case ".html", ".htm":
		return FileTypeHTML, nil
	case ".txt":
		return FileTypeText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

// ExtractText returns the plain text of a resume with whitespace normalized.
func ExtractText(fileType FileType, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch fileType {
	case FileTypePDF:
		text, err = extractPDFText(data)
	case FileTypeDOCX:
		text, err = extractDocxText(data)
	case FileTypeHTML:
		text, err = extractHTMLText(string(data))
	case FileTypeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text resume is not valid UTF-8")
		}
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return "", err
	}
	return cleanWhitespace(text), nil
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
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

	// The content is raw WordprocessingML; paragraph ends become line breaks
	// before the markup is dropped.
	content := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "</w:p>\n")
	xmlDoc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx content: %w", err)
	}
	return xmlDoc.Text(), nil
}

func extractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav").Remove()
	// Block elements would otherwise run together in Text().
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

// cleanWhitespace trims every line, collapses inner runs of spaces and drops empty lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
