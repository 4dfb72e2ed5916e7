package pdfextract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	rscpdf "rsc.io/pdf"
)

var (
	ErrFileNotFound  = errors.New("pdf file not found")
	ErrEmptyDocument = errors.New("no extractable text in pdf")
)

// ExtractFile extracts plain text from the PDF at path. The primary
// extractor handles most documents; when it fails, a second page-by-page
// extractor is tried before giving up. Callers only see success or failure,
// never which strategy produced the text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("read pdf failed: %w", err)
	}

	text, primaryErr := extractWhole(data)
	if primaryErr != nil || strings.TrimSpace(text) == "" {
		text, err = extractByPage(data)
		if err != nil {
			if primaryErr != nil {
				return "", fmt.Errorf("extract pdf failed: %w (primary: %v)", err, primaryErr)
			}
			return "", fmt.Errorf("extract pdf failed: %w", err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	return text, nil
}

func extractWhole(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}
	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func extractByPage(data []byte) (string, error) {
	reader, err := rscpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, txt := range content.Text {
			sb.WriteString(txt.S)
			sb.WriteString(" ")
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
