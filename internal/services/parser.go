package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// StudentRecord is one parsed row of the uploaded student table, keyed by
// CSV header.
type StudentRecord map[string]string

type TextExtractor interface {
	ExtractText(filePath string, fileType string) (string, error)
	ParseStudentCSV(filePath string) ([]StudentRecord, error)
}

type textExtractor struct {
	docxTags     *regexp.Regexp
	docxParaEnds *regexp.Regexp
}

func NewTextExtractor() TextExtractor {
	return &textExtractor{
		docxTags:     regexp.MustCompile(`<[^>]+>`),
		docxParaEnds: regexp.MustCompile(`</w:p>`),
	}
}

// ExtractText implements TextExtractor. fileType is one of "pdf", "docx",
// "txt".
func (t *textExtractor) ExtractText(filePath string, fileType string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	switch fileType {
	case "pdf":
		return t.extractPDF(filePath)
	case "docx":
		return t.extractDOCX(filePath)
	case "txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func (t *textExtractor) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func (t *textExtractor) extractDOCX(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// GetContent returns document XML; turn paragraph ends into newlines and
	// drop the remaining markup.
	content = t.docxParaEnds.ReplaceAllString(content, "\n")
	content = t.docxTags.ReplaceAllString(content, "")

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}

	return content, nil
}

// ParseStudentCSV implements TextExtractor. Reads the uploaded table into
// header-keyed records. Rows whose cells are all empty are skipped.
func (t *textExtractor) ParseStudentCSV(filePath string) ([]StudentRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	// Exports are often ragged; missing trailing cells become empty values.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	headers := rows[0]
	records := make([]StudentRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := make(StudentRecord, len(headers))
		empty := true
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			record[strings.TrimSpace(header)] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, record)
		}
	}

	return records, nil
}

// DetectFileType maps a filename extension to the extractor's file type.
func DetectFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".txt":
		return "txt"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}
