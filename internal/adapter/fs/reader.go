package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookcheck/internal/domain"
	"github.com/ledongthuc/pdf"
)

// Reader loads document text. PDF files are converted to plain text; every
// other file is read as UTF-8.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadText returns the text of path. Failures are *domain.FileReadError.
func (r *Reader) ReadText(path string) (string, error) {
	var (
		text string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDF(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		return "", &domain.FileReadError{Path: path, Err: err}
	}
	return text, nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}
