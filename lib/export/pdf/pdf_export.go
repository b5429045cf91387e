package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"talentflow-backend/lib/assessment/builder"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// FontDir каталог с Arial*.ttf, без него используется встроенный Helvetica (только латиница)
var FontDir = "static/font/"

var typeTitles = map[builder.QuestionType]string{
	builder.TypeShort:   "Short answer",
	builder.TypeLong:    "Long answer",
	builder.TypeSingle:  "Single choice",
	builder.TypeMulti:   "Multiple choice",
	builder.TypeNumeric: "Number",
}

type writer struct {
	pdf    *fpdf.Fpdf
	font   string
	encode func(string) string
}

func newWriter() *writer {
	w := &writer{}
	if _, err := os.Stat(filepath.Join(FontDir, "Arial.ttf")); err == nil {
		w.pdf = fpdf.New("P", "mm", "A4", FontDir)
		w.pdf.AddUTF8Font("Arial", "", "Arial.ttf")
		w.pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
		w.pdf.AddUTF8Font("Arial", "I", "Arial Italic.ttf")
		w.font = "Arial"
		w.encode = func(s string) string { return s }
		return w
	}
	w.pdf = fpdf.New("P", "mm", "A4", "")
	w.font = "Helvetica"
	w.encode = w.pdf.UnicodeTranslatorFromDescriptor("")
	return w
}

func (w *writer) text(style string, size float64, lineHt float64, value string) {
	w.pdf.SetFont(w.font, style, size)
	w.pdf.MultiCell(0, lineHt, w.encode(value), "", "L", false)
}

// GenerateAssessment печатная форма теста: разделы, вопросы, варианты ответа и поля для заполнения
func GenerateAssessment(doc builder.Document) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateAssessment panic recover: %v", r)
		}
	}()
	w := newWriter()
	pdf := w.pdf
	pdf.SetTitle(w.encode(doc.Title), false)
	pdf.AddPage()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	title := doc.Title
	if title == "" {
		title = "Assessment"
	}
	w.text("B", 18, 9, title)
	if doc.JobID != "" {
		w.text("I", 10, 6, fmt.Sprintf("Job #%s", doc.JobID))
	}
	pdf.Ln(4)

	number := 0
	for _, section := range doc.Sections {
		w.text("B", 14, 8, section.Title)
		pdf.Ln(1)
		if len(section.Questions) == 0 {
			w.text("I", 10, 6, "No questions")
		}
		for _, question := range section.Questions {
			number++
			label := fmt.Sprintf("%d. %s", number, question.Label)
			if question.Required {
				label += " *"
			}
			w.text("B", 11, 6, label)
			w.text("I", 9, 5, describe(question))
			for _, option := range question.Options() {
				w.text("", 11, 6, "[  ] "+option)
			}
			switch question.Type() {
			case builder.TypeShort, builder.TypeNumeric:
				w.text("", 11, 6, strings.Repeat("_", 60))
			case builder.TypeLong:
				for k := 0; k < 3; k++ {
					w.text("", 11, 6, strings.Repeat("_", 60))
				}
			}
			pdf.Ln(3)
		}
		pdf.Ln(2)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func describe(question builder.Question) string {
	result := typeTitles[question.Type()]
	switch body := question.Body.(type) {
	case builder.LongText:
		if body.MaxLength != nil {
			result += fmt.Sprintf(", up to %d characters", *body.MaxLength)
		}
	case builder.Numeric:
		if body.Min != nil {
			result += fmt.Sprintf(", min %v", *body.Min)
		}
		if body.Max != nil {
			result += fmt.Sprintf(", max %v", *body.Max)
		}
	}
	return result
}
