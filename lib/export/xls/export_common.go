package xlsexport

import (
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	fontFamily   = "Calibri"
	fontSize     = 11
	minColWidth  = 14
	maxColWidth  = 60
	headerHeight = 20
)

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func newStyle(f *excelize.File, horizontal string, bold bool) (int, error) {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: horizontal,
			Vertical:   "center",
			WrapText:   !bold,
		},
		Font: &excelize.Font{
			Bold:   bold,
			Family: fontFamily,
			Size:   fontSize,
		},
	}
	if bold {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}}
	}
	return f.NewStyle(style)
}

// writeHeader пишет строку заголовков после row, закрепляет ее и включает автофильтр.
// Ширина колонки по длине заголовка
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := newStyle(f, "center", true)
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}
	if err = f.SetRowHeight(sheet, row, headerHeight); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
		colName, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return row, err
		}
		if err = f.SetColWidth(sheet, colName, colName, colWidth(value)); err != nil {
			return row, err
		}
	}
	if err = f.AutoFilter(sheet, cellFirst+":"+cellLast, nil); err != nil {
		return row, err
	}
	err = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: "A" + strconv.Itoa(row+1),
		ActivePane:  "bottomLeft",
	})
	return row, err
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := newStyle(f, "left", false)
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}

func colWidth(header string) float64 {
	width := float64(utf8.RuneCountInString(header)) + 4
	if width < minColWidth {
		return minColWidth
	}
	if width > maxColWidth {
		return maxColWidth
	}
	return width
}
