package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"yhstat/internal/dataset"
)

// ReadExcel loads one worksheet into a Frame. The first row with any
// non-empty cell is treated as the header; rows are padded to the header
// width so short rows remain addressable by column.
func ReadExcel(path, sheet string) (*dataset.Frame, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer file.Close()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q in %s: %w", sheet, path, err)
	}

	headerIdx := -1
	for i, row := range rows {
		if rowHasContent(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return dataset.NewFrame(nil, nil), nil
	}

	header := rows[headerIdx]
	width := len(header)

	data := make([][]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if !rowHasContent(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		data = append(data, padded)
	}

	return dataset.NewFrame(header, data), nil
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
