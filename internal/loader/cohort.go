package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"yhstat/internal/dataset"
	"yhstat/pkg/contracts/domain"
)

// ReadCohortCSV loads the yearly admitted-student table. The file carries
// three leading text columns (gender, education area, age group) followed by
// one column per year; year columns are recognized by their all-digit names.
// Statistics Sweden publishes the file in latin1, so the encoding is
// configurable.
func ReadCohortCSV(path, encoding string) ([]domain.CohortRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cohort file %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.EqualFold(encoding, "latin1") {
		reader = charmap.ISO8859_1.NewDecoder().Reader(file)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse cohort file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	yearCols := map[int]int{}
	textCols := make([]int, 0, 3)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if year, ok := parseYearColumn(name); ok {
			yearCols[i] = year
		} else {
			textCols = append(textCols, i)
		}
	}
	if len(textCols) < 3 {
		return nil, fmt.Errorf("cohort file %s: expected gender, education area, and age group columns, found %d text columns", path, len(textCols))
	}
	if len(yearCols) == 0 {
		return nil, fmt.Errorf("cohort file %s: no year columns found", path)
	}

	records := make([]domain.CohortRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if !rowHasContent(row) {
			continue
		}
		rec := domain.CohortRecord{
			Gender:        cellTrim(row, textCols[0]),
			EducationArea: cellTrim(row, textCols[1]),
			AgeGroup:      cellTrim(row, textCols[2]),
			YearCounts:    make(map[int]float64, len(yearCols)),
		}
		for idx, year := range yearCols {
			count := 0.0
			if v, ok := dataset.ParseNumber(cellTrim(row, idx)); ok {
				count = v
			}
			rec.YearCounts[year] = count
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Gender != records[j].Gender {
			return records[i].Gender < records[j].Gender
		}
		if records[i].EducationArea != records[j].EducationArea {
			return records[i].EducationArea < records[j].EducationArea
		}
		return records[i].AgeGroup < records[j].AgeGroup
	})

	return records, nil
}

func parseYearColumn(name string) (int, bool) {
	if len(name) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(name)
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	return year, true
}

func cellTrim(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
