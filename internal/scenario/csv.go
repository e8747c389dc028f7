package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParsePeaksCSV parses a monthly peak export.
//
// Expected format:
//
//	label,max_demand_kw
//	May,3114
func ParsePeaksCSV(r io.Reader) ([]MonthlyPeak, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validatePeaksHeader(header); err != nil {
		return nil, err
	}

	var months []MonthlyPeak
	lineNum := 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}

		m, err := parsePeakRecord(record, lineNum)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}

	if len(months) == 0 {
		return nil, fmt.Errorf("no peak records found")
	}
	return months, nil
}

func validatePeaksHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("expected at least 2 columns, got %d", len(header))
	}
	expected := []string{"label", "max_demand_kw"}
	for i, col := range expected {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i, col, header[i])
		}
	}
	return nil
}

func parsePeakRecord(record []string, lineNum int) (MonthlyPeak, error) {
	if len(record) < 2 {
		return MonthlyPeak{}, fmt.Errorf("line %d: expected 2 fields, got %d", lineNum, len(record))
	}
	label := strings.TrimSpace(record[0])
	if label == "" {
		return MonthlyPeak{}, fmt.Errorf("line %d: empty label", lineNum)
	}
	kw, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return MonthlyPeak{}, fmt.Errorf("line %d: parsing max_demand_kw: %w", lineNum, err)
	}
	if kw < 0 {
		return MonthlyPeak{}, fmt.Errorf("line %d: max_demand_kw must be >= 0", lineNum)
	}
	return MonthlyPeak{Label: label, MaxDemandKW: kw}, nil
}
