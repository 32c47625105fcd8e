package acd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"mod6/internal/record"
)

// TextHeaderLines is the number of header lines preceding ACD text records.
const TextHeaderLines = 5

// ReadText reads the ACD text file at path.
func ReadText(path string) (*record.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ACD text: %w", err)
	}
	defer f.Close()

	table, err := DecodeText(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// DecodeText parses ACD text records: five header lines, then one record per
// line with whitespace-separated columns in DataLayout order.
func DecodeText(r io.Reader) (*record.Table, error) {
	table := record.NewTable(DataLayout)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= TextHeaderLines {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := parseTextRecord(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := table.AppendRow(words); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ACD text: %w", err)
	}
	if table.Len() == 0 {
		return nil, record.Malformed(DataLayout.Name, "no records after %d header lines", TextHeaderLines)
	}
	return table, nil
}

func parseTextRecord(columns []string) ([]uint32, error) {
	if len(columns) != len(DataLayout.Fields) {
		return nil, record.Mismatch(DataLayout.Name, "column count", len(DataLayout.Fields), len(columns))
	}
	words := make([]uint32, len(columns))
	for i, f := range DataLayout.Fields {
		switch f.Kind {
		case record.Int32:
			v, err := strconv.ParseInt(columns[i], 10, 32)
			if err != nil {
				return nil, record.Malformed(DataLayout.Name, "%s: %v", f.Name, err)
			}
			words[i] = uint32(int32(v))
		default:
			v, err := strconv.ParseFloat(columns[i], 32)
			if err != nil {
				return nil, record.Malformed(DataLayout.Name, "%s: %v", f.Name, err)
			}
			words[i] = math.Float32bits(float32(v))
		}
	}
	return words, nil
}
