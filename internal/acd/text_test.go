package acd_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"mod6/internal/acd"
	"mod6/internal/record"
	"mod6/internal/testsupport"
)

func TestDecodeTextMatchesBinary(t *testing.T) {
	for _, k := range acd.KCounts() {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			records := testsupport.ACDRecords(3, int(k))
			table, err := acd.DecodeText(strings.NewReader(testsupport.EncodeACDText(records)))
			if err != nil {
				t.Fatalf("DecodeText returned error: %v", err)
			}
			b, err := acd.DecodeBinary(testsupport.EncodeACDBinary(testsupport.ACDHeader(k), records), true)
			if err != nil {
				t.Fatalf("DecodeBinary returned error: %v", err)
			}
			if table.Len() != len(records) {
				t.Fatalf("expected %d rows, got %d", len(records), table.Len())
			}
			if !table.Equal(b.Records) {
				t.Fatal("text and binary tables differ")
			}
		})
	}
}

func TestReadTextFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteBytes(t, dir, "case0.acd", []byte(testsupport.EncodeACDText(testsupport.ACDRecords(2, 1))))
	table, err := acd.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText returned error: %v", err)
	}
	kInt, ok := table.Int32(acd.FieldKInt)
	if !ok || len(kInt) != 2 || kInt[1] != 1 {
		t.Fatalf("unexpected k_int column: %v", kInt)
	}
	if _, err := acd.ReadText(filepath.Join(dir, "missing.acd")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeTextErrors(t *testing.T) {
	header := strings.Repeat("header\n", acd.TextHeaderLines)
	tests := map[string]string{
		"no records":   header,
		"short row":    header + "2000.0 1 1 1.0 0.5\n",
		"bad integer":  header + "2000.0 x 1 1.0 0.1 0.2 0.3 0.4 0.5\n",
		"bad floating": header + "2000.0 1 1 one 0.1 0.2 0.3 0.4 0.5\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := acd.DecodeText(strings.NewReader(body)); !errors.Is(err, record.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}
