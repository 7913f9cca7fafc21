package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/seaberger/retirement-calculator/internal/aggregate"
)

func sampleResult() aggregate.Result {
	return aggregate.Result{
		Ages:          []int{60, 61, 62},
		P20:           []float64{1000000, 900000, 800000},
		P50:           []float64{1000000, 1050000, 1100000},
		P80:           []float64{1000000, 1200000, 1400000},
		EndBalanceP20: 800000,
		EndBalanceP50: 1100000,
		EndBalanceP80: 1400000,
		SuccessProb:   0.72,
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormatIncludesAgesAndSuccessProb(t *testing.T) {
	res := sampleResult()
	out := captureStdout(t, func() { PrettyFormat(res) })

	if !strings.Contains(out, "60") || !strings.Contains(out, "62") {
		t.Errorf("output missing expected ages: %s", out)
	}
	if !strings.Contains(out, "Success probability") {
		t.Errorf("output missing success probability line: %s", out)
	}
}

func TestCsvFormatHeaderAndRows(t *testing.T) {
	res := sampleResult()
	out := captureStdout(t, func() { CsvFormat(res) })

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != `"age","p20","p50","p80"` {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if len(lines) != len(res.Ages)+2 {
		t.Fatalf("expected %d lines (header + %d ages + summary), got %d", len(res.Ages)+2, len(res.Ages), len(lines))
	}
}

func TestJsonFormatRoundTrips(t *testing.T) {
	res := sampleResult()
	out := captureStdout(t, func() {
		if err := JsonFormat(res); err != nil {
			t.Fatalf("JsonFormat: %v", err)
		}
	})

	var decoded jsonResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if len(decoded.Ages) != len(res.Ages) {
		t.Errorf("decoded Ages length = %d, want %d", len(decoded.Ages), len(res.Ages))
	}
	if decoded.SuccessProb != res.SuccessProb {
		t.Errorf("decoded SuccessProb = %v, want %v", decoded.SuccessProb, res.SuccessProb)
	}
	if decoded.EndBalancePercentiles.P50 != res.EndBalanceP50 {
		t.Errorf("decoded EndBalancePercentiles.P50 = %v, want %v", decoded.EndBalancePercentiles.P50, res.EndBalanceP50)
	}
}
