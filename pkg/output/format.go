// Package output formats a completed simulation result for display: a
// human-readable table, CSV, or JSON.
package output

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/seaberger/retirement-calculator/internal/aggregate"
)

// currency renders amount as a locale-grouped dollar figure (e.g.
// "$1,234,567.89"), letting p's locale-aware numeric formatting handle
// thousands separators rather than hand-rolling digit grouping.
func currency(p *message.Printer, amount float64) string {
	return p.Sprintf("$%.2f", amount)
}

// PrettyFormat prints a human-readable age-by-age percentile table
// followed by the end-balance percentiles and success probability.
func PrettyFormat(res aggregate.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("Age  | p20            | p50            | p80\n")
	fmt.Printf("___  | _____________  | _____________  | _____________\n")
	for i, age := range res.Ages {
		_, _ = p.Printf("%3d  | %-14s | %-14s | %-14s\n",
			age, currency(p, res.P20[i]), currency(p, res.P50[i]), currency(p, res.P80[i]))
	}
	fmt.Println()
	_, _ = p.Printf("End balance: p20=%s  p50=%s  p80=%s\n",
		currency(p, res.EndBalanceP20), currency(p, res.EndBalanceP50), currency(p, res.EndBalanceP80))
	_, _ = p.Printf("Success probability: %.1f%%\n", res.SuccessProb*100)
}

// CsvFormat writes the age-by-age percentile table as CSV, followed by two
// trailing summary rows: one for the end-balance percentiles and one for
// the success probability.
func CsvFormat(res aggregate.Result) {
	fmt.Printf(`"age","p20","p50","p80"` + "\n")
	for i, age := range res.Ages {
		fmt.Printf(`%d,"%.2f","%.2f","%.2f"`+"\n", age, res.P20[i], res.P50[i], res.P80[i])
	}
	fmt.Printf(`"end_balance","%.2f","%.2f","%.2f"`+"\n", res.EndBalanceP20, res.EndBalanceP50, res.EndBalanceP80)
	fmt.Printf(`"success_prob","%.4f"`+"\n", res.SuccessProb)
}

// jsonResult is the wire shape for JsonFormat, matching spec.md §6's
// external interface exactly.
type jsonResult struct {
	Ages                  []int          `json:"ages"`
	P20                   []float64      `json:"p20"`
	P50                   []float64      `json:"p50"`
	P80                   []float64      `json:"p80"`
	EndBalancePercentiles endBalanceJSON `json:"end_balance_percentiles"`
	SuccessProb           float64        `json:"success_prob"`
}

type endBalanceJSON struct {
	P20 float64 `json:"p20"`
	P50 float64 `json:"p50"`
	P80 float64 `json:"p80"`
}

// JsonFormat marshals the result to indented JSON on stdout.
func JsonFormat(res aggregate.Result) error {
	out := jsonResult{
		Ages: res.Ages,
		P20:  res.P20,
		P50:  res.P50,
		P80:  res.P80,
		EndBalancePercentiles: endBalanceJSON{
			P20: res.EndBalanceP20,
			P50: res.EndBalanceP50,
			P80: res.EndBalanceP80,
		},
		SuccessProb: res.SuccessProb,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
