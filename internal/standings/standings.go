// Package standings ranks points-table entries and normalizes their
// display fields. Net run rate is compared with shopspring/decimal so that
// "+0.100" and "+0.1" rank identically.
package standings

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pitchside/live-engine/internal/model"
)

// FormLength is the number of recent results shown per team.
const FormLength = 5

// ParseNRR reads a signed net run rate ("+0.985", "-0.046"). Unreadable
// values count as zero.
func ParseNRR(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatNRR renders a net run rate with an explicit sign and three places.
func FormatNRR(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + d.Abs().StringFixed(3)
	}
	return "+" + d.StringFixed(3)
}

// NormalizeForm upper-cases results and keeps the FormLength most recent.
// Input and output are most-recent-first.
func NormalizeForm(form []string) []string {
	out := make([]string, 0, FormLength)
	for _, r := range form {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		out = append(out, r)
		if len(out) == FormLength {
			break
		}
	}
	return out
}

// Rank orders entries by points, then net run rate, then wins, and assigns
// 1-based positions. The input slice is not modified.
func Rank(entries []model.PointsTableEntry) []model.PointsTableEntry {
	ranked := make([]model.PointsTableEntry, len(entries))
	nrr := make(map[string]decimal.Decimal, len(entries))
	for i, e := range entries {
		e.Form = NormalizeForm(e.Form)
		d := ParseNRR(e.NRR)
		e.NRR = FormatNRR(d)
		nrr[e.Team.ShortName] = d
		ranked[i] = e
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if c := nrr[a.Team.ShortName].Cmp(nrr[b.Team.ShortName]); c != 0 {
			return c > 0
		}
		return a.Won > b.Won
	})

	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
