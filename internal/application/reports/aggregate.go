package reports

import "github.com/shopspring/decimal"

// Aggregation helpers. Every aggregate treats an empty collection as zero
// so the ratio calculators can apply their own divide-by-zero policy.

func sumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func averageDecimals(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return sumDecimals(values).Div(decimal.NewFromInt(int64(len(values))))
}

func distinctCount(keys []int64) int {
	seen := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	return len(seen)
}

// ratio divides num by den with the engine-wide policy: a zero denominator
// yields zero rather than an error. This is graceful degradation on sparse
// data, not a zootechnical answer.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// percentage is ratio scaled by 100.
func percentage(num, den int) decimal.Decimal {
	return ratio(decimal.NewFromInt(int64(num)), decimal.NewFromInt(int64(den))).
		Mul(decimal.NewFromInt(100))
}

// round2 rounds at the output boundary only; intermediate arithmetic keeps
// full decimal precision.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
