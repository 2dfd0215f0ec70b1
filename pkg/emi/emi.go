// Package emi computes equated monthly installments for a loan using the
// standard amortization formula EMI = P*r*(1+r)^n / ((1+r)^n - 1), where r
// is the monthly rate and n the number of installments.
package emi

import "math"

// Quote is the result of one EMI calculation.
type Quote struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"totalPayment"`
	TotalInterest float64 `json:"totalInterest"`
	Months        int     `json:"months"`
}

// Calculate returns the monthly installment for a principal borrowed at an
// annual percentage rate over the given number of years. A zero rate
// degrades to straight division of the principal across the term.
func Calculate(principal, annualRate float64, years int) Quote {
	months := years * 12

	var installment float64
	if annualRate == 0 {
		installment = principal / float64(months)
	} else {
		r := annualRate / 12 / 100
		f := math.Pow(1+r, float64(months))
		installment = principal * r * f / (f - 1)
	}

	total := installment * float64(months)
	return Quote{
		EMI:           installment,
		TotalPayment:  total,
		TotalInterest: total - principal,
		Months:        months,
	}
}

// Round2 rounds a value to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
