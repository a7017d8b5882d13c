package model

import (
	"strconv"
	"strings"
)

// FullyFunded reports whether raised has reached budget.
func FullyFunded(raised, budget int64) bool {
	return budget > 0 && raised >= budget
}

func FormatEuros(amount int64) string {
	return groupThousands(strconv.FormatInt(amount, 10)) + " €"
}

func FormatFunding(raised, budget int64) string {
	if budget <= 0 {
		return "Sin presupuesto"
	}
	return FormatEuros(raised) + " de " + FormatEuros(budget)
}

func groupThousands(input string) string {
	neg := strings.HasPrefix(input, "-")
	if neg {
		input = strings.TrimPrefix(input, "-")
	}
	if len(input) <= 3 {
		if neg {
			return "-" + input
		}
		return input
	}

	n := len(input)
	first := n % 3
	if first == 0 {
		first = 3
	}

	parts := []string{input[:first]}
	for i := first; i < n; i += 3 {
		parts = append(parts, input[i:i+3])
	}

	result := strings.Join(parts, ".")
	if neg {
		return "-" + result
	}
	return result
}
