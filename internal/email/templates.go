package email

import (
	"fmt"
	"strings"
)

// BuildPaymentConfirmationBody renders the plain-text receipt body.
func BuildPaymentConfirmationBody(orderID string, amount, remainingBalance int) string {
	var b strings.Builder
	b.WriteString("Thank you for your order.\n\n")
	fmt.Fprintf(&b, "Order:             %s\n", orderID)
	fmt.Fprintf(&b, "Amount charged:    %s points\n", formatNumber(amount))
	fmt.Fprintf(&b, "Remaining balance: %s points\n", formatNumber(remainingBalance))
	b.WriteString("\nIf you did not place this order, please contact support.\n")
	return b.String()
}

// formatNumber inserts thousands separators: 1234567 -> "1,234,567".
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if n < 0 {
		out = "-" + out
	}
	return out
}
