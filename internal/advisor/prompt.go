package advisor

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the advice prompt for req. Amounts are formatted to
// two decimals and prefixed with the request's currency symbol.
func BuildPrompt(req Request) string {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		item = "an unnamed item"
	}
	money := func(s string) string { return req.Currency + s }

	var b strings.Builder
	b.WriteString("You are a blunt but friendly financial coach for a university student.\n")
	fmt.Fprintf(&b, "They have %s of spendable cash left for the next %d days, ",
		money(req.AvailableCash.StringFixed(2)), req.DaysRemaining)
	fmt.Fprintf(&b, "which works out to a safe daily budget of %s.\n", money(req.DailyBudget.StringFixed(2)))
	fmt.Fprintf(&b, "They want to buy %s for %s.\n", item, money(req.Price.StringFixed(2)))
	b.WriteString("In at most three short sentences, say whether this is a good idea ")
	b.WriteString("and suggest one cheaper alternative if it is not.")
	return b.String()
}
