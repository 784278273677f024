package assistant

import "strings"

// Intent is the analysis branch a query is routed to.
type Intent string

const (
	IntentReorder    Intent = "reorder"
	IntentInvestment Intent = "investment"
	IntentGeneral    Intent = "general"
)

// Keyword lists are checked in this order; the first list with a match wins.
var (
	reorderKeywords    = []string{"reorder", "stock", "inventory", "level", "minimum", "refill", "replenish"}
	investmentKeywords = []string{"invest", "buy", "purchase", "recommend", "best product"}
)

// Route classifies a free-text query by case-insensitive substring match.
// A query that mentions both stock and investing is a reorder query.
func Route(query string) Intent {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, reorderKeywords):
		return IntentReorder
	case containsAny(q, investmentKeywords):
		return IntentInvestment
	default:
		return IntentGeneral
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
