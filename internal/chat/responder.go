// Package chat implements the trading assistant: an ordered keyword ladder
// that picks a canned answer, plus in-memory conversations.
package chat

import "strings"

// Greeting opens every conversation.
const Greeting = "Hi! I'm your trading assistant. Ask me about stocks, portfolio, or tutorials!"

// Fallback is returned when no rule matches.
const Fallback = "I'm not sure how to help with that. Try asking about trading, stocks, portfolios, or tutorials!"

// Rule answers with Response when the lower-cased input contains any of Keywords.
type Rule struct {
	Keywords []string
	Response string
}

// Matches reports whether lowered contains one of the rule's keywords.
func (r Rule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// DefaultRules is the assistant's ladder. Earlier rules win.
var DefaultRules = []Rule{
	{
		Keywords: []string{"what is stock trading", "explain stock trading"},
		Response: "Stock trading means buying and selling shares of companies through a stock exchange, aiming to make a profit.",
	},
	{
		Keywords: []string{"what is trading"},
		Response: "Trading is the act of buying and selling financial assets like stocks, bonds, or cryptocurrencies to make profits.",
	},
	{
		Keywords: []string{"how can we buy", "how to buy", "how do i buy", "buy or sell stocks"},
		Response: "You can buy or sell stocks in this app by going to the 'Stocks' page, selecting a stock, and choosing the quantity.",
	},
	{
		Keywords: []string{"explain stock", "what is a stock", "what are stocks", "what is stocks"},
		Response: "A stock represents ownership in a company. When you own a stock, you're a partial owner of that company.",
	},
	{
		Keywords: []string{"portfolio"},
		Response: "Your portfolio shows all the stocks you currently own. Go to the 'Portfolio' page to view or manage them.",
	},
	{
		Keywords: []string{"tutorial"},
		Response: "Check out the 'Tutorial' page in the app. It guides you through how to trade, invest, and use this platform.",
	},
	{
		Keywords: []string{"hi", "hello"},
		Response: "Hello! Ask me about trading, portfolios, or how to use this app.",
	},
}

// Responder walks a rule ladder.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder builds a responder over rules with the given fallback.
func NewResponder(rules []Rule, fallback string) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// Respond returns the first matching rule's response, or the fallback.
func (r *Responder) Respond(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range r.rules {
		if rule.Matches(lowered) {
			return rule.Response
		}
	}
	return r.fallback
}
