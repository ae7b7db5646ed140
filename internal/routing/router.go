// Package routing classifies a question to the responder best suited
// to answer it. Classification is a pure function over the query text;
// it is fully decoupled from the retrieval pipeline and never blocks
// a question from being answered.
package routing

import "strings"

// Responder identifies the subsystem a question is routed to.
type Responder string

// The closed set of responders.
const (
	// ResponderFilings answers from the indexed filings corpus.
	ResponderFilings Responder = "filings"

	// ResponderMarketNews needs live market data (prices, news) that
	// the corpus cannot hold.
	ResponderMarketNews Responder = "market_news"

	// ResponderAnalytics asks for forecasts or statistical evaluation
	// beyond grounded question answering.
	ResponderAnalytics Responder = "analytics"
)

// marketNewsKeywords mark questions about live prices and headlines.
var marketNewsKeywords = []string{
	"current", "today", "latest", "news", "headline",
	"stock price", "share price", "quote", "closing price", "ticker",
	"right now", "real-time", "live",
}

// analyticsKeywords mark questions asking for projection rather than
// recollection.
var analyticsKeywords = []string{
	"forecast", "predict", "projection", "outlook for next",
	"trend analysis", "estimate next", "will the stock", "valuation model",
}

// Classify returns the responder for the question. Questions that
// match no live-data or analytics keyword default to the filings
// corpus, which is the only responder this tool implements itself.
func Classify(question string) Responder {
	q := strings.ToLower(question)

	for _, kw := range marketNewsKeywords {
		if strings.Contains(q, kw) {
			return ResponderMarketNews
		}
	}
	for _, kw := range analyticsKeywords {
		if strings.Contains(q, kw) {
			return ResponderAnalytics
		}
	}
	return ResponderFilings
}
