// Package tutorials serves the static learning catalog: filtering by title
// and category, sorting, and per-user bookmarks.
package tutorials

// Categories
const (
	CategoryAll          = "All"
	CategoryBeginner     = "Beginner"
	CategoryIntermediate = "Intermediate"
	CategoryAdvanced     = "Advanced"
)

// Categories lists the selectable categories in display order.
var Categories = []string{CategoryBeginner, CategoryIntermediate, CategoryAdvanced}

// Tutorial is one catalog entry.
type Tutorial struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Catalog is the built-in list of tutorials, in display order.
var Catalog = []Tutorial{
	{ID: 1, Title: "What is a Stock? – Investopedia", URL: "https://www.investopedia.com/terms/s/stock.asp", Category: CategoryBeginner},
	{ID: 2, Title: "Stock Market for Beginners – YouTube (Ryan Scribner)", URL: "https://www.youtube.com/watch?v=p7HKvqRI_Bo", Category: CategoryBeginner},
	{ID: 3, Title: "How to Trade Stocks – NerdWallet", URL: "https://www.nerdwallet.com/article/investing/how-to-trade-stocks", Category: CategoryBeginner},
	{ID: 4, Title: "How to Invest in Stocks – The Motley Fool", URL: "https://www.fool.com/investing/how-to-invest/stocks/", Category: CategoryIntermediate},
	{ID: 5, Title: "Stock & Bonds Basics – Khan Academy", URL: "https://www.khanacademy.org/economics-finance-domain/core-finance/stock-and-bonds", Category: CategoryBeginner},
	{ID: 6, Title: "How the Stock Market Works – YouTube (Wealth Hacker)", URL: "https://www.youtube.com/watch?v=9xjP7cSdfqI", Category: CategoryBeginner},
	{ID: 7, Title: "Robinhood Learn – Trading Basics, Strategy, and Terms", URL: "https://www.robinhood.com/learn", Category: CategoryIntermediate},
	{ID: 8, Title: "FINRA Investor Education", URL: "https://www.finra.org/investors/learn-to-invest", Category: CategoryAdvanced},
}

// Lookup finds a tutorial by id.
func Lookup(catalog []Tutorial, id int) (Tutorial, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}
