package contracts

// Fundamentals carries the per-symbol fundamental snapshot used by the
// factor strategies. Optional fields are pointers; nil means the data
// source did not report the figure and each strategy decides whether the
// symbol passes or is excluded.
type Fundamentals struct {
	MarketCap     *float64 `json:"market_cap,omitempty"`
	PE            *float64 `json:"pe,omitempty"`
	PB            *float64 `json:"pb,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	ROE           *float64 `json:"roe,omitempty"`
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
}

// StockData bundles everything the scoring engine needs for one symbol.
type StockData struct {
	Symbol       Symbol       `json:"symbol"`
	Series       PriceSeries  `json:"series,omitempty"`
	Fundamentals Fundamentals `json:"fundamentals"`
}

// Float returns the dereferenced value, or def when the pointer is nil.
func Float(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// FloatPtr is a literal helper for tests and adapters.
func FloatPtr(v float64) *float64 { return &v }
