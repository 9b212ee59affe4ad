package providers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/httputil"
	"github.com/wonny/goldcross/pkg/logger"
)

// DefaultListingURL is the static eastmoney stock list page. Unlike the
// quote APIs it is plain server-rendered HTML, which makes it a usable
// universe source when the JSON APIs are down.
const DefaultListingURL = "https://quote.eastmoney.com/stock_list.html"

// entries render as "贵州茅台(600519)"
var listingEntryRe = regexp.MustCompile(`^(.+)\((\d{6})\)$`)

// ListingScraper builds the universe by scraping the HTML stock list.
type ListingScraper struct {
	client *httputil.Client
	log    *logger.Logger
	url    string
}

func NewListingScraper(client *httputil.Client, log *logger.Logger, url string) *ListingScraper {
	if url == "" {
		url = DefaultListingURL
	}
	return &ListingScraper{client: client, log: log, url: url}
}

func (l *ListingScraper) Name() string { return "listing-html" }

// FetchUniverse parses every stock link on the listing page. Only main
// board, SME board and ChiNext codes are kept; funds, bonds and indexes
// linked from the same page fail the code prefix check.
func (l *ListingScraper) FetchUniverse(ctx context.Context) ([]contracts.Symbol, error) {
	resp, err := l.client.Get(ctx, l.url)
	if err != nil {
		return nil, fmt.Errorf("listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("listing: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("listing parse: %w", err)
	}

	seen := make(map[string]bool)
	var symbols []contracts.Symbol

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		m := listingEntryRe.FindStringSubmatch(strings.TrimSpace(sel.Text()))
		if m == nil {
			return
		}
		name, bare := m[1], m[2]
		if !isEquityCode(bare) || seen[bare] {
			return
		}
		seen[bare] = true
		symbols = append(symbols, contracts.Symbol{
			Code: QualifyCode(bare),
			Name: name,
		})
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("listing: no stock entries found")
	}
	return symbols, nil
}

func isEquityCode(bare string) bool {
	switch {
	case strings.HasPrefix(bare, "60"),
		strings.HasPrefix(bare, "00"),
		strings.HasPrefix(bare, "30"):
		return true
	}
	return false
}
