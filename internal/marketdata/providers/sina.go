package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/httputil"
	"github.com/wonny/goldcross/pkg/logger"
)

// Sina serves daily klines from the sina finance kline service. Last in
// the fallback order; the endpoint is throttled harder than the others.
type Sina struct {
	client  *httputil.Client
	log     *logger.Logger
	baseURL string
}

func NewSina(client *httputil.Client, log *logger.Logger, baseURL string) *Sina {
	return &Sina{
		client:  client,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Sina) Name() string { return "sina" }

type sinaBar struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

// FetchSeries pulls daily bars. scale=240 selects the daily interval.
func (s *Sina) FetchSeries(ctx context.Context, code string, days int) (contracts.PriceSeries, error) {
	reqURL := fmt.Sprintf(
		"%s/quotes_service/api/json_v2.php/CN_MarketData.getKLineData?symbol=%s&scale=240&ma=no&datalen=%d",
		s.baseURL, prefixedCode(code), days,
	)

	resp, err := s.client.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("sina kline request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("sina kline: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sina kline read: %w", err)
	}

	var bars []sinaBar
	if err := json.Unmarshal(body, &bars); err != nil {
		return nil, fmt.Errorf("sina kline decode: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("sina kline: no data for %s", code)
	}

	series := make(contracts.PriceSeries, 0, len(bars))
	for _, b := range bars {
		bar, err := parseSinaBar(b)
		if err != nil {
			return nil, fmt.Errorf("sina kline bar: %w", err)
		}
		series = append(series, bar)
	}
	return clipLookback(series, days), nil
}

func parseSinaBar(b sinaBar) (contracts.PriceBar, error) {
	// intraday intervals carry a time component, daily bars do not
	dateStr := b.Day
	if len(dateStr) > 10 {
		dateStr = dateStr[:10]
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return contracts.PriceBar{}, err
	}

	open, err := parseFloat(b.Open)
	if err != nil {
		return contracts.PriceBar{}, err
	}
	high, err := parseFloat(b.High)
	if err != nil {
		return contracts.PriceBar{}, err
	}
	low, err := parseFloat(b.Low)
	if err != nil {
		return contracts.PriceBar{}, err
	}
	closePrice, err := parseFloat(b.Close)
	if err != nil {
		return contracts.PriceBar{}, err
	}
	volume, err := parseFloat(b.Volume)
	if err != nil {
		return contracts.PriceBar{}, err
	}

	return contracts.PriceBar{
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
