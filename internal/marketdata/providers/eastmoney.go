package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/httputil"
	"github.com/wonny/goldcross/pkg/logger"
)

// Eastmoney serves daily klines, the A-share listing and the
// fundamental snapshot from the eastmoney push2 APIs. It is the primary
// source for all three concerns.
type Eastmoney struct {
	client      *httputil.Client
	log         *logger.Logger
	baseURL     string
	listBaseURL string
}

// NewEastmoney builds the adapter. The kline API lives on the push2his
// host and the list API on its push2 sibling; deriving one from the
// other keeps a single base URL in config and lets tests point both at
// one server.
func NewEastmoney(client *httputil.Client, log *logger.Logger, baseURL string) *Eastmoney {
	return &Eastmoney{
		client:      client,
		log:         log,
		baseURL:     strings.TrimRight(baseURL, "/"),
		listBaseURL: strings.Replace(strings.TrimRight(baseURL, "/"), "push2his", "push2", 1),
	}
}

func (e *Eastmoney) Name() string { return "eastmoney" }

type emKlineResponse struct {
	Data *struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchSeries pulls up to days of forward-adjusted daily bars.
// Each kline entry is a comma-joined record of
// date,open,close,high,low,volume,amount.
func (e *Eastmoney) FetchSeries(ctx context.Context, code string, days int) (contracts.PriceSeries, error) {
	q := url.Values{}
	q.Set("secid", secID(code))
	q.Set("fields1", "f1,f2,f3,f4,f5,f6")
	q.Set("fields2", "f51,f52,f53,f54,f55,f56,f57")
	q.Set("klt", "101")
	q.Set("fqt", "1")
	q.Set("end", "20500101")
	q.Set("lmt", fmt.Sprintf("%d", days))

	reqURL := fmt.Sprintf("%s/api/qt/stock/kline/get?%s", e.baseURL, q.Encode())

	resp, err := e.client.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("eastmoney kline request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("eastmoney kline: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney kline read: %w", err)
	}

	var parsed emKlineResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("eastmoney kline decode: %w", err)
	}
	if parsed.Data == nil || len(parsed.Data.Klines) == 0 {
		return nil, fmt.Errorf("eastmoney kline: no data for %s", code)
	}

	series := make(contracts.PriceSeries, 0, len(parsed.Data.Klines))
	for _, line := range parsed.Data.Klines {
		bar, err := parseKlineRecord(line)
		if err != nil {
			return nil, fmt.Errorf("eastmoney kline record: %w", err)
		}
		series = append(series, bar)
	}
	return clipLookback(series, days), nil
}

func parseKlineRecord(line string) (contracts.PriceBar, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return contracts.PriceBar{}, fmt.Errorf("short record %q", line)
	}

	date, err := time.ParseInLocation("2006-01-02", fields[0], time.UTC)
	if err != nil {
		return contracts.PriceBar{}, err
	}

	values := make([]float64, 5)
	for i, raw := range fields[1:6] {
		v, err := parseFloat(raw)
		if err != nil {
			return contracts.PriceBar{}, err
		}
		values[i] = v
	}

	return contracts.PriceBar{
		Date:   date,
		Open:   values[0],
		Close:  values[1],
		High:   values[2],
		Low:    values[3],
		Volume: values[4],
	}, nil
}

// emValue decodes the push2 list API values, which arrive as numbers
// but degrade to the string "-" when the figure is unavailable.
type emValue struct {
	v  float64
	ok bool
}

func (e *emValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "-" || s == "null" || s == "" {
		e.ok = false
		return nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return err
	}
	e.v, e.ok = v, true
	return nil
}

func (e emValue) ptr() *float64 {
	if !e.ok {
		return nil
	}
	v := e.v
	return &v
}

type emListRow struct {
	Code          string  `json:"f12"`
	Name          string  `json:"f14"`
	Price         emValue `json:"f2"`
	Volume        emValue `json:"f5"`
	PE            emValue `json:"f9"`
	MarketCap     emValue `json:"f20"`
	PB            emValue `json:"f23"`
	ROE           emValue `json:"f37"`
	RevenueGrowth emValue `json:"f40"`
	ProfitMargin  emValue `json:"f45"`
	DividendYield emValue `json:"f133"`
}

type emListResponse struct {
	Data *struct {
		Total int         `json:"total"`
		Diff  []emListRow `json:"diff"`
	} `json:"data"`
}

const emListFilter = "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23"

func (e *Eastmoney) fetchList(ctx context.Context, pageSize int) ([]emListRow, error) {
	q := url.Values{}
	q.Set("pn", "1")
	q.Set("pz", fmt.Sprintf("%d", pageSize))
	q.Set("po", "1")
	q.Set("np", "1")
	q.Set("fltt", "2")
	q.Set("invt", "2")
	q.Set("fid", "f20")
	q.Set("fs", emListFilter)
	q.Set("fields", "f2,f5,f9,f12,f14,f20,f23,f37,f40,f45,f133")

	reqURL := fmt.Sprintf("%s/api/qt/clist/get?%s", e.listBaseURL, q.Encode())

	resp, err := e.client.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("eastmoney list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("eastmoney list: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney list read: %w", err)
	}

	var parsed emListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("eastmoney list decode: %w", err)
	}
	if parsed.Data == nil || len(parsed.Data.Diff) == 0 {
		return nil, fmt.Errorf("eastmoney list: empty response")
	}
	return parsed.Data.Diff, nil
}

// FetchUniverse lists all A-share symbols, largest market cap first.
func (e *Eastmoney) FetchUniverse(ctx context.Context) ([]contracts.Symbol, error) {
	rows, err := e.fetchList(ctx, 6000)
	if err != nil {
		return nil, err
	}

	symbols := make([]contracts.Symbol, 0, len(rows))
	for _, row := range rows {
		if row.Code == "" {
			continue
		}
		symbols = append(symbols, contracts.Symbol{
			Code: QualifyCode(row.Code),
			Name: row.Name,
		})
	}
	return symbols, nil
}

// FetchFundamentals returns the fundamental snapshot for the factor
// strategies. Percent figures from the API are converted to ratios.
func (e *Eastmoney) FetchFundamentals(ctx context.Context) ([]contracts.StockData, error) {
	rows, err := e.fetchList(ctx, 6000)
	if err != nil {
		return nil, err
	}

	stocks := make([]contracts.StockData, 0, len(rows))
	for _, row := range rows {
		if row.Code == "" {
			continue
		}
		stocks = append(stocks, contracts.StockData{
			Symbol: contracts.Symbol{Code: QualifyCode(row.Code), Name: row.Name},
			Fundamentals: contracts.Fundamentals{
				Price:         row.Price.ptr(),
				Volume:        row.Volume.ptr(),
				PE:            row.PE.ptr(),
				PB:            row.PB.ptr(),
				MarketCap:     row.MarketCap.ptr(),
				ROE:           percentToRatio(row.ROE.ptr()),
				RevenueGrowth: percentToRatio(row.RevenueGrowth.ptr()),
				ProfitMargin:  percentToRatio(row.ProfitMargin.ptr()),
				DividendYield: percentToRatio(row.DividendYield.ptr()),
			},
		})
	}
	return stocks, nil
}

func percentToRatio(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p / 100
	return &v
}
