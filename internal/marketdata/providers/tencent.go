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

// Tencent serves daily klines from the ifzq gtimg API. Universe and
// fundamentals are out of its reach; it only backs up the price path.
type Tencent struct {
	client  *httputil.Client
	log     *logger.Logger
	baseURL string
}

func NewTencent(client *httputil.Client, log *logger.Logger, baseURL string) *Tencent {
	return &Tencent{
		client:  client,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (t *Tencent) Name() string { return "tencent" }

// FetchSeries pulls forward-adjusted daily bars. The payload nests per
// symbol under data, with bars under "qfqday" or plain "day" depending
// on whether the symbol has adjustment history. Each bar is an array of
// date,open,close,high,low,volume, values encoded as strings.
func (t *Tencent) FetchSeries(ctx context.Context, code string, days int) (contracts.PriceSeries, error) {
	symbol := prefixedCode(code)
	reqURL := fmt.Sprintf("%s/appstock/app/fqkline/get?param=%s,day,,,%d,qfq", t.baseURL, symbol, days)

	resp, err := t.client.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("tencent kline request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("tencent kline: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tencent kline read: %w", err)
	}

	var parsed struct {
		Code int                        `json:"code"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("tencent kline decode: %w", err)
	}
	if parsed.Code != 0 {
		return nil, fmt.Errorf("tencent kline: api code %d", parsed.Code)
	}

	raw, ok := parsed.Data[symbol]
	if !ok {
		return nil, fmt.Errorf("tencent kline: no data for %s", code)
	}

	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("tencent kline decode: %w", err)
	}

	var rows [][]any
	for _, key := range []string{"qfqday", "day"} {
		rawRows, ok := entry[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(rawRows, &rows); err != nil {
			return nil, fmt.Errorf("tencent kline decode %s: %w", key, err)
		}
		break
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tencent kline: no bars for %s", code)
	}

	series := make(contracts.PriceSeries, 0, len(rows))
	for _, row := range rows {
		bar, err := parseTencentRow(row)
		if err != nil {
			return nil, fmt.Errorf("tencent kline row: %w", err)
		}
		series = append(series, bar)
	}
	return clipLookback(series, days), nil
}

func parseTencentRow(row []any) (contracts.PriceBar, error) {
	if len(row) < 6 {
		return contracts.PriceBar{}, fmt.Errorf("short row with %d fields", len(row))
	}

	dateStr, ok := row[0].(string)
	if !ok {
		return contracts.PriceBar{}, fmt.Errorf("date field is %T", row[0])
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return contracts.PriceBar{}, err
	}

	values := make([]float64, 5)
	for i, cell := range row[1:6] {
		v, err := anyToFloat(cell)
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

func anyToFloat(cell any) (float64, error) {
	switch v := cell.(type) {
	case string:
		return parseFloat(v)
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("numeric field is %T", cell)
	}
}
