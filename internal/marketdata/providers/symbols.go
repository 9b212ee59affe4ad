// Package providers holds the upstream quote source adapters. Every
// adapter speaks one site's wire format and hands back the shared
// contracts types; fallback ordering between them is not decided here.
package providers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
)

// now is the adapter clock, replaced in tests.
var now = time.Now

// clipLookback drops bars outside the requested calendar lookback. The
// upstream endpoints count bars, not calendar days, so a response can
// carry history older than the caller asked for.
func clipLookback(series contracts.PriceSeries, days int) contracts.PriceSeries {
	end := now()
	return series.Clip(end.AddDate(0, 0, -days), end)
}

// SplitCode splits a market-qualified code such as "600519.SH" into its
// bare six-digit code and market suffix. A bare code without suffix is
// classified by prefix: 6 means Shanghai, anything else Shenzhen.
func SplitCode(code string) (bare, market string) {
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i], strings.ToUpper(code[i+1:])
	}
	if strings.HasPrefix(code, "6") {
		return code, "SH"
	}
	return code, "SZ"
}

// QualifyCode attaches the market suffix to a bare code.
func QualifyCode(bare string) string {
	_, market := SplitCode(bare)
	return bare + "." + market
}

// secID renders the eastmoney secid form, "1.600519" for Shanghai and
// "0.000001" for Shenzhen.
func secID(code string) string {
	bare, market := SplitCode(code)
	if market == "SH" {
		return "1." + bare
	}
	return "0." + bare
}

// prefixedCode renders the tencent/sina form, "sh600519" or "sz000001".
func prefixedCode(code string) string {
	bare, market := SplitCode(code)
	return strings.ToLower(market) + bare
}

// parseFloat is strconv.ParseFloat with the empty string and the dash
// placeholder treated as zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return v, nil
}
