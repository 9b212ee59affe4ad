package marketdata

import "github.com/wonny/goldcross/internal/contracts"

// fallbackUniverse is the built-in list of well-known large caps used
// when every universe source fails. Screening a short known list beats
// screening nothing.
var fallbackUniverse = []contracts.Symbol{
	{Code: "000001.SZ", Name: "平安银行"},
	{Code: "000002.SZ", Name: "万科A"},
	{Code: "000333.SZ", Name: "美的集团"},
	{Code: "000651.SZ", Name: "格力电器"},
	{Code: "000858.SZ", Name: "五粮液"},
	{Code: "002415.SZ", Name: "海康威视"},
	{Code: "002594.SZ", Name: "比亚迪"},
	{Code: "300059.SZ", Name: "东方财富"},
	{Code: "300750.SZ", Name: "宁德时代"},
	{Code: "600036.SH", Name: "招商银行"},
	{Code: "600276.SH", Name: "恒瑞医药"},
	{Code: "600519.SH", Name: "贵州茅台"},
	{Code: "600887.SH", Name: "伊利股份"},
	{Code: "601318.SH", Name: "中国平安"},
	{Code: "601888.SH", Name: "中国中免"},
}

// FallbackUniverse returns a copy of the built-in symbol list.
func FallbackUniverse() []contracts.Symbol {
	out := make([]contracts.Symbol, len(fallbackUniverse))
	copy(out, fallbackUniverse)
	return out
}
