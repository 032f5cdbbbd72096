package gobitfinex

import (
	"strings"
)

type Currency struct {
	Symbol string `json:"symbol"`
	Desc   string `json:"-"`
}

func (c Currency) String() string {
	return c.Symbol
}

func (c Currency) Eq(c2 Currency) bool {
	return c.Symbol == c2.Symbol
}

var (
	UNKNOWN = Currency{"UNKNOWN", ""}

	USD = Currency{"USD", ""}
	EUR = Currency{"EUR", ""}
	GBP = Currency{"GBP", ""}
	JPY = Currency{"JPY", ""}
	CNH = Currency{"CNH", ""}

	USDT = Currency{"USDT", ""}
	USDC = Currency{"USDC", "https://www.centre.io/"}
	DAI  = Currency{"DAI", ""}

	BTC  = Currency{"BTC", "https://bitcoin.org/"}
	LTC  = Currency{"LTC", ""}
	ETH  = Currency{"ETH", ""}
	ETC  = Currency{"ETC", ""}
	EOS  = Currency{"EOS", ""}
	ZEC  = Currency{"ZEC", ""}
	XMR  = Currency{"XMR", ""}
	DSH  = Currency{"DSH", "dash, the bitfinex symbol is DSH"}
	XRP  = Currency{"XRP", ""}
	IOT  = Currency{"IOT", "iota, the bitfinex symbol is IOT"}
	NEO  = Currency{"NEO", ""}
	XLM  = Currency{"XLM", ""}
	TRX  = Currency{"TRX", ""}
	ADA  = Currency{"ADA", ""}
	DOT  = Currency{"DOT", ""}
	SOL  = Currency{"SOL", ""}
	AVAX = Currency{"AVAX", ""}
	LINK = Currency{"LINK", ""}
	UNI  = Currency{"UNI", ""}
	DOGE = Currency{"DOGE", ""}
	FIL  = Currency{"FIL", ""}
	XAUT = Currency{"XAUT", "tether gold"}
	LEO  = Currency{"LEO", "UNUS SED LEO, the exchange token of bitfinex"}
)

var currencyRelation = map[string]Currency{
	//fiat currency
	"usd": USD,
	"USD": USD,
	"eur": EUR,
	"EUR": EUR,
	"gbp": GBP,
	"GBP": GBP,
	"jpy": JPY,
	"JPY": JPY,
	"cnh": CNH,
	"CNH": CNH,

	//stable coin
	"usdt": USDT,
	"USDT": USDT,
	// the bitfinex wire symbol of USDT is UST
	"ust":  USDT,
	"UST":  USDT,
	"usdc": USDC,
	"USDC": USDC,
	"udc":  USDC,
	"UDC":  USDC,
	"dai":  DAI,
	"DAI":  DAI,

	//crypto currency
	"btc":  BTC,
	"BTC":  BTC,
	"eth":  ETH,
	"ETH":  ETH,
	"etc":  ETC,
	"ETC":  ETC,
	"eos":  EOS,
	"EOS":  EOS,
	"ltc":  LTC,
	"LTC":  LTC,
	"zec":  ZEC,
	"ZEC":  ZEC,
	"xmr":  XMR,
	"XMR":  XMR,
	"dsh":  DSH,
	"DSH":  DSH,
	"xrp":  XRP,
	"XRP":  XRP,
	"iot":  IOT,
	"IOT":  IOT,
	"neo":  NEO,
	"NEO":  NEO,
	"xlm":  XLM,
	"XLM":  XLM,
	"trx":  TRX,
	"TRX":  TRX,
	"ada":  ADA,
	"ADA":  ADA,
	"dot":  DOT,
	"DOT":  DOT,
	"sol":  SOL,
	"SOL":  SOL,
	"avax": AVAX,
	"AVAX": AVAX,
	"link": LINK,
	"LINK": LINK,
	"uni":  UNI,
	"UNI":  UNI,
	"doge": DOGE,
	"DOGE": DOGE,
	"fil":  FIL,
	"FIL":  FIL,
	"xaut": XAUT,
	"XAUT": XAUT,

	//exchange coin
	"leo": LEO,
	"LEO": LEO,
}

func NewCurrency(symbol, desc string) Currency {
	currency, exist := currencyRelation[symbol]
	if exist {
		return currency
	}
	return Currency{strings.ToUpper(symbol), desc}
}
