package bitfinex

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/stone89son/gobitfinex"
)

var _INTERNAL_KLINE_PERIOD_CONVERTER = map[int]string{
	KLINE_PERIOD_1MIN:   "1m",
	KLINE_PERIOD_5MIN:   "5m",
	KLINE_PERIOD_15MIN:  "15m",
	KLINE_PERIOD_30MIN:  "30m",
	KLINE_PERIOD_1H:     "1h",
	KLINE_PERIOD_3H:     "3h",
	KLINE_PERIOD_6H:     "6h",
	KLINE_PERIOD_12H:    "12h",
	KLINE_PERIOD_1DAY:   "1D",
	KLINE_PERIOD_1WEEK:  "7D",
	KLINE_PERIOD_2WEEK:  "14D",
	KLINE_PERIOD_1MONTH: "1M",
}

// the exchange spells a few currencies its own way on the wire
var _INTERNAL_CURRENCY_CONVERTER = map[string]string{
	"USDT": "UST",
	"USDC": "UDC",
}

func adaptCurrency(currency Currency) string {
	symbol := strings.ToUpper(currency.Symbol)
	if adapted, exist := _INTERNAL_CURRENCY_CONVERTER[symbol]; exist {
		return adapted
	}
	return symbol
}

// trading symbol, eg: tBTCUSD
func adaptSymbol(pair Pair) string {
	return "t" + adaptCurrency(pair.Basis) + adaptCurrency(pair.Counter)
}

// funding symbol, eg: fUSD
func adaptFundingSymbol(currency Currency) string {
	return "f" + adaptCurrency(currency)
}

type Spot struct {
	*Bitfinex
}

func (this *Spot) GetPlatformStatus() (bool, []byte, error) {
	status := make([]int64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, "platform/status", nil, &status)
	if err != nil {
		return false, nil, err
	}
	if len(status) == 0 {
		return false, resp, ErrNoResult
	}
	return status[0] == 1, resp, nil
}

func (this *Spot) GetTicker(pair Pair) (*Ticker, []byte, error) {
	uri, err := FillPath("ticker/{}", adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	// [BID,BID_SIZE,ASK,ASK_SIZE,DAILY_CHANGE,DAILY_CHANGE_REL,LAST,VOLUME,HIGH,LOW]
	response := make([]float64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}
	if len(response) < 10 {
		return nil, resp, &DeserializationError{Msg: "the ticker array is too short"}
	}

	now := time.Now()
	return &Ticker{
		Pair:      pair,
		Buy:       response[0],
		Sell:      response[2],
		Last:      response[6],
		Vol:       response[7],
		High:      response[8],
		Low:       response[9],
		Timestamp: now.UnixMilli(),
		Date:      now.In(this.config.Location).Format(GO_BIRTHDAY),
	}, resp, nil
}

func (this *Spot) GetDepth(pair Pair, size int) (*Depth, []byte, error) {
	if size != 1 && size != 25 && size != 100 {
		return nil, nil, &ArgumentError{Msg: "the book size must be one of 1/25/100"}
	}

	uri, err := FillPath("book/{}/{}", adaptSymbol(pair), "P0")
	if err != nil {
		return nil, nil, err
	}

	params := url.Values{}
	params.Set("len", strconv.Itoa(size))

	// rows of [PRICE, COUNT, AMOUNT], amount>0 bid, amount<0 ask
	response := make([][]float64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, uri, params, &response)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	depth := &Depth{
		Pair:      pair,
		Timestamp: now.UnixMilli(),
		Date:      now.In(this.config.Location).Format(GO_BIRTHDAY),
	}

	for _, row := range response {
		if len(row) < 3 {
			return nil, resp, &DeserializationError{Msg: "the book row is too short"}
		}
		record := DepthRecord{Price: row[0], Amount: row[2]}
		if record.Amount > 0 {
			depth.BidList = append(depth.BidList, record)
		} else {
			record.Amount = -record.Amount
			depth.AskList = append(depth.AskList, record)
		}
	}

	sort.Sort(depth.AskList)
	sort.Sort(sort.Reverse(depth.BidList))
	return depth, resp, nil
}

func (this *Spot) GetTrades(pair Pair, since int64) ([]*Trade, []byte, error) {
	uri, err := FillPath("trades/{}/hist", adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	params := url.Values{}
	params.Set("limit", "120")
	if since > 0 {
		params.Set("start", strconv.FormatInt(since, 10))
		params.Set("sort", "1")
	}

	// rows of [ID, MTS, AMOUNT, PRICE]
	response := make([][]float64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, uri, params, &response)
	if err != nil {
		return nil, nil, err
	}

	trades := make([]*Trade, 0, len(response))
	for _, row := range response {
		if len(row) < 4 {
			return nil, resp, &DeserializationError{Msg: "the trade row is too short"}
		}

		side := BUY
		amount := row[2]
		if amount < 0 {
			side = SELL
			amount = -amount
		}

		trades = append(trades, &Trade{
			Tid:       int64(row[0]),
			Pair:      pair,
			Type:      side,
			Amount:    amount,
			Price:     row[3],
			Timestamp: int64(row[1]),
		})
	}
	return trades, resp, nil
}

func (this *Spot) GetKlineRecords(pair Pair, period, size, since int) ([]*Kline, []byte, error) {
	timeframe, exist := _INTERNAL_KLINE_PERIOD_CONVERTER[period]
	if !exist {
		return nil, nil, &ArgumentError{Msg: "can not support the kline period"}
	}

	uri, err := FillPath("candles/trade:{}:{}/hist", timeframe, adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	params := url.Values{}
	if size > 0 {
		params.Set("limit", strconv.Itoa(size))
	}
	if since > 0 {
		params.Set("start", strconv.Itoa(since))
	}

	// rows of [MTS, OPEN, CLOSE, HIGH, LOW, VOLUME]
	response := make([][]float64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, uri, params, &response)
	if err != nil {
		return nil, nil, err
	}

	klines := make([]*Kline, 0, len(response))
	for _, row := range response {
		if len(row) < 6 {
			return nil, resp, &DeserializationError{Msg: "the candle row is too short"}
		}

		timestamp := int64(row[0])
		klines = append(klines, &Kline{
			Pair:      pair,
			Exchange:  BITFINEX,
			Timestamp: timestamp,
			Date:      time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
			Open:      row[1],
			Close:     row[2],
			High:      row[3],
			Low:       row[4],
			Vol:       row[5],
		})
	}

	sort.SliceStable(klines, func(i, j int) bool {
		return klines[i].Timestamp < klines[j].Timestamp
	})
	return klines, resp, nil
}

// GetTickers reads the whole ticker board in one call, the funding
// rows are skipped.
func (this *Spot) GetTickers() ([]*Ticker, []byte, error) {
	params := url.Values{}
	params.Set("symbols", "ALL")

	// rows of [SYMBOL, BID, BID_SIZE, ASK, ASK_SIZE, DAILY_CHANGE,
	// DAILY_CHANGE_REL, LAST, VOLUME, HIGH, LOW]
	response := make([][]interface{}, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, "tickers", params, &response)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	tickers := make([]*Ticker, 0, len(response))
	for _, row := range response {
		if len(row) < 11 {
			continue
		}
		symbol, _ := row[0].(string)
		if !strings.HasPrefix(symbol, "t") {
			continue
		}

		tickers = append(tickers, &Ticker{
			Pair:      adaptSymbolToPair(symbol),
			Buy:       ToFloat64(row[1]),
			Sell:      ToFloat64(row[3]),
			Last:      ToFloat64(row[7]),
			Vol:       ToFloat64(row[8]),
			High:      ToFloat64(row[9]),
			Low:       ToFloat64(row[10]),
			Timestamp: now.UnixMilli(),
			Date:      now.In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return tickers, resp, nil
}

// GetFxRate answers the exchange rate between two currencies.
func (this *Spot) GetFxRate(base, quote Currency) (float64, []byte, error) {
	params := url.Values{}
	params.Set("ccy1", adaptCurrency(base))
	params.Set("ccy2", adaptCurrency(quote))

	response := make([]float64, 0)
	resp, err := this.DoRequest(context.Background(), "POST", V2, "calc/fx", params, &response)
	if err != nil {
		return 0, nil, err
	}
	if len(response) == 0 {
		return 0, resp, ErrNoResult
	}
	return response[0], resp, nil
}

type Stat struct {
	Timestamp int64
	Value     float64
}

// GetStats reads one stats series, key is the series name the exchange
// publishes, eg: pos.size, funding.size, vol.1d.
func (this *Spot) GetStats(pair Pair, key string) ([]*Stat, []byte, error) {
	uri, err := FillPath("stats1/{}:1m:{}/hist", key, adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	// rows of [MTS, VALUE]
	response := make([][]float64, 0)
	resp, err := this.DoRequest(context.Background(), "GET", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	stats := make([]*Stat, 0, len(response))
	for _, row := range response {
		if len(row) < 2 {
			return nil, resp, &DeserializationError{Msg: "the stats row is too short"}
		}
		stats = append(stats, &Stat{Timestamp: int64(row[0]), Value: row[1]})
	}
	return stats, resp, nil
}

func (this *Spot) GetMarketAveragePrice(pair Pair, amount float64) (float64, []byte, error) {
	params := url.Values{}
	params.Set("symbol", adaptSymbol(pair))
	params.Set("amount", FloatToString(amount, 8))

	// [PRICE_AVG, AMOUNT]
	response := make([]float64, 0)
	resp, err := this.DoRequest(context.Background(), "POST", V2, "calc/trade/avg", params, &response)
	if err != nil {
		return 0, nil, err
	}
	if len(response) == 0 {
		return 0, resp, ErrNoResult
	}
	return response[0], resp, nil
}

func (this *Spot) KeepAlive() {
	nowTimestamp := time.Now().Unix() * 1000
	if nowTimestamp-atomic.LoadInt64(&this.config.LastTimestamp) < 5*1000 {
		return
	}
	_, _, _ = this.GetPlatformStatus()
}
