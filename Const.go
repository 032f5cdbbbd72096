package gobitfinex

const (
	GO_BIRTHDAY = "2006-01-02 15:04:05"
)

type TradeSide int64

const (
	BUY TradeSide = 1 + iota
	SELL
	BUY_MARKET
	SELL_MARKET
)

func (ts TradeSide) String() string {
	switch ts {
	case 1:
		return "buy"
	case 2:
		return "sell"
	case 3:
		return "buy_market"
	case 4:
		return "sell_market"
	default:
		return "unknown"
	}
}

type TradeStatus int64

func (ts TradeStatus) String() string {
	return tradeStatusSymbol[ts]
}

var tradeStatusSymbol = [...]string{"unfinish", "part_finish", "finish", "cancel", "reject", "canceling", "fail"}

const (
	ORDER_UNFINISH TradeStatus = iota
	ORDER_PART_FINISH
	ORDER_FINISH
	ORDER_CANCEL
	ORDER_REJECT
	ORDER_CANCEL_ING
	ORDER_FAIL
)

// kline periods supported by the exchange
const (
	KLINE_PERIOD_1MIN = 1 + iota
	KLINE_PERIOD_5MIN
	KLINE_PERIOD_15MIN
	KLINE_PERIOD_30MIN
	KLINE_PERIOD_1H
	KLINE_PERIOD_3H
	KLINE_PERIOD_6H
	KLINE_PERIOD_12H
	KLINE_PERIOD_1DAY
	KLINE_PERIOD_1WEEK
	KLINE_PERIOD_2WEEK
	KLINE_PERIOD_1MONTH
)

var PeriodMillisecond = map[int]int64{
	KLINE_PERIOD_1MIN:  60 * 1000,
	KLINE_PERIOD_5MIN:  5 * 60 * 1000,
	KLINE_PERIOD_15MIN: 15 * 60 * 1000,
	KLINE_PERIOD_30MIN: 30 * 60 * 1000,
	KLINE_PERIOD_1H:    60 * 60 * 1000,
	KLINE_PERIOD_3H:    3 * 60 * 60 * 1000,
	KLINE_PERIOD_6H:    6 * 60 * 60 * 1000,
	KLINE_PERIOD_12H:   12 * 60 * 60 * 1000,
	KLINE_PERIOD_1DAY:  24 * 60 * 60 * 1000,
	KLINE_PERIOD_1WEEK: 7 * 24 * 60 * 60 * 1000,
	KLINE_PERIOD_2WEEK: 14 * 24 * 60 * 60 * 1000,
}

// wallet kinds
const (
	WALLET_EXCHANGE = "exchange"
	WALLET_MARGIN   = "margin"
	WALLET_FUNDING  = "funding"
)

// exchanges const
const (
	BITFINEX = "bitfinex"
)

var orderTypeSymbol = [...]string{"NORMAL", "ONLY_MAKER", "FOK", "IOC"}

type PlaceType int

const (
	NORMAL     PlaceType = iota // normal order, need to cancel (GTC)
	ONLY_MAKER                  // only maker
	FOK                         // fill or kill
	IOC                         // Immediate or Cancel
)

func (ot PlaceType) String() string {
	return orderTypeSymbol[ot]
}

const (
	TRADE_TYPE_SPOT   = "spot"
	TRADE_TYPE_MARGIN = "margin"
)
