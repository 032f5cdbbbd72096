package gobitfinex

// api interface
type SpotRestAPI interface {

	// public api
	GetExchangeName() string
	GetPlatformStatus() (bool, []byte, error)
	GetTicker(pair Pair) (*Ticker, []byte, error)
	GetDepth(pair Pair, size int) (*Depth, []byte, error)
	GetKlineRecords(pair Pair, period, size, since int) ([]*Kline, []byte, error)
	GetTrades(pair Pair, since int64) ([]*Trade, []byte, error)
	GetMarketAveragePrice(pair Pair, amount float64) (float64, []byte, error)

	// private api
	GetAccount() (*Account, []byte, error)
	PlaceOrder(order *Order) ([]byte, error)
	CancelOrder(order *Order) ([]byte, error)
	GetOrder(order *Order) ([]byte, error)
	GetOrders(pair Pair) ([]*Order, []byte, error) // dealed orders
	GetUnFinishOrders(pair Pair) ([]*Order, []byte, error)

	// util api
	KeepAlive()
}
