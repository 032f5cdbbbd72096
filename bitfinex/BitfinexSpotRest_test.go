package bitfinex

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/stone89son/gobitfinex"
)

func TestSpot_AdaptSymbol(t *testing.T) {
	if symbol := adaptSymbol(Pair{Basis: BTC, Counter: USD}); symbol != "tBTCUSD" {
		t.Errorf("unexpected symbol %s", symbol)
	}
	// the exchange spells USDT as UST on the wire
	if symbol := adaptSymbol(Pair{Basis: BTC, Counter: USDT}); symbol != "tBTCUST" {
		t.Errorf("unexpected symbol %s", symbol)
	}
	if symbol := adaptFundingSymbol(USD); symbol != "fUSD" {
		t.Errorf("unexpected funding symbol %s", symbol)
	}

	if pair := adaptSymbolToPair("tBTCUSD"); !pair.Eq(Pair{Basis: BTC, Counter: USD}) {
		t.Errorf("unexpected pair %s", pair.String())
	}
}

func TestSpot_GetTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/ticker/tBTCUSD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[66715,31.9,66716,33.1,1373,0.021,66715.5,4125.7,67500,65000]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	ticker, _, err := bfx.Spot.GetTicker(Pair{Basis: BTC, Counter: USD})
	if err != nil {
		t.Error(err)
		return
	}

	if ticker.Buy != 66715 || ticker.Sell != 66716 {
		t.Errorf("unexpected book top %f/%f", ticker.Buy, ticker.Sell)
	}
	if ticker.Last != 66715.5 {
		t.Errorf("unexpected last %f", ticker.Last)
	}
	if ticker.Vol != 4125.7 || ticker.High != 67500 || ticker.Low != 65000 {
		t.Errorf("unexpected stats %f/%f/%f", ticker.Vol, ticker.High, ticker.Low)
	}
}

func TestSpot_GetDepth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/book/tBTCUSD/P0" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// the query must go out percent encoded via url.Values
		if r.URL.Query().Get("len") != "25" {
			t.Errorf("unexpected len %s", r.URL.Query().Get("len"))
		}
		_, _ = w.Write([]byte(`[[66700,2,1.5],[66690,1,0.7],[66710,1,-0.8],[66720,3,-2.1]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	depth, _, err := bfx.Spot.GetDepth(Pair{Basis: BTC, Counter: USD}, 25)
	if err != nil {
		t.Error(err)
		return
	}

	if len(depth.BidList) != 2 || len(depth.AskList) != 2 {
		t.Errorf("unexpected book sizes %d/%d", len(depth.BidList), len(depth.AskList))
		return
	}
	// asks ascending, bids descending, the ask amounts flipped positive
	if depth.AskList[0].Price != 66710 || depth.AskList[0].Amount != 0.8 {
		t.Errorf("unexpected best ask %+v", depth.AskList[0])
	}
	if depth.BidList[0].Price != 66700 {
		t.Errorf("unexpected best bid %+v", depth.BidList[0])
	}

	if _, _, err := bfx.Spot.GetDepth(Pair{Basis: BTC, Counter: USD}, 42); err == nil {
		t.Error("expect an argument error on a bad book size")
	}
}

func TestSpot_GetTrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/trades/tBTCUSD/hist" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[[123456,1700000000000,0.5,66700],[123457,1700000000001,-0.2,66710]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	trades, _, err := bfx.Spot.GetTrades(Pair{Basis: BTC, Counter: USD}, 0)
	if err != nil {
		t.Error(err)
		return
	}

	if len(trades) != 2 {
		t.Errorf("unexpected trade count %d", len(trades))
		return
	}
	if trades[0].Type != BUY || trades[0].Amount != 0.5 {
		t.Errorf("unexpected first trade %+v", trades[0])
	}
	// negative amount means a sell, flipped positive
	if trades[1].Type != SELL || trades[1].Amount != 0.2 {
		t.Errorf("unexpected second trade %+v", trades[1])
	}
}

func TestSpot_GetKlineRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/candles/trade:1m:tBTCUSD/hist" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[[1700000060000,2,3,4,1,10],[1700000000000,1,2,3,0.5,5]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	klines, _, err := bfx.Spot.GetKlineRecords(Pair{Basis: BTC, Counter: USD}, KLINE_PERIOD_1MIN, 2, 0)
	if err != nil {
		t.Error(err)
		return
	}

	if len(klines) != 2 {
		t.Errorf("unexpected kline count %d", len(klines))
		return
	}
	// the records come back ascending no matter the wire order
	if klines[0].Timestamp != 1700000000000 || klines[1].Timestamp != 1700000060000 {
		t.Errorf("the klines are not ascending %d/%d", klines[0].Timestamp, klines[1].Timestamp)
	}
	if klines[0].Open != 1 || klines[0].Close != 2 || klines[0].High != 3 || klines[0].Low != 0.5 {
		t.Errorf("unexpected first kline %+v", klines[0])
	}

	if _, _, err := bfx.Spot.GetKlineRecords(Pair{Basis: BTC, Counter: USD}, -1, 2, 0); err == nil {
		t.Error("expect an argument error on a bad period")
	}
}

func TestSpot_GetTickers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/tickers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbols") != "ALL" {
			t.Errorf("unexpected symbols %s", r.URL.Query().Get("symbols"))
		}
		_, _ = w.Write([]byte(`[` +
			`["tBTCUSD",66715,31.9,66716,33.1,1373,0.021,66715.5,4125.7,67500,65000],` +
			`["fUSD",0.0002,30,0.0001,2,1000,500,0.0002,0.0001,5,10,0,0,0,null,null,0.0003]` +
			`]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	tickers, _, err := bfx.Spot.GetTickers()
	if err != nil {
		t.Error(err)
		return
	}

	// the funding row must be skipped
	if len(tickers) != 1 {
		t.Errorf("unexpected ticker count %d", len(tickers))
		return
	}
	if !tickers[0].Pair.Eq(Pair{Basis: BTC, Counter: USD}) || tickers[0].Last != 66715.5 {
		t.Errorf("unexpected ticker %+v", tickers[0])
	}
}

func TestSpot_SetAlert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/w/alert/set" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`["price:tBTCUSD:70000","price","tBTCUSD",70000,100]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	alert, _, err := bfx.Spot.SetAlert(Pair{Basis: BTC, Counter: USD}, 70000)
	if err != nil {
		t.Error(err)
		return
	}

	if alert.Key != "price:tBTCUSD:70000" || alert.Price != 70000 {
		t.Errorf("unexpected alert %+v", alert)
	}
	if !alert.Pair.Eq(Pair{Basis: BTC, Counter: USD}) {
		t.Errorf("unexpected alert pair %s", alert.Pair.String())
	}
}

func TestSpot_GetPlatformStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	operative, _, err := bfx.Spot.GetPlatformStatus()
	if err != nil {
		t.Error(err)
		return
	}
	if !operative {
		t.Error("expect the platform operative")
	}
}

func TestSpot_GetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/r/wallets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(BFX_SIGNATURE) == "" {
			t.Error("the wallets call must be signed")
		}
		_, _ = w.Write([]byte(`[["exchange","BTC",1.5,0,1.25],["margin","UST",100,0,100]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	account, _, err := bfx.Spot.GetAccount()
	if err != nil {
		t.Error(err)
		return
	}

	btc, exist := account.SubAccounts[BTC]
	if !exist {
		t.Error("miss the BTC sub account")
		return
	}
	if btc.Amount != 1.5 || btc.FrozenAmount != 0.25 {
		t.Errorf("unexpected BTC balances %+v", btc)
	}

	// the wire symbol UST maps back onto USDT
	if _, exist := account.SubAccounts[USDT]; !exist {
		t.Error("miss the USDT sub account")
	}
}

func TestSpot_GetAccountInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/account_infos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(X_BFX_PAYLOAD) == "" {
			t.Error("the legacy call must carry the payload header")
		}
		_, _ = w.Write([]byte(`[{"maker_fees":"0.1","taker_fees":"0.2"}]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	info, _, err := bfx.Spot.GetAccountInfo()
	if err != nil {
		t.Error(err)
		return
	}
	if info.MakerFee != 0.1 || info.TakerFee != 0.2 {
		t.Errorf("unexpected fees %+v", info)
	}
}

func TestSpot_GetAccountInfoEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	_, _, err := bfx.Spot.GetAccountInfo()
	if err != ErrNoResult {
		t.Errorf("expect ErrNoResult on the empty array, got %v", err)
	}
}
