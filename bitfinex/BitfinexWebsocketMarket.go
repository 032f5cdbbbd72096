package bitfinex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/buger/jsonparser"

	. "github.com/stone89son/gobitfinex"
)

// WSMarketBitfinex is the public market stream, it covers the ticker
// and the trades channels. No authentication on this stream.
type WSMarketBitfinex struct {
	RecvHandler  func(string)
	ErrorHandler func(error)
	Config       *APIConfig

	conn   *WsConn
	connId string

	channelL sync.Mutex
	channels map[int64]string // chanId -> channel:symbol
}

func (this *WSMarketBitfinex) Start() error {
	if this.RecvHandler == nil {
		this.RecvHandler = func(msg string) {}
	}
	if this.ErrorHandler == nil {
		this.ErrorHandler = func(err error) {}
	}
	this.connId = UUID()
	this.channels = make(map[int64]string)

	conn, err := NewWsBuilder().WsUrl(
		WS_ENDPOINT,
	).Heartbeat(
		30 * time.Second,
	).ReconnectIntervalTime(
		24 * time.Hour,
	).ProtoHandleFunc(
		this.recv,
	).ErrorHandleFunc(
		this.ErrorHandler,
	).Logger(
		this.Config.Logger,
	).Build()
	if err != nil {
		return err
	}

	this.conn = conn
	if this.Config.Logger != nil {
		this.Config.Logger.Debug().Str("conn_id", this.connId).Msg("bitfinex market stream started")
	}
	this.conn.ReceiveMessage()
	return nil
}

func (this *WSMarketBitfinex) Stop() {
	if this.conn != nil {
		this.conn.CloseWs()
	}
}

func (this *WSMarketBitfinex) SubscribeTicker(pair Pair) error {
	return this.subscribe("ticker", adaptSymbol(pair))
}

func (this *WSMarketBitfinex) SubscribeTrades(pair Pair) error {
	return this.subscribe("trades", adaptSymbol(pair))
}

func (this *WSMarketBitfinex) subscribe(channel, symbol string) error {
	if this.conn == nil {
		return &WSStopError{Msg: "the connection is not started"}
	}
	return this.conn.Subscribe(map[string]string{
		"event":   "subscribe",
		"channel": channel,
		"symbol":  symbol,
	})
}

func (this *WSMarketBitfinex) recv(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	// event messages are objects, channel data are arrays
	if trimmed[0] == '{' {
		return this.recvEvent(trimmed)
	}

	chanId, err := jsonparser.GetInt(trimmed, "[0]")
	if err != nil {
		return &DeserializationError{Msg: "unexpected stream frame", Err: err}
	}

	// the hb frame only proves liveness
	if tag, err := jsonparser.GetString(trimmed, "[1]"); err == nil && tag == "hb" {
		return nil
	}

	this.channelL.Lock()
	channel, exist := this.channels[chanId]
	this.channelL.Unlock()
	if !exist {
		return nil
	}

	this.RecvHandler(fmt.Sprintf(`{"channel":%q,"data":%s}`, channel, string(trimmed)))
	return nil
}

func (this *WSMarketBitfinex) recvEvent(data []byte) error {
	var event struct {
		Event   string `json:"event"`
		Channel string `json:"channel"`
		ChanId  int64  `json:"chanId"`
		Symbol  string `json:"symbol"`
		Code    int    `json:"code"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return &DeserializationError{Msg: "unexpected stream event", Err: err}
	}

	switch event.Event {
	case "subscribed":
		this.channelL.Lock()
		this.channels[event.ChanId] = event.Channel + ":" + event.Symbol
		this.channelL.Unlock()
	case "unsubscribed":
		this.channelL.Lock()
		delete(this.channels, event.ChanId)
		this.channelL.Unlock()
	case "error":
		this.ErrorHandler(&ServerError{ErrCode: event.Code, Message: event.Msg})
	case "info":
		// the server hello, nothing to do
	}
	return nil
}
