package gobitfinex

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type WsConfig struct {
	WsUrl      string              // websocket server url, necessary
	ProxyUrl   string              // proxy url, not necessary
	ReqHeaders map[string][]string // set the head info ,when connecting, not necessary

	// the exchange pushes hb frames itself, the conn only watches that
	// they keep coming and reconnects on silence
	HeartbeatIntervalTime time.Duration

	ReconnectIntervalTime time.Duration      // force reconnect on XXX time duration, not necessary
	ProtoHandleFunc       func([]byte) error // the message handle func, necessary
	ErrorHandleFunc       func(err error)    // the error handle func, not necessary
	Logger                *zerolog.Logger    // not necessary, silent when nil
}

type WsConn struct {
	*websocket.Conn
	sync.Mutex
	WsConfig

	activeTime  time.Time
	activeTimeL sync.Mutex

	mu             chan struct{} // lock write data
	closeHeartbeat chan struct{}
	closeReconnect chan struct{}
	closeRecv      chan struct{}
	subs           []interface{}
}

// websocket build config
type WsBuilder struct {
	wsConfig *WsConfig
}

func NewWsBuilder() *WsBuilder {
	return &WsBuilder{&WsConfig{ReqHeaders: map[string][]string{}}}
}

func (b *WsBuilder) WsUrl(wsUrl string) *WsBuilder {
	b.wsConfig.WsUrl = wsUrl
	return b
}

func (b *WsBuilder) ProxyUrl(proxyUrl string) *WsBuilder {
	b.wsConfig.ProxyUrl = proxyUrl
	return b
}

func (b *WsBuilder) ReqHeader(key, value string) *WsBuilder {
	b.wsConfig.ReqHeaders[key] = append(b.wsConfig.ReqHeaders[key], value)
	return b
}

func (b *WsBuilder) Heartbeat(t time.Duration) *WsBuilder {
	b.wsConfig.HeartbeatIntervalTime = t
	return b
}

func (b *WsBuilder) ReconnectIntervalTime(t time.Duration) *WsBuilder {
	b.wsConfig.ReconnectIntervalTime = t
	return b
}

func (b *WsBuilder) ProtoHandleFunc(f func([]byte) error) *WsBuilder {
	b.wsConfig.ProtoHandleFunc = f
	return b
}

func (b *WsBuilder) ErrorHandleFunc(f func(err error)) *WsBuilder {
	b.wsConfig.ErrorHandleFunc = f
	return b
}

func (b *WsBuilder) Logger(logger *zerolog.Logger) *WsBuilder {
	b.wsConfig.Logger = logger
	return b
}

func (b *WsBuilder) Build() (*WsConn, error) {
	if b.wsConfig.ErrorHandleFunc == nil {
		b.wsConfig.ErrorHandleFunc = func(err error) {}
	}
	wsConn := &WsConn{WsConfig: *b.wsConfig}
	return wsConn.NewWs()
}

func (ws *WsConn) NewWs() (*WsConn, error) {
	ws.Lock()
	defer ws.Unlock()

	if err := ws.connect(); err != nil {
		return nil, err
	}

	ws.mu = make(chan struct{}, 1)
	ws.closeHeartbeat = make(chan struct{}, 1)
	ws.closeReconnect = make(chan struct{}, 1)
	ws.closeRecv = make(chan struct{}, 1)

	ws.ReConnectTimer()
	ws.checkStatusTimer()

	return ws, nil
}

func (ws *WsConn) connect() error {
	dialer := websocket.DefaultDialer

	if ws.ProxyUrl != "" {
		proxy, err := url.Parse(ws.ProxyUrl)
		if err != nil {
			return err
		}
		dialer.Proxy = http.ProxyURL(proxy)
	}

	wsConn, _, err := dialer.Dial(ws.WsUrl, http.Header(ws.ReqHeaders))
	if err != nil {
		return err
	}

	ws.Conn = wsConn
	if ws.Logger != nil {
		ws.Logger.Debug().Str("url", ws.WsUrl).Msg("websocket connected")
	}

	ws.UpdateActiveTime()
	return nil
}

func (ws *WsConn) SendJsonMessage(v interface{}) error {
	ws.mu <- struct{}{}
	defer func() {
		<-ws.mu
	}()
	return ws.WriteJSON(v)
}

func (ws *WsConn) SendTextMessage(data []byte) error {
	ws.mu <- struct{}{}
	defer func() {
		<-ws.mu
	}()
	return ws.WriteMessage(websocket.TextMessage, data)
}

func (ws *WsConn) ReConnect() {
	ws.Lock()
	defer ws.Unlock()

	_ = ws.Close()
	time.Sleep(time.Second)

	if err := ws.connect(); err != nil {
		ws.ErrorHandleFunc(&WSRestartError{Msg: err.Error()})
		return
	}

	//re subscribe
	for _, sub := range ws.subs {
		_ = ws.SendJsonMessage(sub)
	}
}

func (ws *WsConn) ReConnectTimer() {
	if ws.ReconnectIntervalTime == 0 {
		return
	}
	timer := time.NewTimer(ws.ReconnectIntervalTime)

	go func() {
		ws.clearChannel(ws.closeReconnect)

		for {
			select {
			case <-timer.C:
				ws.ReConnect()
				timer.Reset(ws.ReconnectIntervalTime)
			case <-ws.closeReconnect:
				timer.Stop()
				return
			}
		}
	}()
}

func (ws *WsConn) checkStatusTimer() {
	if ws.HeartbeatIntervalTime == 0 {
		return
	}

	timer := time.NewTimer(ws.HeartbeatIntervalTime)

	go func() {
		ws.clearChannel(ws.closeHeartbeat)

		for {
			select {
			case <-timer.C:
				now := time.Now()
				if now.Sub(ws.activeTime) >= 2*ws.HeartbeatIntervalTime {
					if ws.Logger != nil {
						ws.Logger.Warn().Time("active", ws.activeTime).Msg("websocket heartbeat expired, reconnect")
					}
					ws.ReConnect()
				}
				timer.Reset(ws.HeartbeatIntervalTime)
			case <-ws.closeHeartbeat:
				timer.Stop()
				return
			}
		}
	}()
}

func (ws *WsConn) Subscribe(subEvent interface{}) error {
	err := ws.SendJsonMessage(subEvent)
	if err != nil {
		return err
	}
	ws.subs = append(ws.subs, subEvent)
	return nil
}

func (ws *WsConn) ReceiveMessage() {
	ws.clearChannel(ws.closeRecv)

	go func() {
		for {

			if len(ws.closeRecv) > 0 {
				<-ws.closeRecv
				return
			}

			t, msg, err := ws.ReadMessage()
			if err != nil {
				ws.ErrorHandleFunc(err)
				time.Sleep(time.Second)
				continue
			}

			ws.UpdateActiveTime()

			switch t {
			case websocket.TextMessage, websocket.BinaryMessage:
				if err := ws.ProtoHandleFunc(msg); err != nil {
					ws.ErrorHandleFunc(err)
				}
			case websocket.CloseMessage:
				ws.CloseWs()
				return
			default:
				ws.ErrorHandleFunc(&WSStopError{Msg: "unexpected websocket message type"})
			}
		}
	}()
}

func (ws *WsConn) UpdateActiveTime() {
	ws.activeTimeL.Lock()
	defer ws.activeTimeL.Unlock()

	ws.activeTime = time.Now()
}

func (ws *WsConn) CloseWs() {
	ws.clearChannel(ws.closeReconnect)
	ws.clearChannel(ws.closeHeartbeat)
	ws.clearChannel(ws.closeRecv)

	ws.closeReconnect <- struct{}{}
	ws.closeHeartbeat <- struct{}{}
	ws.closeRecv <- struct{}{}

	if err := ws.Close(); err != nil && ws.Logger != nil {
		ws.Logger.Warn().Err(err).Msg("close websocket error")
	}
}

func (ws *WsConn) clearChannel(c chan struct{}) {
	for {
		if len(c) > 0 {
			<-c
		} else {
			break
		}
	}
}
