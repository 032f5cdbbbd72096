package bitfinex

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/buger/jsonparser"
	"golang.org/x/time/rate"

	. "github.com/stone89son/gobitfinex"
)

const (
	ENDPOINT    = "https://api.bitfinex.com"
	WS_ENDPOINT = "wss://api-pub.bitfinex.com/ws/2"

	ACCEPT       = "Accept"
	CONTENT_TYPE = "Content-Type"

	APPLICATION_JSON = "application/json"

	// v2 auth headers
	BFX_NONCE     = "bfx-nonce"
	BFX_APIKEY    = "bfx-apikey"
	BFX_SIGNATURE = "bfx-signature"

	// v1 auth headers
	X_BFX_APIKEY    = "X-BFX-APIKEY"
	X_BFX_PAYLOAD   = "X-BFX-PAYLOAD"
	X_BFX_SIGNATURE = "X-BFX-SIGNATURE"
)

// the exchange publishes request budgets per route group, the two
// buckets below cover the public and the authenticated families
const (
	publicReqPerMinute = 30
	authReqPerMinute   = 90
)

// ApiVersion tags the API generation of an endpoint. The generation is
// fixed per endpoint, it decides the url segment and the signing scheme.
type ApiVersion int

const (
	V1 ApiVersion = 1 + iota
	V2
)

func (v ApiVersion) Segment() string {
	if v == V1 {
		return "/v1/"
	}
	return "/v2/"
}

// Param is one entry of an ordered parameter bag.
type Param struct {
	Key   string
	Value interface{}
}

// Params keeps the caller's insertion order, the legacy signed payload
// serializes entries in exactly that order.
type Params []Param

func (ps Params) ToJson() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, p := range ps {
		if p.Value == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ps Params) ToValues() url.Values {
	values := url.Values{}
	for _, p := range ps {
		if p.Value == nil {
			continue
		}
		values.Set(p.Key, fmt.Sprint(p.Value))
	}
	return values
}

// Credentials is an immutable api key pair, replaced wholesale via
// SetCredentials, never field by field.
type Credentials struct {
	ApiKey       string
	ApiSecretKey string
}

type Bitfinex struct {
	config *APIConfig

	Spot   *Spot
	Margin *Margin

	creds     atomic.Pointer[Credentials]
	lastNonce int64

	publicLimiter *rate.Limiter
	authLimiter   *rate.Limiter
}

func New(config *APIConfig) *Bitfinex {
	bfx := &Bitfinex{
		config:        config,
		publicLimiter: rate.NewLimiter(rate.Every(time.Minute/publicReqPerMinute), publicReqPerMinute),
		authLimiter:   rate.NewLimiter(rate.Every(time.Minute/authReqPerMinute), authReqPerMinute),
	}
	if config.ApiKey != "" || config.ApiSecretKey != "" {
		bfx.creds.Store(&Credentials{ApiKey: config.ApiKey, ApiSecretKey: config.ApiSecretKey})
	}
	bfx.Spot = &Spot{bfx}
	bfx.Margin = &Margin{bfx}
	return bfx
}

func (bfx *Bitfinex) GetExchangeName() string {
	return BITFINEX
}

// SetCredentials swaps the signing key pair in one atomic assignment, a
// signed call running concurrently sees either the old pair or the new
// pair, never a half updated one.
func (bfx *Bitfinex) SetCredentials(apiKey, apiSecretKey string) {
	bfx.creds.Store(&Credentials{ApiKey: apiKey, ApiSecretKey: apiSecretKey})
}

func (bfx *Bitfinex) credentials() (*Credentials, error) {
	creds := bfx.creds.Load()
	if creds == nil || creds.ApiKey == "" || creds.ApiSecretKey == "" {
		return nil, &ArgumentError{Msg: "the api key and secret key are required for the signed call"}
	}
	return creds, nil
}

// nonce hands out a strictly increasing token, unix milliseconds scaled
// by ten so that calls inside the same millisecond still move forward.
// The nonce is spent at signing time, a cancelled call still consumes it.
func (bfx *Bitfinex) nonce() string {
	for {
		prev := atomic.LoadInt64(&bfx.lastNonce)
		next := time.Now().UnixMilli() * 10
		if next <= prev {
			next = prev + 1
		}
		if atomic.CompareAndSwapInt64(&bfx.lastNonce, prev, next) {
			return strconv.FormatInt(next, 10)
		}
	}
}

// FillPath resolves the "{}" placeholders of an endpoint template left
// to right. The value count must match the placeholder count.
func FillPath(template string, values ...string) (string, error) {
	count := strings.Count(template, "{}")
	if count != len(values) {
		return "", &ArgumentError{
			Msg: fmt.Sprintf("the template %q wants %d values but got %d", template, count, len(values)),
		}
	}
	for _, value := range values {
		template = strings.Replace(template, "{}", value, 1)
	}
	return template, nil
}

// the endpoint must not have a leading slash, ENDPOINT has no trailing one
func (bfx *Bitfinex) buildUrl(version ApiVersion, uri string) string {
	return bfx.config.Endpoint + version.Segment() + uri
}

// DoRequest performs one unsigned round trip. Params go out percent
// encoded on the query string. This is the generic public entry, every
// public wrapper funnels through here.
func (bfx *Bitfinex) DoRequest(
	ctx context.Context,
	httpMethod string,
	version ApiVersion,
	uri string,
	params url.Values,
	response interface{},
) ([]byte, error) {
	if err := bfx.publicLimiter.Wait(ctx); err != nil {
		return nil, &TransportError{Msg: "rate limiter", Err: err}
	}

	reqUrl := bfx.buildUrl(version, uri)
	if len(params) > 0 {
		reqUrl += "?" + params.Encode()
	}

	return bfx.send(ctx, httpMethod, reqUrl, "", map[string]string{
		CONTENT_TYPE: APPLICATION_JSON,
		ACCEPT:       APPLICATION_JSON,
	}, response)
}

// DoAuthRequest performs one signed round trip, dispatching on the
// version tag for the signing scheme. At most once, never retried.
func (bfx *Bitfinex) DoAuthRequest(
	ctx context.Context,
	httpMethod string,
	version ApiVersion,
	uri string,
	params Params,
	response interface{},
) ([]byte, error) {
	creds, err := bfx.credentials()
	if err != nil {
		return nil, err
	}

	if err := bfx.authLimiter.Wait(ctx); err != nil {
		return nil, &TransportError{Msg: "rate limiter", Err: err}
	}

	var reqBody string
	var headers map[string]string
	switch version {
	case V2:
		reqBody, headers, err = signV2(creds, uri, bfx.nonce(), params)
	case V1:
		headers, err = signV1(creds, uri, bfx.nonce(), params)
	default:
		return nil, &ArgumentError{Msg: fmt.Sprintf("unknown api version %d", version)}
	}
	if err != nil {
		return nil, err
	}

	headers[CONTENT_TYPE] = APPLICATION_JSON
	headers[ACCEPT] = APPLICATION_JSON

	return bfx.send(ctx, httpMethod, bfx.buildUrl(version, uri), reqBody, headers, response)
}

// signV2 builds the current generation envelope:
//
//	"/api" + "/v2/" + path + nonce + body
//
// the body is the json bag, "{}" even when the bag is empty, and goes
// out verbatim as the request body.
func signV2(creds *Credentials, uri, nonce string, params Params) (string, map[string]string, error) {
	body, err := params.ToJson()
	if err != nil {
		return "", nil, &ArgumentError{Msg: "marshal the parameter bag: " + err.Error()}
	}

	envelope := "/api" + V2.Segment() + uri + nonce + string(body)
	sign, err := GetParamHmacSHA384Sign(creds.ApiSecretKey, envelope)
	if err != nil {
		return "", nil, err
	}

	return string(body), map[string]string{
		BFX_NONCE:     nonce,
		BFX_APIKEY:    creds.ApiKey,
		BFX_SIGNATURE: sign,
	}, nil
}

// signV1 builds the legacy generation payload, a base64 of
//
//	{"request":"/v1/<path>","nonce":"<nonce>",<params in order>}
//
// the base64 text itself is what gets signed, no request body goes out.
func signV1(creds *Credentials, uri, nonce string, params Params) (map[string]string, error) {
	payload, err := buildV1Payload(V1.Segment()+uri, nonce, params)
	if err != nil {
		return nil, &ArgumentError{Msg: "marshal the legacy payload: " + err.Error()}
	}

	payloadBase64 := base64.StdEncoding.EncodeToString(payload)
	sign, err := GetParamHmacSHA384Sign(creds.ApiSecretKey, payloadBase64)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		X_BFX_APIKEY:    creds.ApiKey,
		X_BFX_PAYLOAD:   payloadBase64,
		X_BFX_SIGNATURE: sign,
	}, nil
}

func buildV1Payload(request, nonce string, params Params) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"request":`)

	requestJson, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	buf.Write(requestJson)

	buf.WriteString(`,"nonce":`)
	nonceJson, err := json.Marshal(nonce)
	if err != nil {
		return nil, err
	}
	buf.Write(nonceJson)

	for _, p := range params {
		if p.Value == nil {
			continue
		}

		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}

		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (bfx *Bitfinex) send(
	ctx context.Context,
	httpMethod, reqUrl, reqBody string,
	headers map[string]string,
	response interface{},
) ([]byte, error) {
	start := time.Now()
	status, resp, err := NewHttpRequest(ctx, bfx.config.HttpClient, httpMethod, reqUrl, reqBody, headers)

	if bfx.config.Logger != nil {
		bfx.config.Logger.Debug().
			Str("method", httpMethod).
			Str("url", reqUrl).
			Int("status", status).
			Dur("cost", time.Since(start)).
			Msg("bitfinex request")
	}

	if err != nil {
		return nil, err
	}

	nowTimestamp := time.Now().Unix() * 1000
	if atomic.LoadInt64(&bfx.config.LastTimestamp) < nowTimestamp {
		atomic.StoreInt64(&bfx.config.LastTimestamp, nowTimestamp)
	}

	if status < 200 || status >= 300 {
		return nil, parseErrorEnvelope(status, resp)
	}

	if response == nil {
		return resp, nil
	}
	if err := json.Unmarshal(resp, response); err != nil {
		return resp, &DeserializationError{Msg: "unexpected response shape", Err: err}
	}
	return resp, nil
}

// parseErrorEnvelope maps the wire shape ["error",<code>,"<message>"]
// onto a ServerError, falling back to a TransportError when the body is
// something else entirely.
func parseErrorEnvelope(status int, body []byte) error {
	category, err := jsonparser.GetString(body, "[0]")
	if err != nil || category != "error" {
		return &TransportError{
			Msg:        fmt.Sprintf("http status %d", status),
			StatusCode: status,
		}
	}

	message, _ := jsonparser.GetString(body, "[2]")

	code, err := jsonparser.GetInt(body, "[1]")
	if err != nil {
		// some responses quote the code
		codeStr, strErr := jsonparser.GetString(body, "[1]")
		if strErr != nil {
			return &TransportError{
				Msg:        fmt.Sprintf("http status %d", status),
				StatusCode: status,
			}
		}
		code, _ = strconv.ParseInt(codeStr, 10, 64)
	}

	return &ServerError{ErrCode: int(code), Message: message}
}

// ErrNoResult marks a well formed but empty array where a singleton was
// expected, which is not the same failure as a malformed body.
var ErrNoResult = &DeserializationError{Msg: "no result in the response array"}

// UnwrapFirst picks the first element of an array shaped response for
// the endpoints that wrap a singleton in an array.
func UnwrapFirst(data []byte, response interface{}) error {
	first, _, _, err := jsonparser.Get(data, "[0]")
	if err != nil {
		trimmed := bytes.TrimSpace(data)
		if bytes.Equal(trimmed, []byte("[]")) {
			return ErrNoResult
		}
		return &DeserializationError{Msg: "the response is not an array", Err: err}
	}
	if err := json.Unmarshal(first, response); err != nil {
		return &DeserializationError{Msg: "unexpected element shape", Err: err}
	}
	return nil
}
