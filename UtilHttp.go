package gobitfinex

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
)

// NewHttpRequest performs one round trip and hands back the status code
// with the raw body. Non 2xx statuses are not an error here, the caller
// owns the error envelope of its exchange.
func NewHttpRequest(
	ctx context.Context,
	client *http.Client,
	reqType,
	reqUrl,
	postData string,
	requestHeaders map[string]string,
) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, reqType, reqUrl, strings.NewReader(postData))
	if err != nil {
		return 0, nil, &TransportError{Msg: "build request", Err: err}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set(
			"User-Agent",
			"Mozilla/5.0 (Windows NT 5.1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/31.0.1650.63 Safari/537.36")
	}
	for k, v := range requestHeaders {
		req.Header.Add(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Msg: "do request", Err: err}
	}

	defer resp.Body.Close()

	bodyData, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Msg: "read body", StatusCode: resp.StatusCode, Err: err}
	}

	return resp.StatusCode, bodyData, nil
}
