package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"

	. "github.com/stone89son/gobitfinex"
	"github.com/stone89son/gobitfinex/bitfinex"
)

var bfxClient *bitfinex.Bitfinex

func initClient(proxy string) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	bfxClient = bitfinex.New(
		&APIConfig{
			Endpoint:   bitfinex.ENDPOINT,
			HttpClient: getHttpClient(proxy),
			Location:   time.Now().Location(),
			Logger:     &logger,
		},
	)
}

func getHttpClient(proxyUrl string) *http.Client {
	if proxyUrl == "" {
		return &http.Client{
			Timeout: 15 * time.Second,
		}
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy: func(req *http.Request) (*url.URL, error) {
				return url.Parse(proxyUrl)
			},
		},
		Timeout: 15 * time.Second,
	}
}

func runCommand(command string) {
	pair := NewPair(*cliPair, "_")

	switch command {
	case "status":
		operative, _, err := bfxClient.Spot.GetPlatformStatus()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("operative:", operative)
	case "ticker":
		ticker, _, err := bfxClient.Spot.GetTicker(pair)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJson(ticker)
	case "depth":
		depth, _, err := bfxClient.Spot.GetDepth(pair, 25)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJson(depth)
	case "trades":
		trades, _, err := bfxClient.Spot.GetTrades(pair, 0)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJson(trades)
	case "candle":
		klines, _, err := bfxClient.Spot.GetKlineRecords(pair, KLINE_PERIOD_1MIN, 30, 0)
		if err != nil {
			fmt.Println(err)
			return
		}
		printJson(klines)
	}
}

func printJson(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(data))
}
