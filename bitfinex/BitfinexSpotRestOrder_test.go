package bitfinex

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/stone89son/gobitfinex"
)

func TestSpot_AdaptOrderStatus(t *testing.T) {
	if status := adaptOrderStatus("EXECUTED @ 66715.0(0.5)"); status != ORDER_FINISH {
		t.Errorf("unexpected status %d", status)
	}
	if status := adaptOrderStatus("PARTIALLY FILLED @ 66715.0(0.2)"); status != ORDER_PART_FINISH {
		t.Errorf("unexpected status %d", status)
	}
	if status := adaptOrderStatus("CANCELED"); status != ORDER_CANCEL {
		t.Errorf("unexpected status %d", status)
	}
	if status := adaptOrderStatus("ACTIVE"); status != ORDER_UNFINISH {
		t.Errorf("unexpected status %d", status)
	}
}

func TestSpot_PlaceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/w/order/submit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(BFX_SIGNATURE) == "" {
			t.Error("the submit must be signed")
		}

		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"type":"EXCHANGE LIMIT"`) {
			t.Errorf("unexpected body %s", body)
		}
		if !strings.Contains(string(body), `"cid":777`) {
			t.Errorf("unexpected body %s", body)
		}

		_, _ = w.Write([]byte(`[1700000000000,"on-req",null,null,` +
			`[[12345,null,777,"tBTCUSD",1700000000000,1700000000000,0.5,0.5,` +
			`"EXCHANGE LIMIT",null,null,null,null,"ACTIVE",null,null,66000,0]],` +
			`null,"SUCCESS","Submitting order"]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	order := &Order{
		Pair:   Pair{Basis: BTC, Counter: USD},
		Side:   BUY,
		Amount: 0.5,
		Price:  66000,
		Cid:    "777",
	}

	if _, err := bfx.Spot.PlaceOrder(order); err != nil {
		t.Error(err)
		return
	}

	if order.OrderId != "12345" {
		t.Errorf("unexpected order id %s", order.OrderId)
	}
	if order.Status != ORDER_UNFINISH {
		t.Errorf("unexpected status %d", order.Status)
	}
}

func TestSpot_PlaceOrderSnapsPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		// the price must land on the tick grid, not go out raw
		if !strings.Contains(string(body), `"price":"66715"`) {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = w.Write([]byte(`[1700000000000,"on-req",null,null,` +
			`[[12346,null,779,"tBTCUSD",1700000000000,1700000000000,0.5,0.5,` +
			`"EXCHANGE LIMIT",null,null,null,null,"ACTIVE",null,null,66715,0]],` +
			`null,"SUCCESS","Submitting order"]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	order := &Order{
		Pair:     Pair{Basis: BTC, Counter: USD},
		Side:     BUY,
		Amount:   0.5,
		Price:    66715.37,
		TickSize: 0.5,
		Cid:      "779",
	}

	if _, err := bfx.Spot.PlaceOrder(order); err != nil {
		t.Error(err)
	}
}

func TestSpot_PlaceOrderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1700000000000,"on-req",null,null,null,null,"ERROR","Invalid order: not enough balance"]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	order := &Order{Pair: Pair{Basis: BTC, Counter: USD}, Side: BUY, Amount: 100, Price: 66000, Cid: "778"}

	_, err := bfx.Spot.PlaceOrder(order)
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Errorf("expect a server error, got %v", err)
		return
	}
	if !strings.Contains(serverErr.Message, "not enough balance") {
		t.Errorf("unexpected message %s", serverErr.Message)
	}
}

func TestSpot_GetOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/r/orders/tBTCUSD/hist" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[[12345,null,777,"tBTCUSD",1700000000000,1700000090000,0,-0.5,` +
			`"EXCHANGE LIMIT",null,null,null,null,"EXECUTED @ 66715.0(0.5)",null,null,66715,66715]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	orders, _, err := bfx.Spot.GetOrders(Pair{Basis: BTC, Counter: USD})
	if err != nil {
		t.Error(err)
		return
	}

	if len(orders) != 1 {
		t.Errorf("unexpected order count %d", len(orders))
		return
	}

	order := orders[0]
	if order.Side != SELL || order.Amount != 0.5 || order.DealAmount != 0.5 {
		t.Errorf("unexpected order %+v", order)
	}
	if order.Status != ORDER_FINISH || order.AvgPrice != 66715 {
		t.Errorf("unexpected order %+v", order)
	}
	if !order.Pair.Eq(Pair{Basis: BTC, Counter: USD}) {
		t.Errorf("unexpected pair %s", order.Pair.String())
	}
}

func TestSpot_GetOrderMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	order := &Order{OrderId: "404404", Pair: Pair{Basis: BTC, Counter: USD}}
	if _, err := bfx.Spot.GetOrder(order); err != ErrNoResult {
		t.Errorf("expect ErrNoResult, got %v", err)
	}
}
