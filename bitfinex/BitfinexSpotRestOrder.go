package bitfinex

import (
	"context"
	"strconv"
	"strings"
	"time"

	. "github.com/stone89son/gobitfinex"
)

const (
	// order submit flag of the post only order
	FLAG_POST_ONLY = 4096
)

func adaptPlaceType(order *Order) (string, int) {
	if order.Side == BUY_MARKET || order.Side == SELL_MARKET {
		return "EXCHANGE MARKET", 0
	}

	switch order.OrderType {
	case ONLY_MAKER:
		return "EXCHANGE LIMIT", FLAG_POST_ONLY
	case FOK:
		return "EXCHANGE FOK", 0
	case IOC:
		return "EXCHANGE IOC", 0
	default:
		return "EXCHANGE LIMIT", 0
	}
}

func adaptSymbolToPair(symbol string) Pair {
	symbol = strings.TrimPrefix(symbol, "t")
	if strings.Contains(symbol, ":") {
		return NewPair(symbol, ":")
	}
	if len(symbol) == 6 {
		return Pair{
			Basis:   NewCurrency(symbol[:3], ""),
			Counter: NewCurrency(symbol[3:], ""),
		}
	}
	return UNKNOWN_PAIR
}

func adaptOrderStatus(status string) TradeStatus {
	switch {
	case strings.HasPrefix(status, "ACTIVE"):
		return ORDER_UNFINISH
	case strings.HasPrefix(status, "PARTIALLY FILLED"):
		return ORDER_PART_FINISH
	case strings.HasPrefix(status, "EXECUTED"):
		return ORDER_FINISH
	case strings.HasPrefix(status, "CANCELED"):
		return ORDER_CANCEL
	case strings.HasPrefix(status, "RSN_"):
		return ORDER_REJECT
	default:
		return ORDER_UNFINISH
	}
}

// adaptOrder reads one order array of the current generation:
// [ID, GID, CID, SYMBOL, MTS_CREATE, MTS_UPDATE, AMOUNT, AMOUNT_ORIG,
// TYPE, ... , STATUS(13), ... , PRICE(16), PRICE_AVG(17), ...]
func (this *Spot) adaptOrder(row []interface{}) (*Order, error) {
	if len(row) < 18 {
		return nil, &DeserializationError{Msg: "the order row is too short"}
	}

	symbol, _ := row[3].(string)
	status, _ := row[13].(string)

	amountOrig := ToFloat64(row[7])
	amountLeft := ToFloat64(row[6])
	side := BUY
	if amountOrig < 0 {
		side = SELL
		amountOrig = -amountOrig
		amountLeft = -amountLeft
	}

	timestamp := ToInt64(row[4])
	order := &Order{
		OrderId:        strconv.FormatInt(ToInt64(row[0]), 10),
		Cid:            strconv.FormatInt(ToInt64(row[2]), 10),
		Pair:           adaptSymbolToPair(symbol),
		Side:           side,
		Amount:         amountOrig,
		DealAmount:     amountOrig - amountLeft,
		Price:          ToFloat64(row[16]),
		AvgPrice:       ToFloat64(row[17]),
		Status:         adaptOrderStatus(status),
		OrderTimestamp: timestamp,
		OrderDate:      time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
	}
	return order, nil
}

// PlaceOrder submits the order, the amount goes out negative for a
// sell. The order id and the cid come back filled in.
func (this *Spot) PlaceOrder(order *Order) ([]byte, error) {
	if order == nil {
		return nil, &ArgumentError{Msg: "the order is nil"}
	}
	if order.Cid == "" {
		order.Cid = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	cid, err := strconv.ParseInt(order.Cid, 10, 64)
	if err != nil {
		return nil, &ArgumentError{Msg: "the cid must be numeric"}
	}

	amount := order.Amount
	if order.Side == SELL || order.Side == SELL_MARKET {
		amount = -amount
	}

	orderType, flags := adaptPlaceType(order)
	params := Params{
		{Key: "type", Value: orderType},
		{Key: "symbol", Value: adaptSymbol(order.Pair)},
		{Key: "price", Value: FloatToPrice(order.Price, 8, order.TickSize)},
		{Key: "amount", Value: FloatToString(amount, 8)},
		{Key: "cid", Value: cid},
	}
	if flags != 0 {
		params = append(params, Param{Key: "flags", Value: flags})
	}

	// [MTS, TYPE, MESSAGE_ID, null, [[ORDER]], CODE, STATUS, TEXT]
	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/order/submit", params, &response)
	if err != nil {
		return nil, err
	}

	if len(response) < 8 {
		return resp, &DeserializationError{Msg: "the submit notification is too short"}
	}
	if status, _ := response[6].(string); status != "SUCCESS" {
		text, _ := response[7].(string)
		return resp, &ServerError{Message: text}
	}

	rows, _ := response[4].([]interface{})
	if len(rows) == 0 {
		return resp, ErrNoResult
	}
	row, _ := rows[0].([]interface{})
	placed, err := this.adaptOrder(row)
	if err != nil {
		return resp, err
	}

	order.OrderId = placed.OrderId
	order.Status = placed.Status
	order.OrderTimestamp = placed.OrderTimestamp
	order.OrderDate = placed.OrderDate
	return resp, nil
}

// UpdateOrder amends the price and the amount of a resting order, the
// order keeps its id.
func (this *Spot) UpdateOrder(order *Order) ([]byte, error) {
	if order == nil || order.OrderId == "" {
		return nil, &ArgumentError{Msg: "the order id is required"}
	}

	orderId, err := strconv.ParseInt(order.OrderId, 10, 64)
	if err != nil {
		return nil, &ArgumentError{Msg: "the order id must be numeric"}
	}

	amount := order.Amount
	if order.Side == SELL || order.Side == SELL_MARKET {
		amount = -amount
	}

	params := Params{
		{Key: "id", Value: orderId},
		{Key: "price", Value: FloatToPrice(order.Price, 8, order.TickSize)},
		{Key: "amount", Value: FloatToString(amount, 8)},
	}

	// [MTS, TYPE, MESSAGE_ID, null, [ORDER], CODE, STATUS, TEXT]
	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/order/update", params, &response)
	if err != nil {
		return nil, err
	}

	if len(response) < 8 {
		return resp, &DeserializationError{Msg: "the update notification is too short"}
	}
	if status, _ := response[6].(string); status != "SUCCESS" {
		text, _ := response[7].(string)
		return resp, &ServerError{Message: text}
	}

	row, _ := response[4].([]interface{})
	updated, err := this.adaptOrder(row)
	if err != nil {
		return resp, err
	}

	order.Status = updated.Status
	order.Price = updated.Price
	order.Amount = updated.Amount
	return resp, nil
}

func (this *Spot) CancelOrder(order *Order) ([]byte, error) {
	if order == nil || order.OrderId == "" {
		return nil, &ArgumentError{Msg: "the order id is required"}
	}

	orderId, err := strconv.ParseInt(order.OrderId, 10, 64)
	if err != nil {
		return nil, &ArgumentError{Msg: "the order id must be numeric"}
	}

	params := Params{{Key: "id", Value: orderId}}

	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/order/cancel", params, &response)
	if err != nil {
		return nil, err
	}

	if len(response) < 8 {
		return resp, &DeserializationError{Msg: "the cancel notification is too short"}
	}
	if status, _ := response[6].(string); status != "SUCCESS" {
		text, _ := response[7].(string)
		return resp, &ServerError{Message: text}
	}

	order.Status = ORDER_CANCEL_ING
	return resp, nil
}

func (this *Spot) GetOrder(order *Order) ([]byte, error) {
	if order == nil || order.OrderId == "" {
		return nil, &ArgumentError{Msg: "the order id is required"}
	}

	orderId, err := strconv.ParseInt(order.OrderId, 10, 64)
	if err != nil {
		return nil, &ArgumentError{Msg: "the order id must be numeric"}
	}

	params := Params{{Key: "id", Value: []int64{orderId}}}

	// look into the active orders first, the dealed ones live in hist
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/r/orders", params, &response)
	if err != nil {
		return nil, err
	}

	if len(response) == 0 {
		uri, err := FillPath("auth/r/orders/{}/hist", adaptSymbol(order.Pair))
		if err != nil {
			return nil, err
		}
		resp, err = this.DoAuthRequest(context.Background(), "POST", V2, uri, params, &response)
		if err != nil {
			return nil, err
		}
	}

	if len(response) == 0 {
		return resp, ErrNoResult
	}

	found, err := this.adaptOrder(response[0])
	if err != nil {
		return resp, err
	}

	*order = *found
	return resp, nil
}

func (this *Spot) GetOrders(pair Pair) ([]*Order, []byte, error) {
	uri, err := FillPath("auth/r/orders/{}/hist", adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	orders := make([]*Order, 0, len(response))
	for _, row := range response {
		order, err := this.adaptOrder(row)
		if err != nil {
			return nil, resp, err
		}
		orders = append(orders, order)
	}
	return orders, resp, nil
}

func (this *Spot) GetUnFinishOrders(pair Pair) ([]*Order, []byte, error) {
	uri, err := FillPath("auth/r/orders/{}", adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	orders := make([]*Order, 0, len(response))
	for _, row := range response {
		order, err := this.adaptOrder(row)
		if err != nil {
			return nil, resp, err
		}
		orders = append(orders, order)
	}
	return orders, resp, nil
}

type OrderTrade struct {
	TradeId   int64
	OrderId   string
	Pair      Pair
	Price     float64
	Amount    float64
	Fee       float64
	FeeCoin   Currency
	IsMaker   bool
	Timestamp int64
	Date      string
}

// GetOrderTrades lists the executions of one order.
func (this *Spot) GetOrderTrades(order *Order) ([]*OrderTrade, []byte, error) {
	if order == nil || order.OrderId == "" {
		return nil, nil, &ArgumentError{Msg: "the order id is required"}
	}

	uri, err := FillPath("auth/r/order/{}:{}/trades", adaptSymbol(order.Pair), order.OrderId)
	if err != nil {
		return nil, nil, err
	}

	// rows of [ID, SYMBOL, MTS, ORDER_ID, EXEC_AMOUNT, EXEC_PRICE,
	// ORDER_TYPE, ORDER_PRICE, MAKER, FEE, FEE_CURRENCY]
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	trades := make([]*OrderTrade, 0, len(response))
	for _, row := range response {
		if len(row) < 11 {
			return nil, resp, &DeserializationError{Msg: "the order trade row is too short"}
		}

		symbol, _ := row[1].(string)
		feeCoin, _ := row[10].(string)
		timestamp := ToInt64(row[2])

		trades = append(trades, &OrderTrade{
			TradeId:   ToInt64(row[0]),
			OrderId:   strconv.FormatInt(ToInt64(row[3]), 10),
			Pair:      adaptSymbolToPair(symbol),
			Amount:    ToFloat64(row[4]),
			Price:     ToFloat64(row[5]),
			IsMaker:   ToInt64(row[8]) == 1,
			Fee:       ToFloat64(row[9]),
			FeeCoin:   NewCurrency(feeCoin, ""),
			Timestamp: timestamp,
			Date:      time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return trades, resp, nil
}
