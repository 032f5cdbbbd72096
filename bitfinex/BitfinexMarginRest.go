package bitfinex

import (
	"context"
	"strconv"
	"time"

	. "github.com/stone89son/gobitfinex"
)

type Margin struct {
	*Bitfinex
}

func (this *Margin) GetExchangeName() string {
	return BITFINEX
}

// GetMarginAccount reads the margin info of one symbol:
// ["sym", SYMBOL, [TRADABLE_BALANCE, GROSS_BALANCE, BUY, SELL, ...]]
func (this *Margin) GetMarginAccount(pair Pair) (*MarginAccount, []byte, error) {
	uri, err := FillPath("auth/r/info/margin/{}", adaptSymbol(pair))
	if err != nil {
		return nil, nil, err
	}

	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	if len(response) < 3 {
		return nil, resp, &DeserializationError{Msg: "the margin info is too short"}
	}
	numbers, _ := response[2].([]interface{})
	if len(numbers) < 4 {
		return nil, resp, &DeserializationError{Msg: "the margin numbers are too short"}
	}

	tradable := ToFloat64(numbers[0])
	gross := ToFloat64(numbers[1])

	account := &MarginAccount{
		Pair:       pair,
		SubAccount: make(map[string]MarginSubAccount),
	}
	account.SubAccount[pair.Counter.Symbol] = MarginSubAccount{
		Currency:    pair.Counter,
		Amount:      gross,
		AmountAvail: tradable,
		AmountNet:   gross,
	}
	return account, resp, nil
}

// GetPositions lists the open margin positions:
// [SYMBOL, STATUS, AMOUNT, BASE_PRICE, FUNDING, FUNDING_TYPE,
// PL, PL_PERC, PRICE_LIQ, LEVERAGE, null, POSITION_ID, ...]
func (this *Margin) GetPositions() ([]*Position, []byte, error) {
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/r/positions", nil, &response)
	if err != nil {
		return nil, nil, err
	}

	positions := make([]*Position, 0, len(response))
	for _, row := range response {
		if len(row) < 12 {
			return nil, resp, &DeserializationError{Msg: "the position row is too short"}
		}

		symbol, _ := row[0].(string)
		status, _ := row[1].(string)

		positions = append(positions, &Position{
			Pair:             adaptSymbolToPair(symbol),
			Status:           status,
			Amount:           ToFloat64(row[2]),
			BasePrice:        ToFloat64(row[3]),
			MarginFunding:    ToFloat64(row[4]),
			ProfitLoss:       ToFloat64(row[6]),
			LiquidationPrice: ToFloat64(row[8]),
			Leverage:         ToFloat64(row[9]),
			PositionId:       ToInt64(row[11]),
		})
	}
	return positions, resp, nil
}

// ClaimPosition stays on the legacy generation, the current one never
// got a claim operation.
func (this *Margin) ClaimPosition(positionId int64, amount float64) ([]byte, error) {
	if positionId <= 0 {
		return nil, &ArgumentError{Msg: "the position id is required"}
	}

	params := Params{
		{Key: "position_id", Value: positionId},
		{Key: "amount", Value: FloatToString(amount, 8)},
	}

	var response struct {
		Id     int64  `json:"id"`
		Status string `json:"status"`
	}
	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "position/claim", params, &response)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func adaptFundingOffer(row []interface{}, loc *time.Location) (*FundingOffer, error) {
	// [ID, SYMBOL, MTS_CREATED, MTS_UPDATED, AMOUNT, AMOUNT_ORIG, TYPE,
	// null, null, FLAGS, STATUS, null, null, null, RATE, PERIOD, ...]
	if len(row) < 16 {
		return nil, &DeserializationError{Msg: "the funding offer row is too short"}
	}

	symbol, _ := row[1].(string)
	status, _ := row[10].(string)
	timestamp := ToInt64(row[2])

	return &FundingOffer{
		OfferId:        ToInt64(row[0]),
		Currency:       NewCurrency(adaptFundingSymbolToCurrency(symbol), ""),
		Amount:         ToFloat64(row[4]),
		Rate:           ToFloat64(row[14]),
		Period:         ToInt64(row[15]),
		Status:         status,
		OfferTimestamp: timestamp,
		OfferDate:      time.UnixMilli(timestamp).In(loc).Format(GO_BIRTHDAY),
	}, nil
}

func adaptFundingSymbolToCurrency(symbol string) string {
	if len(symbol) > 1 && symbol[0] == 'f' {
		return symbol[1:]
	}
	return symbol
}

// PlaceFundingOffer lends the amount out on the funding book, the rate
// is the daily one.
func (this *Margin) PlaceFundingOffer(offer *FundingOffer) ([]byte, error) {
	if offer == nil {
		return nil, &ArgumentError{Msg: "the offer is nil"}
	}
	if offer.Period < 2 || offer.Period > 120 {
		return nil, &ArgumentError{Msg: "the funding period must be 2~120 days"}
	}

	params := Params{
		{Key: "type", Value: "LIMIT"},
		{Key: "symbol", Value: adaptFundingSymbol(offer.Currency)},
		{Key: "amount", Value: FloatToString(offer.Amount, 8)},
		{Key: "rate", Value: FloatToPrice(offer.Rate, 8, offer.RateTick)},
		{Key: "period", Value: offer.Period},
	}

	// [MTS, TYPE, MESSAGE_ID, null, [OFFER], CODE, STATUS, TEXT]
	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/funding/offer/submit", params, &response)
	if err != nil {
		return nil, err
	}

	if len(response) < 8 {
		return resp, &DeserializationError{Msg: "the offer notification is too short"}
	}
	if status, _ := response[6].(string); status != "SUCCESS" {
		text, _ := response[7].(string)
		return resp, &ServerError{Message: text}
	}

	row, _ := response[4].([]interface{})
	placed, err := adaptFundingOffer(row, this.config.Location)
	if err != nil {
		return resp, err
	}

	offer.OfferId = placed.OfferId
	offer.Status = placed.Status
	offer.OfferTimestamp = placed.OfferTimestamp
	offer.OfferDate = placed.OfferDate
	return resp, nil
}

func (this *Margin) CancelFundingOffer(offer *FundingOffer) ([]byte, error) {
	if offer == nil || offer.OfferId == 0 {
		return nil, &ArgumentError{Msg: "the offer id is required"}
	}

	params := Params{{Key: "id", Value: offer.OfferId}}

	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/funding/offer/cancel", params, &response)
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
	return resp, nil
}

func (this *Margin) GetFundingOffers(currency Currency) ([]*FundingOffer, []byte, error) {
	uri, err := FillPath("auth/r/funding/offers/{}", adaptFundingSymbol(currency))
	if err != nil {
		return nil, nil, err
	}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	offers := make([]*FundingOffer, 0, len(response))
	for _, row := range response {
		offer, err := adaptFundingOffer(row, this.config.Location)
		if err != nil {
			return nil, resp, err
		}
		offers = append(offers, offer)
	}
	return offers, resp, nil
}

// GetFundingCredits lists the funding lent out and currently used, the
// rows share the loan shape.
func (this *Margin) GetFundingCredits(currency Currency) ([]*Loan, []byte, error) {
	uri, err := FillPath("auth/r/funding/credits/{}", adaptFundingSymbol(currency))
	if err != nil {
		return nil, nil, err
	}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	credits := make([]*Loan, 0, len(response))
	for _, row := range response {
		if len(row) < 13 {
			return nil, resp, &DeserializationError{Msg: "the credit row is too short"}
		}

		timestamp := ToInt64(row[3])
		credits = append(credits, &Loan{
			LoanId:        strconv.FormatInt(ToInt64(row[0]), 10),
			Currency:      currency,
			Amount:        ToFloat64(row[5]),
			Rate:          ToFloat64(row[11]),
			Period:        ToInt64(row[12]),
			Status:        LOAN_UNFINISH,
			LoanTimestamp: timestamp,
			LoanDate:      time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return credits, resp, nil
}

type MarginSummary struct {
	MarginBalance     float64
	UnrealizedPl      float64
	UnrealizedSwap    float64
	NetValue          float64
	RequiredMargin    float64
	Leverage          float64
	MarginRequirement float64
}

// GetMarginSummary reads the account wide margin numbers, the operation
// stayed on the legacy generation.
func (this *Margin) GetMarginSummary() (*MarginSummary, []byte, error) {
	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "margin_infos", nil, nil)
	if err != nil {
		return nil, nil, err
	}

	var record struct {
		MarginBalance     string `json:"margin_balance"`
		UnrealizedPl      string `json:"unrealized_pl"`
		UnrealizedSwap    string `json:"unrealized_swap"`
		NetValue          string `json:"net_value"`
		RequiredMargin    string `json:"required_margin"`
		Leverage          string `json:"leverage"`
		MarginRequirement string `json:"margin_requirement"`
	}
	if err := UnwrapFirst(resp, &record); err != nil {
		return nil, resp, err
	}

	return &MarginSummary{
		MarginBalance:     ToFloat64(record.MarginBalance),
		UnrealizedPl:      ToFloat64(record.UnrealizedPl),
		UnrealizedSwap:    ToFloat64(record.UnrealizedSwap),
		NetValue:          ToFloat64(record.NetValue),
		RequiredMargin:    ToFloat64(record.RequiredMargin),
		Leverage:          ToFloat64(record.Leverage),
		MarginRequirement: ToFloat64(record.MarginRequirement),
	}, resp, nil
}

// GetLoans lists the funding taken by the margin positions:
// [ID, SYMBOL, SIDE, MTS_CREATE, MTS_UPDATE, AMOUNT, FLAGS, STATUS,
// null, null, null, RATE, PERIOD, ...]
func (this *Margin) GetLoans(currency Currency) ([]*Loan, []byte, error) {
	uri, err := FillPath("auth/r/funding/loans/{}", adaptFundingSymbol(currency))
	if err != nil {
		return nil, nil, err
	}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, nil, err
	}

	loans := make([]*Loan, 0, len(response))
	for _, row := range response {
		if len(row) < 13 {
			return nil, resp, &DeserializationError{Msg: "the loan row is too short"}
		}

		timestamp := ToInt64(row[3])
		loans = append(loans, &Loan{
			LoanId:        strconv.FormatInt(ToInt64(row[0]), 10),
			Currency:      currency,
			Amount:        ToFloat64(row[5]),
			Rate:          ToFloat64(row[11]),
			Period:        ToInt64(row[12]),
			Status:        LOAN_UNFINISH,
			LoanTimestamp: timestamp,
			LoanDate:      time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return loans, resp, nil
}
