package bitfinex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	. "github.com/stone89son/gobitfinex"
)

// GetAccount collects the balances of every wallet kind.
func (this *Spot) GetAccount() (*Account, []byte, error) {
	// rows of [WALLET_TYPE, CURRENCY, BALANCE, UNSETTLED_INTEREST, AVAILABLE_BALANCE, ...]
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/r/wallets", nil, &response)
	if err != nil {
		return nil, nil, err
	}

	account := &Account{
		Exchange:    BITFINEX,
		SubAccounts: make(map[Currency]SubAccount),
	}

	for _, row := range response {
		if len(row) < 5 {
			return nil, resp, &DeserializationError{Msg: "the wallet row is too short"}
		}

		wallet, _ := row[0].(string)
		symbol, _ := row[1].(string)
		currency := NewCurrency(symbol, "")

		balance := ToFloat64(row[2])
		available := balance
		if row[4] != nil {
			available = ToFloat64(row[4])
		}

		sub := account.SubAccounts[currency]
		sub.Currency = currency
		sub.Wallet = wallet
		sub.Amount += balance
		sub.FrozenAmount += balance - available
		account.SubAccounts[currency] = sub

		account.Asset += balance
		account.NetAsset += available
	}

	return account, resp, nil
}

type AccountInfo struct {
	MakerFee float64
	TakerFee float64
}

// GetAccountInfo reads the fee schedule, the legacy api wraps the
// record in a one element array.
func (this *Spot) GetAccountInfo() (*AccountInfo, []byte, error) {
	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "account_infos", nil, nil)
	if err != nil {
		return nil, nil, err
	}

	var record struct {
		MakerFees string `json:"maker_fees"`
		TakerFees string `json:"taker_fees"`
	}
	if err := UnwrapFirst(resp, &record); err != nil {
		return nil, resp, err
	}

	return &AccountInfo{
		MakerFee: ToFloat64(record.MakerFees),
		TakerFee: ToFloat64(record.TakerFees),
	}, resp, nil
}

type AccountSummary struct {
	TradeVolume30d float64
	FeesFunding30d float64
	FeesTrading30d float64
	MakerFee       float64
	TakerFee       float64
}

func (this *Spot) GetSummary() (*AccountSummary, []byte, error) {
	var response struct {
		TradeVolume struct {
			Volume float64 `json:"curr_vol"`
		} `json:"trade_vol_30d"`
		FeesFunding struct {
			Total float64 `json:"total"`
		} `json:"fees_funding_30d"`
		FeesTrading struct {
			Total float64 `json:"total"`
		} `json:"fees_trading_30d"`
		MakerFee float64 `json:"maker_fee"`
		TakerFee float64 `json:"taker_fee"`
	}

	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "summary", nil, &response)
	if err != nil {
		return nil, nil, err
	}

	return &AccountSummary{
		TradeVolume30d: response.TradeVolume.Volume,
		FeesFunding30d: response.FeesFunding.Total,
		FeesTrading30d: response.FeesTrading.Total,
		MakerFee:       response.MakerFee,
		TakerFee:       response.TakerFee,
	}, resp, nil
}

// GetDepositAddress requests a deposit address on the named wallet,
// method is the coin transport, eg: bitcoin, ethereum.
func (this *Spot) GetDepositAddress(method, wallet string) (string, []byte, error) {
	if wallet != WALLET_EXCHANGE && wallet != WALLET_MARGIN && wallet != WALLET_FUNDING {
		return "", nil, &ArgumentError{Msg: "the wallet must be one of exchange/margin/funding"}
	}

	params := Params{
		{Key: "method", Value: method},
		{Key: "wallet_name", Value: wallet},
		{Key: "renew", Value: 0},
	}

	var response struct {
		Result  string `json:"result"`
		Address string `json:"address"`
	}
	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "deposit/new", params, &response)
	if err != nil {
		return "", nil, err
	}
	if response.Result != "success" {
		return "", resp, &ServerError{Message: fmt.Sprintf("deposit address result %q", response.Result)}
	}
	return response.Address, resp, nil
}

// Transfer moves an amount between two wallets of the same account.
func (this *Spot) Transfer(currency Currency, amount float64, walletFrom, walletTo string) ([]byte, error) {
	params := Params{
		{Key: "amount", Value: FloatToString(amount, 8)},
		{Key: "currency", Value: adaptCurrency(currency)},
		{Key: "walletfrom", Value: walletFrom},
		{Key: "walletto", Value: walletTo},
	}

	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "transfer", params, nil)
	if err != nil {
		return nil, err
	}

	var record struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := UnwrapFirst(resp, &record); err != nil {
		return resp, err
	}
	if record.Status != "success" {
		return resp, &ServerError{Message: record.Message}
	}
	return resp, nil
}

// Withdraw sends an amount out to an external address, it answers the
// remote withdrawal id.
func (this *Spot) Withdraw(withdrawType, wallet string, amount float64, address string) (string, []byte, error) {
	params := Params{
		{Key: "withdraw_type", Value: withdrawType},
		{Key: "walletselected", Value: wallet},
		{Key: "amount", Value: FloatToString(amount, 8)},
		{Key: "address", Value: address},
	}

	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "withdraw", params, nil)
	if err != nil {
		return "", nil, err
	}

	var record struct {
		Status       string  `json:"status"`
		Message      string  `json:"message"`
		WithdrawalId float64 `json:"withdrawal_id"`
	}
	if err := UnwrapFirst(resp, &record); err != nil {
		return "", resp, err
	}
	if record.Status != "success" {
		return "", resp, &ServerError{Message: record.Message}
	}
	return strconv.FormatInt(int64(record.WithdrawalId), 10), resp, nil
}

// GetBalances reads the wallet balances off the legacy generation, the
// current one answers the same data through GetAccount.
func (this *Spot) GetBalances() (*Account, []byte, error) {
	response := make([]struct {
		Type      string `json:"type"`
		Currency  string `json:"currency"`
		Amount    string `json:"amount"`
		Available string `json:"available"`
	}, 0)

	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "balances", nil, &response)
	if err != nil {
		return nil, nil, err
	}

	account := &Account{
		Exchange:    BITFINEX,
		SubAccounts: make(map[Currency]SubAccount),
	}
	for _, row := range response {
		currency := NewCurrency(row.Currency, "")
		amount := ToFloat64(row.Amount)
		available := ToFloat64(row.Available)

		sub := account.SubAccounts[currency]
		sub.Currency = currency
		sub.Wallet = row.Type
		sub.Amount += amount
		sub.FrozenAmount += amount - available
		account.SubAccounts[currency] = sub

		account.Asset += amount
		account.NetAsset += available
	}
	return account, resp, nil
}

// GetWithdrawFees reads the withdrawal fee per currency.
func (this *Spot) GetWithdrawFees() (map[Currency]float64, []byte, error) {
	var response struct {
		Withdraw map[string]string `json:"withdraw"`
	}
	resp, err := this.DoAuthRequest(context.Background(), "POST", V1, "account_fees", nil, &response)
	if err != nil {
		return nil, nil, err
	}

	fees := make(map[Currency]float64, len(response.Withdraw))
	for symbol, fee := range response.Withdraw {
		fees[NewCurrency(symbol, "")] = ToFloat64(fee)
	}
	return fees, resp, nil
}

type UserInfo struct {
	UserId   int64
	Email    string
	Username string
	Verified bool
}

// GetUserInfo reads the account identity:
// [ID, EMAIL, USERNAME, MTS_ACCOUNT_CREATE, VERIFIED, ...]
func (this *Spot) GetUserInfo() (*UserInfo, []byte, error) {
	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/r/info/user", nil, &response)
	if err != nil {
		return nil, nil, err
	}
	if len(response) < 5 {
		return nil, resp, &DeserializationError{Msg: "the user info is too short"}
	}

	email, _ := response[1].(string)
	username, _ := response[2].(string)
	return &UserInfo{
		UserId:   ToInt64(response[0]),
		Email:    email,
		Username: username,
		Verified: ToInt64(response[4]) == 1,
	}, resp, nil
}

type Alert struct {
	Key   string
	Pair  Pair
	Price float64
}

func adaptAlert(row []interface{}) (*Alert, error) {
	// [KEY, TYPE, SYMBOL, PRICE, COUNTDOWN]
	if len(row) < 4 {
		return nil, &DeserializationError{Msg: "the alert row is too short"}
	}
	key, _ := row[0].(string)
	symbol, _ := row[2].(string)
	return &Alert{
		Key:   key,
		Pair:  adaptSymbolToPair(symbol),
		Price: ToFloat64(row[3]),
	}, nil
}

func (this *Spot) GetAlerts() ([]*Alert, []byte, error) {
	params := Params{{Key: "type", Value: "price"}}

	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/r/alerts", params, &response)
	if err != nil {
		return nil, nil, err
	}

	alerts := make([]*Alert, 0, len(response))
	for _, row := range response {
		alert, err := adaptAlert(row)
		if err != nil {
			return nil, resp, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, resp, nil
}

// SetAlert arms a price alert on the pair.
func (this *Spot) SetAlert(pair Pair, price float64) (*Alert, []byte, error) {
	params := Params{
		{Key: "type", Value: "price"},
		{Key: "symbol", Value: adaptSymbol(pair)},
		{Key: "price", Value: price},
	}

	response := make([]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, "auth/w/alert/set", params, &response)
	if err != nil {
		return nil, nil, err
	}

	alert, err := adaptAlert(response)
	if err != nil {
		return nil, resp, err
	}
	return alert, resp, nil
}

func (this *Spot) DeleteAlert(pair Pair, price float64) ([]byte, error) {
	uri, err := FillPath("auth/w/alert/price:{}:{}/del", adaptSymbol(pair), FloatToString(price, 8))
	if err != nil {
		return nil, err
	}

	response := make([]bool, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, nil, &response)
	if err != nil {
		return nil, err
	}
	if len(response) == 0 || !response[0] {
		return resp, &ServerError{Message: "the alert was not deleted"}
	}
	return resp, nil
}

type Ledger struct {
	LedgerId    int64
	Currency    Currency
	Amount      float64
	Balance     float64
	Description string
	Timestamp   int64
	Date        string
}

func (this *Spot) GetLedgers(currency Currency, since int64, limit int) ([]*Ledger, []byte, error) {
	uri, err := FillPath("auth/r/ledgers/{}/hist", adaptCurrency(currency))
	if err != nil {
		return nil, nil, err
	}

	params := Params{}
	if since > 0 {
		params = append(params, Param{Key: "start", Value: since})
	}
	if limit > 0 {
		params = append(params, Param{Key: "limit", Value: limit})
	}

	// rows of [ID, CURRENCY, null, MTS, null, AMOUNT, BALANCE, null, DESCRIPTION]
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, params, &response)
	if err != nil {
		return nil, nil, err
	}

	ledgers := make([]*Ledger, 0, len(response))
	for _, row := range response {
		if len(row) < 9 {
			return nil, resp, &DeserializationError{Msg: "the ledger row is too short"}
		}

		symbol, _ := row[1].(string)
		description, _ := row[8].(string)
		timestamp := ToInt64(row[3])

		ledgers = append(ledgers, &Ledger{
			LedgerId:    ToInt64(row[0]),
			Currency:    NewCurrency(symbol, ""),
			Amount:      ToFloat64(row[5]),
			Balance:     ToFloat64(row[6]),
			Description: description,
			Timestamp:   timestamp,
			Date:        time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return ledgers, resp, nil
}

type Movement struct {
	MovementId int64
	Currency   Currency
	Method     string
	Amount     float64
	Fee        float64
	Status     string
	Address    string
	Timestamp  int64
	Date       string
}

// GetMovements lists the deposits and the withdrawals of one currency.
func (this *Spot) GetMovements(currency Currency, since int64, limit int) ([]*Movement, []byte, error) {
	uri, err := FillPath("auth/r/movements/{}/hist", adaptCurrency(currency))
	if err != nil {
		return nil, nil, err
	}

	params := Params{}
	if since > 0 {
		params = append(params, Param{Key: "start", Value: since})
	}
	if limit > 0 {
		params = append(params, Param{Key: "limit", Value: limit})
	}

	// rows of [ID, CURRENCY, METHOD, null, null, MTS_STARTED, MTS_UPDATED,
	// null, null, STATUS, null, null, AMOUNT, FEES, null, null, ADDRESS, ...]
	response := make([][]interface{}, 0)
	resp, err := this.DoAuthRequest(context.Background(), "POST", V2, uri, params, &response)
	if err != nil {
		return nil, nil, err
	}

	movements := make([]*Movement, 0, len(response))
	for _, row := range response {
		if len(row) < 17 {
			return nil, resp, &DeserializationError{Msg: "the movement row is too short"}
		}

		symbol, _ := row[1].(string)
		method, _ := row[2].(string)
		status, _ := row[9].(string)
		address, _ := row[16].(string)
		timestamp := ToInt64(row[5])

		movements = append(movements, &Movement{
			MovementId: ToInt64(row[0]),
			Currency:   NewCurrency(symbol, ""),
			Method:     method,
			Amount:     ToFloat64(row[12]),
			Fee:        ToFloat64(row[13]),
			Status:     status,
			Address:    address,
			Timestamp:  timestamp,
			Date:       time.UnixMilli(timestamp).In(this.config.Location).Format(GO_BIRTHDAY),
		})
	}
	return movements, resp, nil
}
