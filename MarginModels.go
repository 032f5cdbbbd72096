package gobitfinex

type LoanStatus int

const (
	LOAN_UNFINISH LoanStatus = iota
	LOAN_PART_FINISH
	LOAN_FINISH
	_
	_
	_
	LOAN_FAIL
	LOAN_REPAY
)

type MarginAccount struct {
	Pair       Pair
	SubAccount map[string]MarginSubAccount

	//预计爆仓价格
	LiquidationPrice float64
	RiskRate         float64
	MarginRatio      float64
}

type MarginSubAccount struct {
	Currency Currency
	// Amount = AmountNet + AmountLoaned = AmountAvail + AmountFrozen
	Amount float64
	// 可用额度
	AmountAvail float64
	// 冻结额度
	AmountFrozen float64
	// 净值额度
	AmountNet float64
	// 已借贷额度
	AmountLoaned float64
	// 当前借贷费用
	LoaningFee float64
}

type Position struct {
	Pair             Pair
	Amount           float64 // positive long, negative short
	BasePrice        float64
	MarginFunding    float64
	ProfitLoss       float64
	LiquidationPrice float64
	Leverage         float64
	Status           string
	PositionId       int64
}

// FundingOffer is an offer on the funding book, the margin
// currency lent out to the margin traders.
type FundingOffer struct {
	OfferId        int64
	Currency       Currency
	Amount         float64
	Rate           float64 // daily rate
	Period         int64   // days
	Status         string
	OfferTimestamp int64
	OfferDate      string
	// RateTick snaps the rate onto the funding book grid before the
	// offer goes out, 0 sends the rate as given.
	RateTick float64
}

type Loan struct {
	Currency       Currency // Currency
	Amount         float64  // Loan amount
	Rate           float64  // daily rate
	Period         int64    // days
	Status         LoanStatus
	LoanId         string // Remote loan record id
	LoanTimestamp  int64  // Loan timestamp
	LoanDate       string // Loan date
	RepayId        string // Remote loan record repay id
	RepayTimestamp int64  // Repay Timestamp
	RepayDate      string // Repay Date
}
