package gobitfinex

// api interface
type MarginRestAPI interface {
	GetMarginAccount(pair Pair) (*MarginAccount, []byte, error)
	GetPositions() ([]*Position, []byte, error)
	ClaimPosition(positionId int64, amount float64) ([]byte, error)

	PlaceFundingOffer(offer *FundingOffer) ([]byte, error)
	CancelFundingOffer(offer *FundingOffer) ([]byte, error)
	GetFundingOffers(currency Currency) ([]*FundingOffer, []byte, error)
	GetLoans(currency Currency) ([]*Loan, []byte, error)

	GetExchangeName() string
}
