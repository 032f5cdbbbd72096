package gobitfinex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ToFloat64(v interface{}) float64 {
	if v == nil {
		return 0.0
	}

	switch v.(type) {
	case float64:
		return v.(float64)
	case string:
		vStr := v.(string)
		vF, _ := strconv.ParseFloat(vStr, 64)
		return vF
	default:
		panic("to float64 error.")
	}
}

func ToInt64(v interface{}) int64 {
	if v == nil {
		return 0
	}

	switch v.(type) {
	case float64:
		return int64(v.(float64))
	default:
		vv := fmt.Sprint(v)

		if vv == "" {
			return 0
		}

		vvv, err := strconv.ParseInt(vv, 0, 64)
		if err != nil {
			return 0
		}

		return vvv
	}
}

// FloatToString n :保留的小数点位数,去除末尾多余的0(StripTrailingZeros)
func FloatToString(v float64, n int64) string {
	ret := strconv.FormatFloat(v, 'f', int(n), 64)
	return strconv.FormatFloat(ToFloat64(ret), 'f', -1, 64) //StripTrailingZeros
}

// FloatToPrice n :保留的小数点位数,去除末尾多余的0(StripTrailingZeros)，并加入ticksize
func FloatToPrice(v float64, n int64, tickSize float64) string {
	if tickSize <= 0 {
		return FloatToString(v, n)
	}

	var price = decimal.NewFromFloat(v)
	var tick = decimal.NewFromFloat(tickSize)
	// snap the price down to the tick grid, then trim to n decimals
	var onTick = price.Div(tick).Floor().Mul(tick)
	return onTick.Round(int32(n)).String()
}

func UUID() string {
	return strings.Replace(uuid.New().String(), "-", "", 32)
}

func GetPrecision(minSize float64) int {
	if minSize < 0.0000000001 {
		return 10
	}

	for i := 0; ; i++ {
		if minSize >= 1 {
			return i
		}
		minSize *= 10
	}
}
