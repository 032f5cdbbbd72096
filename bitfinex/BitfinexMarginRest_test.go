package bitfinex

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/stone89son/gobitfinex"
)

func TestMargin_GetPositions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/r/positions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[["tBTCUSD","ACTIVE",0.25,64000,0,0,125.5,0.78,33000,2.5,null,987654]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	positions, _, err := bfx.Margin.GetPositions()
	if err != nil {
		t.Error(err)
		return
	}

	if len(positions) != 1 {
		t.Errorf("unexpected position count %d", len(positions))
		return
	}

	position := positions[0]
	if !position.Pair.Eq(Pair{Basis: BTC, Counter: USD}) || position.Status != "ACTIVE" {
		t.Errorf("unexpected position %+v", position)
	}
	if position.Amount != 0.25 || position.BasePrice != 64000 || position.PositionId != 987654 {
		t.Errorf("unexpected position %+v", position)
	}
	if position.LiquidationPrice != 33000 || position.Leverage != 2.5 {
		t.Errorf("unexpected position %+v", position)
	}
}

func TestMargin_ClaimPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/position/claim" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// the legacy generation signs the base64 payload header, no body
		if r.Header.Get(X_BFX_PAYLOAD) == "" || r.Header.Get(X_BFX_SIGNATURE) == "" {
			t.Error("miss the legacy auth headers")
		}
		if body, _ := io.ReadAll(r.Body); len(body) != 0 {
			t.Errorf("the legacy request must carry no body, got %s", body)
		}
		_, _ = w.Write([]byte(`{"id":987654,"status":"ACTIVE"}`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	if _, err := bfx.Margin.ClaimPosition(987654, 0.25); err != nil {
		t.Error(err)
		return
	}

	if _, err := bfx.Margin.ClaimPosition(0, 0.25); err == nil {
		t.Error("expect an argument error on the zero position id")
	}
}

func TestMargin_PlaceFundingOffer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/w/funding/offer/submit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"symbol":"fUSD"`) {
			t.Errorf("unexpected body %s", body)
		}
		// the rate must land on the funding book grid
		if !strings.Contains(string(body), `"rate":"0.0002"`) {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = w.Write([]byte(`[1700000000000,"fon-req",null,null,` +
			`[4242,"fUSD",1700000000000,1700000000000,1000,1000,"LIMIT",null,null,0,"ACTIVE",null,null,null,0.0002,30],` +
			`null,"SUCCESS","Submitting funding offer"]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	offer := &FundingOffer{Currency: USD, Amount: 1000, Rate: 0.000234, RateTick: 0.0001, Period: 30}
	if _, err := bfx.Margin.PlaceFundingOffer(offer); err != nil {
		t.Error(err)
		return
	}

	if offer.OfferId != 4242 || offer.Status != "ACTIVE" {
		t.Errorf("unexpected offer %+v", offer)
	}

	badPeriod := &FundingOffer{Currency: USD, Amount: 1000, Rate: 0.0002, Period: 365}
	if _, err := bfx.Margin.PlaceFundingOffer(badPeriod); err == nil {
		t.Error("expect an argument error on the out of range period")
	}
}

func TestMargin_GetMarginSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/margin_infos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"margin_balance":"10000.5","unrealized_pl":"125.5","unrealized_swap":"0",` +
			`"net_value":"10126","required_margin":"4000","leverage":"2.5","margin_requirement":"13"}]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	summary, _, err := bfx.Margin.GetMarginSummary()
	if err != nil {
		t.Error(err)
		return
	}

	if summary.MarginBalance != 10000.5 || summary.UnrealizedPl != 125.5 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Leverage != 2.5 || summary.RequiredMargin != 4000 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestMargin_GetLoans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/auth/r/funding/loans/fUSD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[[5151,"fUSD","Taken",1700000000000,1700000000000,500,0,"ACTIVE",null,null,null,0.0003,15]]`))
	}))
	defer server.Close()

	bfx := New(testConfig(server.URL))
	loans, _, err := bfx.Margin.GetLoans(USD)
	if err != nil {
		t.Error(err)
		return
	}

	if len(loans) != 1 {
		t.Errorf("unexpected loan count %d", len(loans))
		return
	}
	if loans[0].LoanId != "5151" || loans[0].Amount != 500 || loans[0].Period != 15 {
		t.Errorf("unexpected loan %+v", loans[0])
	}
}
