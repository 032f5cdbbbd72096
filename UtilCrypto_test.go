package gobitfinex

import (
	"strings"
	"testing"
)

func TestGetParamHmacSHA384Sign(t *testing.T) {
	// rfc 4231 test case 1
	key := strings.Repeat("\x0b", 20)
	sign, err := GetParamHmacSHA384Sign(key, "Hi There")
	if err != nil {
		t.Error(err)
		return
	}

	expect := "afd03944d84895626b0825f4ab46907f15f9dadbe4101ec682aa034c7cebc59cfaea9ea9076ede7f4af152e8b2fa9cb6"
	if sign != expect {
		t.Errorf("unexpected digest %s", sign)
	}

	again, _ := GetParamHmacSHA384Sign(key, "Hi There")
	if again != sign {
		t.Error("the digest must be deterministic")
	}

	other, _ := GetParamHmacSHA384Sign(key, "Hi There!")
	if other == sign {
		t.Error("a different message must not collide")
	}
}
