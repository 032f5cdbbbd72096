package gobitfinex

import (
	"regexp"
	"testing"
)

func TestFloatToString(t *testing.T) {
	if s := FloatToString(12.3400, 4); s != "12.34" {
		t.Errorf("unexpected %s", s)
	}
	if s := FloatToString(0.10000000, 8); s != "0.1" {
		t.Errorf("unexpected %s", s)
	}
	if s := FloatToString(3, 2); s != "3" {
		t.Errorf("unexpected %s", s)
	}
}

func TestFloatToPrice(t *testing.T) {
	if s := FloatToPrice(66715.37, 2, 0.5); s != "66715" {
		t.Errorf("unexpected %s", s)
	}
	if s := FloatToPrice(66715.87, 2, 0.5); s != "66715.5" {
		t.Errorf("unexpected %s", s)
	}
	// no tick size falls back to the plain rounding
	if s := FloatToPrice(66715.37, 1, 0); s != "66715.4" {
		t.Errorf("unexpected %s", s)
	}
}

func TestGetPrecision(t *testing.T) {
	if p := GetPrecision(0.001); p != 3 {
		t.Errorf("unexpected %d", p)
	}
	if p := GetPrecision(1); p != 0 {
		t.Errorf("unexpected %d", p)
	}
	if p := GetPrecision(0); p != 10 {
		t.Errorf("unexpected %d", p)
	}
}

func TestToFloat64(t *testing.T) {
	if v := ToFloat64("12.5"); v != 12.5 {
		t.Errorf("unexpected %f", v)
	}
	if v := ToFloat64(12.5); v != 12.5 {
		t.Errorf("unexpected %f", v)
	}
	if v := ToFloat64(nil); v != 0 {
		t.Errorf("unexpected %f", v)
	}
}

func TestUUID(t *testing.T) {
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(UUID()) {
		t.Errorf("unexpected uuid %s", UUID())
	}
	if UUID() == UUID() {
		t.Error("the uuids must not repeat")
	}
}
