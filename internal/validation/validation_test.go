package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("email", "a@b.c", v)
	if v["name"] != "required" {
		t.Fatalf("violations = %v", v)
	}
	if _, ok := v["email"]; ok {
		t.Fatalf("email flagged: %v", v)
	}
}

func TestDecimalValidators(t *testing.T) {
	v := Violations{}
	NonNegative("fee", decimal.NewFromInt(-1), v)
	Positive("price", decimal.Zero, v)
	Range("rate", decimal.NewFromInt(150), decimal.Zero, decimal.NewFromInt(100), v)
	if v["fee"] != "must_not_be_negative" || v["price"] != "must_be_positive" || v["rate"] != "out_of_range" {
		t.Fatalf("violations = %v", v)
	}

	ok := Violations{}
	NonNegative("fee", decimal.Zero, ok)
	Positive("price", decimal.NewFromInt(1), ok)
	Range("rate", decimal.NewFromInt(21), decimal.Zero, decimal.NewFromInt(100), ok)
	if !ok.Empty() {
		t.Fatalf("unexpected violations: %v", ok)
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("party", "client", []string{"client", "professional"}, v)
	OneOf("status", "banana", []string{"draft", "sent"}, v)
	if _, ok := v["party"]; ok {
		t.Fatalf("party flagged: %v", v)
	}
	if v["status"] != "invalid_value" {
		t.Fatalf("violations = %v", v)
	}
}
