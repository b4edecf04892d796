package logging

import "testing"

func TestMaskField(t *testing.T) {
	if attr := MaskField("customer", "0xabc"); attr.Value.String() != RedactedValue {
		t.Fatalf("expected customer value masked, got %q", attr.Value.String())
	}
	if attr := MaskField("restaurant", "0xdef"); attr.Value.String() != "0xdef" {
		t.Fatalf("expected allowlisted key to pass through, got %q", attr.Value.String())
	}
	if attr := MaskField("wallet", ""); attr.Value.String() != "" {
		t.Fatalf("expected empty value untouched, got %q", attr.Value.String())
	}
}

func TestIsAllowlistedNormalizesKey(t *testing.T) {
	if !IsAllowlisted(" Order_ID ") {
		t.Fatalf("expected case and whitespace insensitive lookup")
	}
	if IsAllowlisted("username") {
		t.Fatalf("usernames must stay masked")
	}
}
