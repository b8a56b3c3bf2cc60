package utils

import "testing"

func TestConvertToStandardDate(t *testing.T) {
	cases := map[string]string{
		"۲۸ سپتامبر ۲۰۲۵":    "2025/09/28",
		"8 سپتامبر 2025":     "2025/09/08",
		"September 28, 2025": "2025/09/28",
		"28 September 2025":  "2025/09/28",
		"28/09/2025":         "2025/09/28",
		"2025-09-28":         "2025/09/28",
		"2025.9.28":          "2025/09/28",
		"":                   "",
		"   ":                "",
	}
	for in, want := range cases {
		if got := ConvertToStandardDate(in); got != want {
			t.Fatalf("ConvertToStandardDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvertToStandardDateKeepsUnknownInput(t *testing.T) {
	in := "۲۸ مرداد ۱۴۰۴"
	if got := ConvertToStandardDate(in); got != in {
		t.Fatalf("expected unparseable date to be returned unchanged, got %q", got)
	}
}

func TestConvertToStandardDateRejectsImpossibleDay(t *testing.T) {
	if got := ConvertToStandardDate("31 February 2025"); got != "31 February 2025" {
		t.Fatalf("31 February should not convert, got %q", got)
	}
}

func TestValidateDate(t *testing.T) {
	if !ValidateDate("September 28, 2025") {
		t.Fatalf("expected english date to validate")
	}
	if ValidateDate("tomorrow") {
		t.Fatalf("free text should not validate")
	}
	if ValidateDate("2025/09/28") {
		t.Fatalf("already-normalized input is reported as unchanged")
	}
}
