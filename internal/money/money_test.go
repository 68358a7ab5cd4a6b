package money

import "testing"

func TestToCents(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"19.99", 1999},
		{"19,99", 1999},
		{"1250", 125000},
		{"1250.00", 125000},
		{"0.05", 5},
		{"8.00", 800},
		{"7.5", 750},
		{"-3.20", -320},
		{" 450.00 ", 45000},
	}

	for _, tc := range cases {
		got, err := ToCents(tc.in)
		if err != nil {
			t.Errorf("ToCents(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToCentsRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "19.999", "1.2.3", "12e3"} {
		if _, err := ToCents(in); err == nil {
			t.Errorf("ToCents(%q) expected error, got nil", in)
		}
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 5, 99, 100, 1999, 211800, -320} {
		s := FromCents(c)
		back, err := ToCents(s)
		if err != nil {
			t.Fatalf("ToCents(FromCents(%d)) returned error: %v", c, err)
		}
		if back != c {
			t.Errorf("round trip %d -> %q -> %d", c, s, back)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{211800, "€ 2.118,00"},
		{86800, "€ 868,00"},
		{125000000, "€ 1.250.000,00"},
		{5, "€ 0,05"},
		{-4800, "€ -48,00"},
	}

	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
