package typefmt

import "testing"

func TestNumber(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"7", 7, true},
		{"-3.25", -3.25, true},
		{"1,234.56", 1234.56, true},
		{"$99.95", 99.95, true},
		{"€1,000", 1000, true},
		{"45%", 45, true},
		{"$1,234.50", 1234.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1,,2", 0, false},
		{",5", 0, false},
		{"5,", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	} {
		got, ok := Number(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Number(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNumberCompatible(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		format string
		want   bool
	}{
		{"7", "", true},
		{"7.25", "#.##", true},
		{"7.2", "#.##", true},
		{"7.253", "#.##", false},
		{"7.5", "#,##0", false}, // integer format, fractional input
		{"1,234", "#,##0", true},
		{"99.95", "$#,##0.00", true},
		{"abc", "#.##", false},
		{"12.345", "currency", true}, // unrecognized format is unconstrained
	} {
		if got := NumberCompatible(tc.raw, tc.format); got != tc.want {
			t.Errorf("NumberCompatible(%q, %q) = %v, want %v", tc.raw, tc.format, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	for _, in := range []string{"2024-12-31", "2024/12/31", "12/31/2024", "Jan 2, 2024", "2 Jan 2024"} {
		if _, ok := Date(in); !ok {
			t.Errorf("Date(%q) should parse", in)
		}
	}
	for _, in := range []string{"", "31-12-2024", "not a date", "2024-13-01"} {
		if _, ok := Date(in); ok {
			t.Errorf("Date(%q) should not parse", in)
		}
	}
}

func TestParseDate_Pattern(t *testing.T) {
	// The pattern's input side wins over the permissive set.
	if _, ok := ParseDate("31/12/2024", "DD/MM/YYYY"); !ok {
		t.Fatalf("day-first pattern should accept 31/12/2024")
	}
	if _, ok := ParseDate("31/12/2024", ""); ok {
		t.Fatalf("permissive set is month-first; 31/12/2024 should fail")
	}
	// Unrecognized patterns fall back to the permissive set.
	if _, ok := ParseDate("2024-12-31", "fncy"); !ok {
		t.Fatalf("unrecognized pattern should fall back to permissive parsing")
	}
}

func TestTime(t *testing.T) {
	for _, in := range []string{"09:30", "23:59:59", "9:30 PM", "9:30PM"} {
		if _, ok := Time(in); !ok {
			t.Errorf("Time(%q) should parse", in)
		}
	}
	for _, in := range []string{"25:00", "noon", ""} {
		if _, ok := Time(in); ok {
			t.Errorf("Time(%q) should not parse", in)
		}
	}
	if _, ok := ParseTime("09:30 PM", "hh:mm A"); !ok {
		t.Fatalf("12-hour pattern should accept 09:30 PM")
	}
}

func TestLayout(t *testing.T) {
	for _, tc := range []struct {
		pattern    string
		layout     string
		recognized bool
	}{
		{"YYYY-MM-DD", "2006-01-02", true},
		{"DD/MM/YYYY", "02/01/2006", true},
		{"hh:mm A", "03:04 PM", true},
		{"HH:mm:ss", "15:04:05", true},
		{"", "", false},
		{"fncy", "fncy", false},
	} {
		layout, recognized := Layout(tc.pattern)
		if layout != tc.layout || recognized != tc.recognized {
			t.Errorf("Layout(%q) = (%q, %v), want (%q, %v)",
				tc.pattern, layout, recognized, tc.layout, tc.recognized)
		}
	}
}

func TestBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "yes", "Y", "1"}
	falsy := []string{"false", "No", "n", "0"}
	for _, in := range truthy {
		if v, ok := Bool(in); !ok || !v {
			t.Errorf("Bool(%q) should be true", in)
		}
	}
	for _, in := range falsy {
		if v, ok := Bool(in); !ok || v {
			t.Errorf("Bool(%q) should be false", in)
		}
	}
	for _, in := range []string{"", "maybe", "10", "yep"} {
		if _, ok := Bool(in); ok {
			t.Errorf("Bool(%q) should fail", in)
		}
	}
}
