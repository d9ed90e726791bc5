package domain

import "testing"

func TestDisplayEntryType(t *testing.T) {
	t.Parallel()

	cases := map[EntryType]string{
		EntryTypeCashInflow:  "CASH IN",
		EntryTypeCashOutflow: "CASH OUT",
		EntryTypeCredit:      "CREDIT",
		EntryTypeAdvance:     "ADVANCE",
		"Something Else":     "Something Else",
	}

	for et, want := range cases {
		if got := DisplayEntryType(et); got != want {
			t.Fatalf("DisplayEntryType(%q) = %q, want %q", et, got, want)
		}
	}
}

func TestEntryTypeColor(t *testing.T) {
	t.Parallel()

	cases := map[EntryType]Color{
		EntryTypeCashInflow:  ColorPositive,
		EntryTypeCashOutflow: ColorNegative,
		EntryTypeCredit:      ColorNeutral,
		EntryTypeAdvance:     ColorNeutral,
		"Unknown":            ColorNeutral,
	}

	for et, want := range cases {
		if got := EntryTypeColor(et); got != want {
			t.Fatalf("EntryTypeColor(%q) = %q, want %q", et, got, want)
		}
	}
}

func TestDisplayCategory(t *testing.T) {
	t.Parallel()

	cases := map[Category]string{
		CategorySales:  "Sales",
		CategoryCOGS:   "COGS",
		CategoryOpex:   "OPEX",
		CategoryAssets: "Assets",
	}

	for c, want := range cases {
		if got := DisplayCategory(c); got != want {
			t.Fatalf("DisplayCategory(%q) = %q, want %q", c, got, want)
		}
	}
}
