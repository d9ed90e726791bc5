package domain

// Color is the display tone a dashboard should render a value in.
type Color string

const (
	ColorPositive Color = "positive"
	ColorNegative Color = "negative"
	ColorNeutral  Color = "neutral"
)

// DisplayEntryType returns the dashboard label for an entry type.
// Unknown values pass through unchanged so display never fails.
func DisplayEntryType(t EntryType) string {
	switch t {
	case EntryTypeCashInflow:
		return "CASH IN"
	case EntryTypeCashOutflow:
		return "CASH OUT"
	case EntryTypeCredit:
		return "CREDIT"
	case EntryTypeAdvance:
		return "ADVANCE"
	default:
		return string(t)
	}
}

// EntryTypeColor returns the display tone for an entry type.
func EntryTypeColor(t EntryType) Color {
	switch t {
	case EntryTypeCashInflow:
		return ColorPositive
	case EntryTypeCashOutflow:
		return ColorNegative
	default:
		return ColorNeutral
	}
}

// DisplayCategory returns the dashboard label for a category.
// Identity except Opex, which is uppercased.
func DisplayCategory(c Category) string {
	if c == CategoryOpex {
		return "OPEX"
	}

	return string(c)
}
