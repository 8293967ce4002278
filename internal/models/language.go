package models

// Language pair selections offered when creating a card. Stored as-is;
// the scheduler never looks at them.
const (
	LangDEFR = "DE_FR"
	LangDEES = "DE_ES"
	LangENES = "EN_ES"
	LangENFR = "EN_FR"
	LangENDE = "EN_DE"
	LangFRES = "FR_ES"
	LangENIT = "EN_IT"
	LangDEIT = "DE_IT"
	LangFRIT = "FR_IT"
	LangESIT = "ES_IT"
)

var languageSelections = map[string]bool{
	LangDEFR: true,
	LangDEES: true,
	LangENES: true,
	LangENFR: true,
	LangENDE: true,
	LangFRES: true,
	LangENIT: true,
	LangDEIT: true,
	LangFRIT: true,
	LangESIT: true,
}

// ValidLanguageSelection reports whether s is one of the offered language pairs.
// The empty string is allowed: the field is optional.
func ValidLanguageSelection(s string) bool {
	return s == "" || languageSelections[s]
}
