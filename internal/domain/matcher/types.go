package matcher

// Config holds matcher configuration.
//
// The two thresholds are intentionally different per direction: matching an
// attachment to a transaction filters on raw name similarity, while the
// reverse direction filters on the composite score.
type Config struct {
	// OwnCompanyName is the reconciling entity's registered name. It appears
	// on every invoice but is never a counterparty, so it is excluded when
	// collecting attachment names.
	OwnCompanyName string

	// StopWords are generic corporate suffixes dropped during name
	// tokenization (e.g. "oy", "ltd").
	StopWords []string

	// NameThreshold is the minimum name similarity required when the
	// transaction carries a contact name (default: 0.5).
	NameThreshold float64

	// ScoreThreshold is the minimum composite score required for named
	// candidates in the attachment-to-transaction direction (default: 1.5).
	ScoreThreshold float64

	// DateWindowDays is the size of the date-proximity bonus window
	// (default: 30).
	DateWindowDays int

	// AmountEpsilon is the tolerance used for amount comparison
	// (default: 1e-6).
	AmountEpsilon float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		OwnCompanyName: "Example Company Oy",
		StopWords:      []string{"oy", "oyj", "ltd", "tmi", "inc", "oy.", "oy,"},
		NameThreshold:  0.5,
		ScoreThreshold: 1.5,
		DateWindowDays: 30,
		AmountEpsilon:  1e-6,
	}
}
