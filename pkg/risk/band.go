package risk

// Band is an ordered advisory band derived from a risk score.
type Band string

// Bands from most to least severe.
const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandMonitor  Band = "monitor"
	BandLow      Band = "low"
)

// Risk thresholds that map a score to a band. Boundaries are inclusive:
// a risk of exactly 0.75 is high.
const (
	ThresholdHigh     = 0.75
	ThresholdModerate = 0.55
	ThresholdMonitor  = 0.35
)

// Advisory action text, tied 1:1 to each band.
const (
	advisoryHigh     = "medical screening + reduce training load by 40%"
	advisoryModerate = "modify training, limit high-speed running"
	advisoryMonitor  = "emphasize recovery"
	advisoryLow      = "full training permitted"
)

// Recommend maps a risk score to its advisory band and action text.
//
// It is total over the real line: values above 1 land in the high band and
// values below 0.35 (including negatives) land in the low band, so callers
// never see an error path for borderline arithmetic.
func Recommend(risk float64) (Band, string) {
	switch {
	case risk >= ThresholdHigh:
		return BandHigh, advisoryHigh
	case risk >= ThresholdModerate:
		return BandModerate, advisoryModerate
	case risk >= ThresholdMonitor:
		return BandMonitor, advisoryMonitor
	default:
		return BandLow, advisoryLow
	}
}

// String returns the band label.
func (b Band) String() string {
	return string(b)
}

// IsValid returns true if b is one of the four known bands.
func (b Band) IsValid() bool {
	switch b {
	case BandHigh, BandModerate, BandMonitor, BandLow:
		return true
	default:
		return false
	}
}

// Advisory returns the action text for the band.
func (b Band) Advisory() string {
	switch b {
	case BandHigh:
		return advisoryHigh
	case BandModerate:
		return advisoryModerate
	case BandMonitor:
		return advisoryMonitor
	default:
		return advisoryLow
	}
}

// Color returns the hex display color for the band (no leading '#').
func (b Band) Color() string {
	switch b {
	case BandHigh:
		return "FF4F6A"
	case BandModerate:
		return "FFAB40"
	case BandMonitor:
		return "FFD54F"
	default:
		return "4CC38A"
	}
}
