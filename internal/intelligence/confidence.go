package intelligence

// Confidence bounds in percent. More history means more confidence,
// capped well below certainty.
const (
	ConfidenceMin     = 40
	ConfidenceMax     = 95
	ConfidencePerTick = 2
)

// Confidence derives a bounded confidence percentage from the number of
// observations: min(95, 40 + 2n).
func Confidence(n int) int {
	if n < 0 {
		n = 0
	}
	c := ConfidenceMin + ConfidencePerTick*n
	if c > ConfidenceMax {
		return ConfidenceMax
	}
	return c
}
