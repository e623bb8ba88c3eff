package extract

// RawRecognition is the boundary input: the text an external recognition
// service recovered from a receipt image. The engine treats recognition as a
// black box; no image bytes, paths or network handles cross this boundary.
type RawRecognition struct {
	// Text is the full recognized blob, line breaks preserved.
	Text string
	// LineScores optionally carries the recognizer's per-line raw
	// confidence. The scorer does not consume it; it is surfaced in debug
	// logs only.
	LineScores []float32
	// Locale hints at the receipt's language region ("fr-CA", "en-CA").
	// It selects the day/month default for ambiguous dates. Empty means
	// the engine's configured locale.
	Locale string
}
