package model

// SourceFallback marks a NarrativeResult produced without any backend call.
const SourceFallback = "fallback"

// NarrativeResult is the outcome of one explanation request. Text is always
// non-empty; Source names the backend model that produced it, or
// SourceFallback when every attempt failed.
type NarrativeResult struct {
	Text   string
	Source string
}

// Fallback reports whether the result is the deterministic fallback text.
func (r NarrativeResult) Fallback() bool { return r.Source == SourceFallback }
