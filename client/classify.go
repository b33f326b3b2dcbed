package client

import (
	"encoding/json"
	"strings"
)

// The push channel carries free-text and JSON-wrapped agent notifications.
// Completion markers are plain substrings; everything that matches neither
// pattern is expected traffic and ignored.
const (
	orchestratorMarker = "[ORCHESTRATOR_AGENT]"
	analyserMarker     = "[ANALYSER_AGENT]"
	orchestratorFinish = "FINISH"
)

// analyserKeywords qualify an analyser-marker frame as a completion. Checked
// case-insensitively, longest first so the reported keyword is exact.
var analyserKeywords = []string{"completed", "complete", "finished", "success", "done"}

// Kind of an inbound frame after classification.
type Kind int

const (
	Unrecognized Kind = iota
	Orchestrator
	Analyser
)

// Classification is the tagged result of matching one inbound frame.
type Classification struct {
	Kind    Kind
	Keyword string // set for Analyser matches
}

// Classify runs both pattern checks against the raw frame text and, when the
// frame parses as a JSON object, against its data/message fields. Matching
// rules live here only so they stay unit-testable independent of transport.
func Classify(raw string) Classification {
	candidates := []string{raw}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		for _, field := range []string{"data", "message"} {
			if s, ok := obj[field].(string); ok && s != "" {
				candidates = append(candidates, s)
			}
		}
	}

	for _, text := range candidates {
		if strings.Contains(text, orchestratorMarker) && strings.Contains(text, orchestratorFinish) {
			return Classification{Kind: Orchestrator}
		}
	}
	for _, text := range candidates {
		if !strings.Contains(text, analyserMarker) {
			continue
		}
		lower := strings.ToLower(text)
		for _, kw := range analyserKeywords {
			if strings.Contains(lower, kw) {
				return Classification{Kind: Analyser, Keyword: kw}
			}
		}
	}
	return Classification{Kind: Unrecognized}
}
