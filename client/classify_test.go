package client

import "testing"

func TestClassifyOrchestrator(t *testing.T) {
	cases := []string{
		"[ORCHESTRATOR_AGENT] FINISH: done",
		`{"mime_type":"text/plain","data":"[ORCHESTRATOR_AGENT] FINISH: all steps resolved","role":"model"}`,
		`{"message":"[ORCHESTRATOR_AGENT] FINISH"}`,
	}
	for _, raw := range cases {
		if got := Classify(raw); got.Kind != Orchestrator {
			t.Errorf("Classify(%q).Kind = %v, want Orchestrator", raw, got.Kind)
		}
	}
}

func TestClassifyAnalyser(t *testing.T) {
	cases := []struct {
		raw     string
		keyword string
	}{
		{"[ANALYSER_AGENT] segmentation complete", "complete"},
		{"[ANALYSER_AGENT] segments assigned: DONE", "done"},
		{`{"data":"[ANALYSER_AGENT] lap analysis finished","role":"model"}`, "finished"},
	}
	for _, c := range cases {
		got := Classify(c.raw)
		if got.Kind != Analyser {
			t.Errorf("Classify(%q).Kind = %v, want Analyser", c.raw, got.Kind)
			continue
		}
		if got.Keyword != c.keyword {
			t.Errorf("Classify(%q).Keyword = %q, want %q", c.raw, got.Keyword, c.keyword)
		}
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	cases := []string{
		"",
		"hello from the agent",
		"not json { at all",
		"[ANALYSER_AGENT] starting lap analysis", // marker without completion keyword
		"[ORCHESTRATOR_AGENT] step 2 of 5",       // marker without FINISH
		`{"mime_type":"audio/pcm","data":"AAAA","role":"model"}`,
		`{"data":42}`, // non-string data field
	}
	for _, raw := range cases {
		if got := Classify(raw); got.Kind != Unrecognized {
			t.Errorf("Classify(%q) = %+v, want Unrecognized", raw, got)
		}
	}
}
