package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestSystemPromptCarriesProfile(t *testing.T) {
	profile := &UserProfile{PregnancyWeek: 22, Trimester: 2, Restrictions: []string{"vegetarian"}}
	profile.FirstName = "Amira"

	prompt := systemPrompt(profile)
	for _, want := range []string{"Amira", "week 22", "trimester 2", "vegetarian"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}

	if p := systemPrompt(nil); p == "" {
		t.Error("nil profile must still yield a base prompt")
	}
}

func TestRunToolLoopRecoversFromUnknownTool(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			// first round asks for a tool the service does not know
			w.Write([]byte(`{"choices":[{"finish_reason":"tool_calls","message":{"role":"assistant","content":"","tool_calls":[{"id":"c1","type":"function","function":{"name":"bogus_tool","arguments":"{}"}}]}}]}`))
			return
		}

		// the tool result must have been reported back as an error payload
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode second request: %v", err)
		}
		last := req.Messages[len(req.Messages)-1]
		if last.Role != "tool" || last.ToolCallID != "c1" || !strings.Contains(last.Content, "unknown tool") {
			t.Errorf("unexpected tool result message: %+v", last)
		}
		w.Write([]byte(`{"choices":[{"finish_reason":"stop","message":{"role":"assistant","content":"final answer"}}]}`))
	}))
	defer server.Close()

	a := &AgentService{client: server.Client(), apiKey: "test", baseURL: server.URL, model: "test-model"}

	reply, err := a.runToolLoop("u1", []apiMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("runToolLoop: %v", err)
	}
	if reply != "final answer" {
		t.Errorf("reply = %q", reply)
	}
	if calls != 2 {
		t.Errorf("api calls = %d, want 2", calls)
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	a := &AgentService{client: server.Client(), apiKey: "test", baseURL: server.URL, model: "test-model"}
	_, err := a.complete(chatRequest{Model: a.model})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v, want the api error message surfaced", err)
	}
}
