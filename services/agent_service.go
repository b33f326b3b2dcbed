package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"bloomtrack/models"
	"bloomtrack/planner"
	"bloomtrack/utils"
)

const maxToolRounds = 5

// AgentService talks to an OpenAI-compatible chat completions API and runs
// the tool loop that lets the model read the user's plan and write logs.
type AgentService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string

	users     *UserService
	meals     *MealService
	dailyLogs *DailyLogService
	chat      *ChatService
}

func NewAgentService(users *UserService, meals *MealService, dailyLogs *DailyLogService, chat *ChatService) *AgentService {
	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AgentService{
		client:    &http.Client{Timeout: 30 * time.Second},
		apiKey:    os.Getenv("LLM_API_KEY"),
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		users:     users,
		meals:     meals,
		dailyLogs: dailyLogs,
		chat:      chat,
	}
}

// Healthy reports whether the service is configured to reach the API.
func (a *AgentService) Healthy() bool {
	return a.apiKey != ""
}

// --- wire types for the chat completions API ---

type chatTool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type apiMessage struct {
	Role       string        `json:"role"`
	Content    string        `json:"content"`
	ToolCalls  []apiToolCall `json:"tool_calls,omitempty"`
	ToolCallID string        `json:"tool_call_id,omitempty"`
}

type apiToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Tools    []chatTool   `json:"tools,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      apiMessage `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func toolSpec(name, description, parameters string) chatTool {
	return chatTool{
		Type: "function",
		Function: toolFunction{
			Name:        name,
			Description: description,
			Parameters:  json.RawMessage(parameters),
		},
	}
}

func (a *AgentService) tools() []chatTool {
	noArgs := `{"type":"object","properties":{}}`
	return []chatTool{
		toolSpec("get_user_info", "The user's profile: name, pregnancy week, trimester, dietary restrictions.", noArgs),
		toolSpec("get_week_meals", "The current week's planned meals with nutrient coverage per day.", noArgs),
		toolSpec("get_rainbow_summary", "How many of the five produce color groups today's meals cover.", noArgs),
		toolSpec("log_sleep", "Record last night's sleep for today.",
			`{"type":"object","properties":{"hours":{"type":"number"},"quality":{"type":"string","enum":["poor","fair","good","excellent"]},"notes":{"type":"string"}},"required":["hours"]}`),
		toolSpec("log_symptoms", "Record today's symptoms.",
			`{"type":"object","properties":{"symptoms":{"type":"array","items":{"type":"string"}},"severity":{"type":"string","enum":["mild","moderate","severe"]},"notes":{"type":"string"}},"required":["symptoms"]}`),
	}
}

func systemPrompt(profile *UserProfile) string {
	var sb strings.Builder
	sb.WriteString("You are a warm, practical pregnancy companion. ")
	sb.WriteString("Answer briefly, never give medical diagnoses, and point the user to their midwife for anything concerning. ")
	if profile != nil {
		fmt.Fprintf(&sb, "The user is %s, in pregnancy week %d (trimester %d).",
			profile.FirstName, profile.PregnancyWeek, profile.Trimester)
		if len(profile.Restrictions) > 0 {
			fmt.Fprintf(&sb, " Dietary restrictions: %s.", strings.Join(profile.Restrictions, ", "))
		}
	}
	return sb.String()
}

// Chat persists the user's message, runs the model with the tool loop, and
// persists and returns the reply.
func (a *AgentService) Chat(userID, sessionID, text string) (*models.ChatMessage, error) {
	if !a.Healthy() {
		return nil, fmt.Errorf("LLM_API_KEY not set")
	}
	if sessionID == "" {
		sessionID = utils.GenerateSessionID(16)
	}

	userMsg := models.ChatMessage{UserID: userID, SessionID: sessionID, Role: "user", Content: text}
	if err := a.chat.SaveMessage(&userMsg); err != nil {
		return nil, err
	}

	profile, err := a.users.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	history, err := a.chat.GetRecentMessages(userID, 20, "")
	if err != nil {
		return nil, err
	}

	messages := []apiMessage{{Role: "system", Content: systemPrompt(profile)}}
	for _, m := range history {
		role := m.Role
		if role == "model" {
			role = "assistant"
		}
		if role != "user" && role != "assistant" {
			continue
		}
		messages = append(messages, apiMessage{Role: role, Content: m.Content})
	}

	reply, err := a.runToolLoop(userID, messages)
	if err != nil {
		return nil, err
	}

	replyMsg := models.ChatMessage{UserID: userID, SessionID: sessionID, Role: "model", Content: reply}
	if err := a.chat.SaveMessage(&replyMsg); err != nil {
		return nil, err
	}
	return &replyMsg, nil
}

// Greeting returns today's greeting, generating and storing one on first use.
func (a *AgentService) Greeting(userID string) (*models.ChatMessage, error) {
	if existing, err := a.chat.TodaysGreeting(userID); err != nil || existing != nil {
		return existing, err
	}
	if !a.Healthy() {
		return nil, fmt.Errorf("LLM_API_KEY not set")
	}

	profile, err := a.users.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	messages := []apiMessage{
		{Role: "system", Content: systemPrompt(profile)},
		{Role: "user", Content: "Write a short, encouraging good-morning greeting for today. One or two sentences, no questions."},
	}
	text, err := a.runToolLoop(userID, messages)
	if err != nil {
		return nil, err
	}
	return a.chat.SaveGreeting(userID, utils.GenerateSessionID(16), text)
}

func (a *AgentService) runToolLoop(userID string, messages []apiMessage) (string, error) {
	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.complete(chatRequest{Model: a.model, Messages: messages, Tools: a.tools()})
		if err != nil {
			return "", err
		}
		msg := resp.Choices[0].Message

		if len(msg.ToolCalls) == 0 {
			if strings.TrimSpace(msg.Content) == "" {
				return "", fmt.Errorf("empty completion from llm")
			}
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result := a.execTool(userID, call.Function.Name, call.Function.Arguments)
			messages = append(messages, apiMessage{Role: "tool", ToolCallID: call.ID, Content: result})
		}
	}
	return "", fmt.Errorf("tool loop did not settle after %d rounds", maxToolRounds)
}

func (a *AgentService) complete(req chatRequest) (*chatResponse, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llm request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("decode llm response: %v | body: %s", err, preview)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("llm api error (%d): %s", resp.StatusCode, out.Error.Message)
		}
		return nil, fmt.Errorf("llm api error (%d)", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}
	return &out, nil
}

// execTool runs one tool call and returns its result as a string for the
// model. Tool failures are reported back to the model rather than aborting
// the conversation.
func (a *AgentService) execTool(userID, name, arguments string) string {
	result, err := a.dispatchTool(userID, name, arguments)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return result
}

func (a *AgentService) dispatchTool(userID, name, arguments string) (string, error) {
	switch name {
	case "get_user_info":
		profile, err := a.users.GetProfile(userID)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "", fmt.Errorf("user not found")
		}
		return marshalTool(profile)

	case "get_week_meals":
		monday, err := utils.MondayOf(time.Now().Format(utils.DateLayout))
		if err != nil {
			return "", err
		}
		days, err := a.meals.GetWeekMeals(userID, monday)
		if err != nil {
			return "", err
		}
		return marshalTool(days)

	case "get_rainbow_summary":
		today := time.Now().Format(utils.DateLayout)
		days, err := a.meals.GetMealsByDateRange(userID, today, today)
		if err != nil {
			return "", err
		}
		count := 0
		if len(days) > 0 {
			count = planner.RainbowCoverage(&days[0])
		}
		return fmt.Sprintf(`{"date": %q, "colorGroups": %d, "outOf": 5}`, today, count), nil

	case "log_sleep":
		var args struct {
			Hours   float64 `json:"hours"`
			Quality string  `json:"quality"`
			Notes   string  `json:"notes"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("bad log_sleep arguments: %w", err)
		}
		patch := DailyLogPatch{SleepHoursSet: true, SleepHours: &args.Hours}
		if args.Quality != "" {
			if !validSleepQuality[args.Quality] {
				return "", fmt.Errorf("invalid quality %q", args.Quality)
			}
			patch.SleepQualitySet = true
			patch.SleepQuality = &args.Quality
		}
		if args.Notes != "" {
			patch.SleepNotesSet = true
			patch.SleepNotes = &args.Notes
		}
		today := time.Now().Format(utils.DateLayout)
		if _, err := a.dailyLogs.UpsertDailyLog(userID, today, patch); err != nil {
			return "", err
		}
		return `{"ok": true}`, nil

	case "log_symptoms":
		var args struct {
			Symptoms []string `json:"symptoms"`
			Severity string   `json:"severity"`
			Notes    string   `json:"notes"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("bad log_symptoms arguments: %w", err)
		}
		tags, err := cleanSymptomTags(args.Symptoms)
		if err != nil {
			return "", err
		}
		patch := DailyLogPatch{SymptomsSet: true, Symptoms: tags}
		if args.Severity != "" {
			if !validSeverity[args.Severity] {
				return "", fmt.Errorf("invalid severity %q", args.Severity)
			}
			patch.SymptomSeveritySet = true
			patch.SymptomSeverity = &args.Severity
		}
		if args.Notes != "" {
			patch.SymptomNotesSet = true
			patch.SymptomNotes = &args.Notes
		}
		today := time.Now().Format(utils.DateLayout)
		if _, err := a.dailyLogs.UpsertDailyLog(userID, today, patch); err != nil {
			return "", err
		}
		return `{"ok": true}`, nil
	}
	return "", fmt.Errorf("unknown tool %q", name)
}

func marshalTool(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
