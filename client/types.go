package client

// View types mirroring the session endpoints' JSON. The client never owns
// this data; it is refetched on date changes and invalidation signals.

// Lap is one recorded interval of a session.
type Lap struct {
	LapIndex     int     `json:"lapIndex"`
	DistanceM    float64 `json:"distanceM"`
	ElapsedSec   float64 `json:"elapsedSec"`
	PaceSecPerKM float64 `json:"paceSecPerKm"`
	HeartRate    int     `json:"heartRate,omitempty"`
	Cadence      int     `json:"cadence,omitempty"`
	Segment      string  `json:"segment,omitempty"`
}

// CalendarEvent is a scheduled item on the session's date; StartTime is
// "HH:MM".
type CalendarEvent struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
}

// SessionView is the server-computed payload for one date's activity.
type SessionView struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Title     string          `json:"title"`
	Sport     string          `json:"sport"`
	Status    string          `json:"status"`
	Feedback  string          `json:"feedback,omitempty"`
	Segmented bool            `json:"segmented"`
	Laps      []Lap           `json:"laps"`
	Events    []CalendarEvent `json:"events"`
}

// WeeklySummary is the rollup anchored to a Monday.
type WeeklySummary struct {
	StartDate      string  `json:"startDate"`
	SessionCount   int     `json:"sessionCount"`
	CompletedCount int     `json:"completedCount"`
	TotalDistanceM float64 `json:"totalDistanceM"`
	TotalDuration  float64 `json:"totalDurationSec"`
	AvgPaceSecKM   float64 `json:"avgPaceSecPerKm"`
}

// Envelope is the outbound push-channel message format.
type Envelope struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Role     string `json:"role"`
}

// SessionAPI is the HTTP collaborator the controller fetches from. The int
// return is the HTTP status code; err is set only for transport failures.
type SessionAPI interface {
	FetchSession(date string) (*SessionView, int, error)
	FetchWeeklySummary(startDate string) (*WeeklySummary, error)
}

// PushChannel is the single shared push connection, injected so tests can
// substitute a fake. The controller only reads inbound frames (delivered via
// HandleFrame) and writes through Send.
type PushChannel interface {
	Send(Envelope) error
	Connected() bool
}
