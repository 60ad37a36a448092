package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by key finds nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert collides with a unique key.
var ErrDuplicate = errors.New("duplicate")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ScoreRecord is one persisted quiz outcome.
type ScoreRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	TimeSpent      int       `json:"timeSpent"`
	Timestamp      time.Time `json:"timestamp"`
}

// ScoreRepo appends and queries score records. Records are never updated
// or deleted.
type ScoreRepo interface {
	// Insert appends rec. ID and Timestamp must already be set.
	Insert(ctx context.Context, rec ScoreRecord) error

	// ByUser returns the user's records, newest first. limit <= 0 means all.
	ByUser(ctx context.Context, userID string, limit int) ([]ScoreRecord, error)

	// Ranked returns records ordered by percentage desc, then time spent
	// asc. An empty topic ranks across all topics.
	Ranked(ctx context.Context, topic string, limit int) ([]ScoreRecord, error)
}

// UserRecord is a stored identity.
type UserRecord struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepo persists identities.
type UserRepo interface {
	// Create inserts a new user. Returns ErrDuplicate if the email exists.
	Create(ctx context.Context, u UserRecord) error

	// ByEmail returns the user with the given email or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*UserRecord, error)

	// ByID returns the user with the given ID or ErrNotFound.
	ByID(ctx context.Context, id string) (*UserRecord, error)

	// UpdateProfile sets display name and photo URL.
	UpdateProfile(ctx context.Context, id, displayName, photoURL string) error
}

// ProfileRepo is a flat string key/value store for per-user profile
// entries such as "profilePic_<id>" and "displayName_<id>".
type ProfileRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage per purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LessonEventData records one lesson generation and where its data came from.
type LessonEventData struct {
	Topic       string
	InsightLive bool
	TextLive    bool
	ImagesLive  bool
	Fallback    bool
	LatencyMs   int64
}

// LessonEventRecord is a stored lesson generation event.
type LessonEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	LessonEventData
}

// AchievementEventData records one unlocked achievement.
type AchievementEventData struct {
	UserID      string
	Achievement string
	Topic       string
	ScoreID     string
}

// AchievementEventRecord is a stored achievement event.
type AchievementEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	AchievementEventData
}

// EventRepo provides append and query access to diagnostic events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	// GetLLMEvent returns nil, nil if no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	AppendLessonEvent(ctx context.Context, data LessonEventData) error
	QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error)

	AppendAchievementEvent(ctx context.Context, data AchievementEventData) error
	QueryAchievementEvents(ctx context.Context, userID string, opts QueryOpts) ([]AchievementEventRecord, error)
}
