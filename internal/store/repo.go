package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// StudentData is the persisted form of a learner profile.
type StudentData struct {
	ID                    string
	Name                  string
	Subjects              []string
	Progress              map[string]float64
	PreferredExerciseType string
	UpdatedAt             time.Time
}

// StudentRepo persists learner profiles.
type StudentRepo interface {
	// Get returns the student, or nil if none exists.
	Get(ctx context.Context, id string) (*StudentData, error)

	// Save inserts or replaces the student.
	Save(ctx context.Context, s *StudentData) error

	// List returns all students ordered by id.
	List(ctx context.Context) ([]StudentData, error)
}

// AssessedSkill is one skill estimate inside an assessment record.
type AssessedSkill struct {
	Position int
	SkillID  string
	Name     string
	Category string
	GapLevel float64
	Level    string
}

// AssessmentRecord is an append-only snapshot of identified skills.
type AssessmentRecord struct {
	ID           string
	Sequence     int64
	StudentID    string
	Subject      string
	Timestamp    time.Time
	CurrentLevel float64
	Tier         string
	Skills       []AssessedSkill
}

// SkillMatch locates a skill inside a specific assessment record.
type SkillMatch struct {
	RecordID string
	Sequence int64
	Subject  string
	Skill    AssessedSkill
}

// AssessmentRepo stores skill assessment records.
type AssessmentRepo interface {
	// Append stores a new record. Sequence and skill positions are assigned
	// by the repo and written back to rec.
	Append(ctx context.Context, rec *AssessmentRecord) error

	// ListByStudent returns the student's records in sequence order.
	// An empty subject matches every subject.
	ListByStudent(ctx context.Context, studentID, subject string) ([]AssessmentRecord, error)

	// FirstSkillMatch returns the earliest record (by sequence) for the
	// student that contains skillID, or nil if none does. An empty subject
	// matches every subject.
	FirstSkillMatch(ctx context.Context, studentID, subject, skillID string) (*SkillMatch, error)

	// UpdateSkillGap sets the gap level of the skill at position in record.
	UpdateSkillGap(ctx context.Context, recordID string, position int, gap float64) error
}

// FeedbackData is a single timestamped feedback note.
type FeedbackData struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// HistoryData is the persisted learning history for one skill.
type HistoryData struct {
	StudentID         string
	Subject           string
	SkillID           string
	Attempts          int
	Completions       []float64
	AverageCompletion float64
	LastAttempt       time.Time
	Feedback          []FeedbackData
}

// HistoryRepo persists learning histories keyed by (student, subject, skill).
type HistoryRepo interface {
	// Get returns the history, or nil if none exists.
	Get(ctx context.Context, studentID, subject, skillID string) (*HistoryData, error)

	// Save inserts or replaces the history.
	Save(ctx context.Context, h *HistoryData) error

	// ListBySubject returns every history for the student in subject,
	// ordered by skill id.
	ListBySubject(ctx context.Context, studentID, subject string) ([]HistoryData, error)
}

// ProgressRecord captures one completed exercise.
type ProgressRecord struct {
	ID         string
	Sequence   int64
	StudentID  string
	ExerciseID string
	SkillID    string
	SkillName  string
	Subject    string
	Timestamp  time.Time
	Completion float64
	Feedback   string
}

// SkillProgressRecord captures a batch of scored exercises for one skill.
type SkillProgressRecord struct {
	ID            string
	Sequence      int64
	StudentID     string
	SkillID       string
	Timestamp     time.Time
	ExerciseCount int
	AverageScore  float64
	ProgressLevel float64
	ExerciseIDs   []string
}

// ProgressRepo stores append-only progress records.
type ProgressRepo interface {
	AppendProgress(ctx context.Context, rec *ProgressRecord) error
	ListProgress(ctx context.Context, studentID string, opts QueryOpts) ([]ProgressRecord, error)
	AppendSkillProgress(ctx context.Context, rec *SkillProgressRecord) error
	ListSkillProgress(ctx context.Context, studentID, skillID string) ([]SkillProgressRecord, error)
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

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
