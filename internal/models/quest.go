package models

import (
	"database/sql"
	"time"
)

// Quest type names as they appear in API responses
const (
	QuestTypePhoto    = "photo"
	QuestTypeQuestion = "question"
)

// Photo-type quests carry no real options: all four option slots hold the
// sentinel text and the correct answer is fixed to A. The auto-scoring path
// records the same pair so a photo completion always awards its point.
const (
	PhotoOptionSentinel = "photo mission"
	PhotoCorrectAnswer  = "A"
)

// Quest represents a location-bound quest definition
type Quest struct {
	ID            uint64         `db:"id"`
	City          string         `db:"city"`
	Town          sql.NullString `db:"town"`
	Village       sql.NullString `db:"village"`
	Question      string         `db:"question"`
	OptionA       string         `db:"option_a"`
	OptionB       string         `db:"option_b"`
	OptionC       string         `db:"option_c"`
	OptionD       string         `db:"option_d"`
	CorrectAnswer string         `db:"correct_answer"`
	Score         int32          `db:"score"`
	CreatedAt     time.Time      `db:"created_at"`
}

// IsPhoto reports whether the quest is fulfilled by an uploaded photo
// rather than a multiple-choice answer.
func (q *Quest) IsPhoto() bool {
	return q.OptionA == PhotoOptionSentinel &&
		q.OptionB == PhotoOptionSentinel &&
		q.OptionC == PhotoOptionSentinel &&
		q.OptionD == PhotoOptionSentinel
}

// Options returns the four option slots keyed A through D, in order.
func (q *Quest) Options() []QuestOption {
	return []QuestOption{
		{Key: "A", Text: q.OptionA},
		{Key: "B", Text: q.OptionB},
		{Key: "C", Text: q.OptionC},
		{Key: "D", Text: q.OptionD},
	}
}

// RegionFilter scopes a quest lookup. City is mandatory; nil Town/Village
// leave the finer levels unconstrained. Matching is exact string equality
// per supplied level.
type RegionFilter struct {
	City    string
	Town    *string
	Village *string
}

// Region is one (city, town, village) tuple that has at least one quest
type Region struct {
	City    string         `db:"city"`
	Town    sql.NullString `db:"town"`
	Village sql.NullString `db:"village"`
}

// RegionResource represents a region in API responses
type RegionResource struct {
	City    string  `json:"city"`
	Town    *string `json:"town,omitempty"`
	Village *string `json:"village,omitempty"`
}

// QuestOption represents one answer choice of a question-type quest
type QuestOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// RandomQuestResource is the body returned by the random-quest endpoint.
// The populated fields depend on the resolved type: question quests carry
// the question text and the four options, photo quests carry an instruction
// and the upload endpoint instead. The correct answer never appears.
type RandomQuestResource struct {
	ID             uint64        `json:"id"`
	Type           string        `json:"type"`
	City           string        `json:"city"`
	Town           *string       `json:"town,omitempty"`
	Village        *string       `json:"village,omitempty"`
	Question       string        `json:"question,omitempty"`
	Options        []QuestOption `json:"options,omitempty"`
	Instruction    string        `json:"instruction,omitempty"`
	UploadEndpoint string        `json:"upload_endpoint,omitempty"`
	Score          int32         `json:"score"`
}

// CheckResultResource is the body returned by the answer-check endpoint.
// It always reflects the fresh comparison, regardless of whether a score
// record was persisted by this call or an earlier one.
type CheckResultResource struct {
	QuestID       uint64        `json:"quest_id"`
	City          string        `json:"city"`
	Town          *string       `json:"town,omitempty"`
	Village       *string       `json:"village,omitempty"`
	Question      string        `json:"question"`
	Options       []QuestOption `json:"options,omitempty"`
	CorrectAnswer string        `json:"correct_answer"`
	UserAnswer    string        `json:"user_answer"`
	Correct       bool          `json:"correct"`
	AwardedScore  int32         `json:"awarded_score"`
	Score         int32         `json:"score"`
}
