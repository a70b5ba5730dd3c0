package domain

import "time"

const (
	// SectionMaxScore is the best achievable score for one section.
	SectionMaxScore = 100
	// OverallMaxScore is the best achievable score across the assessment.
	OverallMaxScore = 400
	// SectionCount is the number of sections a definition must carry.
	SectionCount = 4
	// QuestionsPerSection is the number of questions every section must carry.
	QuestionsPerSection = 10
	// TotalQuestions is the number of answers required before results exist.
	TotalQuestions = SectionCount * QuestionsPerSection
)

// Rating is the Red/Amber/Green tag of an answer option.
type Rating string

const (
	RatingRed   Rating = "Red"
	RatingAmber Rating = "Amber"
	RatingGreen Rating = "Green"
)

// Ratings lists the tags in display order.
var Ratings = []Rating{RatingRed, RatingAmber, RatingGreen}

// Valid reports whether r is one of the three known tags.
func (r Rating) Valid() bool {
	switch r {
	case RatingRed, RatingAmber, RatingGreen:
		return true
	}
	return false
}

// Band is presentation metadata derived from a percentage.
type Band string

const (
	BandRed     Band = "red"
	BandAmber   Band = "amber"
	BandGreen   Band = "green"
	BandDefault Band = "default"
)

// BrandColors holds hex colour codes used by the renderers.
type BrandColors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Red       string `json:"red" yaml:"red"`
	Amber     string `json:"amber" yaml:"amber"`
	Green     string `json:"green" yaml:"green"`
}

// AnswerOption is one selectable answer for a question.
type AnswerOption struct {
	Rating Rating `json:"option"`
	Score  int    `json:"score"`
	Tip    string `json:"tip"`
}

// Question is a single survey item with exactly one option per rating.
type Question struct {
	ID      int            `json:"id"`
	Text    string         `json:"text"`
	Answers []AnswerOption `json:"answers"`
}

// Option returns the answer option tagged with rating.
func (q Question) Option(rating Rating) (AnswerOption, bool) {
	for _, opt := range q.Answers {
		if opt.Rating == rating {
			return opt, true
		}
	}
	return AnswerOption{}, false
}

// InsightRange maps an inclusive score range to insight text.
type InsightRange struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Text string `json:"text"`
}

// Contains reports whether score falls inside the inclusive range.
func (r InsightRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// InsightTable is an ordered list of ranges; the first match wins.
type InsightTable []InsightRange

// Section groups questions under a theme.
type Section struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Questions   []Question   `json:"questions"`
	Insights    InsightTable `json:"insights"`
}

// Definition is the full assessment content, immutable for a session.
type Definition struct {
	ID              string       `json:"id"`
	BrandColors     BrandColors  `json:"brandColors"`
	Sections        []Section    `json:"sections"`
	OverallInsights InsightTable `json:"overallInsights"`
}

// QuestionCount returns the number of questions across all sections.
func (d Definition) QuestionCount() int {
	total := 0
	for _, s := range d.Sections {
		total += len(s.Questions)
	}
	return total
}

// QuestionAt resolves a position into its section and question.
func (d Definition) QuestionAt(pos Position) (Section, Question, bool) {
	if pos.Section < 0 || pos.Section >= len(d.Sections) {
		return Section{}, Question{}, false
	}
	section := d.Sections[pos.Section]
	if pos.Question < 0 || pos.Question >= len(section.Questions) {
		return Section{}, Question{}, false
	}
	return section, section.Questions[pos.Question], true
}

// UserAnswer is a denormalized snapshot of the chosen option.
type UserAnswer struct {
	QuestionID     int    `json:"questionId"`
	SectionID      int    `json:"sectionId"`
	SelectedOption Rating `json:"selectedOption"`
	Score          int    `json:"score"`
	Tip            string `json:"tip"`
}

// Position is the zero-based navigation cursor.
type Position struct {
	Section  int `json:"sectionIndex"`
	Question int `json:"questionIndex"`
}

// SectionScore is the per-section breakdown of a result.
type SectionScore struct {
	SectionID    int      `json:"sectionId"`
	SectionTitle string   `json:"sectionTitle"`
	Score        int      `json:"score"`
	MaxScore     int      `json:"maxScore"`
	Insight      string   `json:"insight"`
	Tips         []string `json:"tips"`
}

// Results is a derived snapshot built on request; it is never cached.
type Results struct {
	OverallScore    int            `json:"overallScore"`
	OverallMaxScore int            `json:"overallMaxScore"`
	OverallInsight  string         `json:"overallInsight"`
	SectionScores   []SectionScore `json:"sectionScores"`
	AllTips         []string       `json:"allTips"`
	CompletedAt     time.Time      `json:"completedAt"`
}

// Progress summarises how far through the assessment a session is.
type Progress struct {
	Answered   int `json:"answered"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// OptionView is an answer option as shown to the user, without its score.
type OptionView struct {
	Rating Rating `json:"option"`
}

// SessionView is the snapshot returned after every wizard action.
type SessionView struct {
	SessionID          string       `json:"sessionId"`
	DefinitionID       string       `json:"definitionId"`
	Position           Position     `json:"position"`
	SectionID          int          `json:"sectionId"`
	SectionTitle       string       `json:"sectionTitle"`
	SectionDescription string       `json:"sectionDescription"`
	TotalSections      int          `json:"totalSections"`
	QuestionsInSection int          `json:"questionsInSection"`
	QuestionID         int          `json:"questionId"`
	QuestionText       string       `json:"questionText"`
	Options            []OptionView `json:"options"`
	Selected           Rating       `json:"selected,omitempty"`
	Progress           Progress     `json:"progress"`
	CanRetreat         bool         `json:"canRetreat"`
	IsLastQuestion     bool         `json:"isLastQuestion"`
	Complete           bool         `json:"complete"`
}
