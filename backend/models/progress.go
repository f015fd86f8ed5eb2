package models

import (
	"time"

	"gorm.io/gorm"
)

// Difficulties is the fixed set of problem difficulty ratings.
var Difficulties = []string{"Easy", "Medium", "Hard"}

// MinProblemsForCompletion and MinNotebookNotesLength gate the completion
// of a day: at least two problems solved, the video watched, and the
// notebook done. Notes of 50+ characters count as a done notebook.
const (
	MinProblemsForCompletion = 2
	MinNotebookNotesLength   = 50
)

type Progress struct {
	gorm.Model
	UserID            uint       `gorm:"not null;uniqueIndex:idx_user_day" json:"userId"`
	Day               int        `gorm:"not null;uniqueIndex:idx_user_day" json:"day"`
	Topic             string     `gorm:"not null" json:"topic"`
	VideoWatched      bool       `gorm:"default:false" json:"videoWatched"`
	ProblemsCompleted []Problem  `gorm:"foreignKey:ProgressID" json:"problemsCompleted"`
	NotebookCompleted bool       `gorm:"default:false" json:"notebookCompleted"`
	NotebookNotes     string     `json:"notebookNotes"`
	Completed         bool       `gorm:"default:false" json:"completed"`
	CompletedAt       *time.Time `json:"completedAt"`
	TimeSpent         int        `gorm:"default:0" json:"timeSpent"` // total minutes
}

// Problem is a single solved problem attached to a day. Entries are
// append-only: there is no edit or removal path once one is recorded.
type Problem struct {
	gorm.Model  `json:"-"`
	ProgressID  uint      `json:"-"`
	ProblemName string    `json:"problemName"`
	ProblemURL  string    `json:"problemUrl"`
	Difficulty  string    `json:"difficulty"`
	TimeSpent   int       `json:"timeSpent"` // minutes
	CompletedAt time.Time `json:"completedAt"`
}

func IsValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// MeetsCompletionRequirements reports whether the record satisfies the
// three-condition gate for marking the day complete.
func (p *Progress) MeetsCompletionRequirements() bool {
	return len(p.ProblemsCompleted) >= MinProblemsForCompletion &&
		p.VideoWatched &&
		p.NotebookCompleted
}

// Stats is the derived read-only summary served to dashboards. The problem
// total here is a recount of stored problem rows, not the incremental
// counter kept on the user record.
type Stats struct {
	CurrentDay             int       `json:"currentDay"`
	Streak                 int       `json:"streak"`
	TotalDaysCompleted     int64     `json:"totalDaysCompleted"`
	WeeklyProgress         int64     `json:"weeklyProgress"`
	TotalProblemsCompleted int64     `json:"totalProblemsCompleted"`
	JoinDate               time.Time `json:"joinDate"`
	PreferredLanguage      string    `json:"preferredLanguage"`
}
