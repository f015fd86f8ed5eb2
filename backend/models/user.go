package models

import (
	"time"

	"gorm.io/gorm"
)

// PreferredLanguages is the fixed set of languages a user can study in.
var PreferredLanguages = []string{"JavaScript", "Python", "Java", "C++", "TypeScript", "Go", "Rust"}

const DefaultLanguage = "JavaScript"

// TotalDays is the length of the fixed curriculum.
const TotalDays = 84

type User struct {
	gorm.Model
	Email                  string    `gorm:"unique;not null" json:"email"`
	PasswordHash           string    `gorm:"not null" json:"-"`
	Name                   string    `gorm:"not null" json:"name"`
	PreferredLanguage      string    `gorm:"default:JavaScript" json:"preferredLanguage"`
	MFAEnabled             bool      `gorm:"default:false" json:"mfaEnabled"`
	MFASecret              string    `json:"-"`
	CurrentDay             int       `gorm:"default:1" json:"currentDay"`
	Streak                 int       `gorm:"default:0" json:"streak"`
	LastActiveDate         time.Time `json:"lastActiveDate"`
	TotalProblemsCompleted int       `gorm:"default:0" json:"totalProblemsCompleted"`
	JoinDate               time.Time `json:"joinDate"`
}

// IsValidLanguage reports whether lang is one of the supported languages.
func IsValidLanguage(lang string) bool {
	for _, l := range PreferredLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// UpdateStreak advances the streak state machine for qualifying activity
// (a login or a day completion) happening at now.
//
// The gap is measured in whole calendar days between the last active date
// and now: a gap of exactly one day extends the streak, a larger gap resets
// it to 1, and a gap of zero or less (same day, clock skew, or a backdated
// last-active date) changes nothing. The last active date only ever moves
// forward.
func (u *User) UpdateStreak(now time.Time) {
	today := startOfDay(now)
	lastActive := startOfDay(u.LastActiveDate)
	gapDays := int(today.Sub(lastActive).Hours() / 24)

	switch {
	case gapDays == 1:
		u.Streak++
	case gapDays > 1:
		u.Streak = 1
	default:
		return
	}
	u.LastActiveDate = now
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
