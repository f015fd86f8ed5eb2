package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"dsamentor/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func progressOf(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	record, ok := data(t, result)["progress"].(map[string]interface{})
	require.True(t, ok, "response has no progress record: %v", result)
	return record
}

func loadUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return user
}

// twoProblemsDone is an update payload that satisfies the completion gate.
func twoProblemsDone() map[string]interface{} {
	return map[string]interface{}{
		"videoWatched":      true,
		"notebookCompleted": true,
		"problemsCompleted": []map[string]interface{}{
			{"problemName": "Two Sum", "problemUrl": "https://leetcode.com/problems/two-sum", "difficulty": "Easy", "timeSpent": 15},
			{"problemName": "Valid Anagram", "problemUrl": "https://leetcode.com/problems/valid-anagram", "difficulty": "Easy", "timeSpent": 10},
		},
		"completed": true,
	}
}

func TestGetDayCreatesLazily(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "lazy@example.com")

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/day/1", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	record := progressOf(t, result)
	assert.Equal(t, float64(1), record["day"])
	assert.Equal(t, "Arrays & Basic Operations", record["topic"])
	assert.Equal(t, false, record["completed"])
	assert.Empty(t, record["problemsCompleted"])

	// A second fetch returns the same record, not a duplicate.
	status, _ = doJSON(t, app, http.MethodGet, "/api/progress/day/1", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result = doJSON(t, app, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, data(t, result)["progress"], 1)
}

func TestGetDayRejectsOutOfRange(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "range@example.com")

	for _, path := range []string{"/api/progress/day/0", "/api/progress/day/85", "/api/progress/day/abc"} {
		status, _ := doJSON(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, fiber.StatusBadRequest, status, path)
	}
}

func TestUpdateDayMergesPartialFields(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "merge@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/2", token, map[string]interface{}{
		"videoWatched": true,
		"timeSpent":    45,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, http.MethodPut, "/api/progress/day/2", token, map[string]interface{}{
		"notebookNotes": "short note",
	})
	require.Equal(t, fiber.StatusOK, status)

	record := progressOf(t, result)
	assert.Equal(t, true, record["videoWatched"], "earlier field survives later partial update")
	assert.Equal(t, float64(45), record["timeSpent"])
	assert.Equal(t, "short note", record["notebookNotes"])
	assert.Equal(t, false, record["notebookCompleted"], "short notes do not complete the notebook")
}

func TestUpdateDayLongNotesCompleteNotebook(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "notes@example.com")

	longNotes := "Learned two pointers today: move both indexes toward the middle while the invariant holds."
	require.GreaterOrEqual(t, len(longNotes), 50)

	status, result := doJSON(t, app, http.MethodPut, "/api/progress/day/15", token, map[string]interface{}{
		"notebookNotes": longNotes,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, progressOf(t, result)["notebookCompleted"])
}

func TestCompleteDayAtCursorAdvancesIt(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "cursor@example.com")

	user := loadUser(t, db, "cursor@example.com")
	user.CurrentDay = 5
	require.NoError(t, db.Save(&user).Error)

	status, result := doJSON(t, app, http.MethodPut, "/api/progress/day/5", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	record := progressOf(t, result)
	assert.Equal(t, true, record["completed"])
	assert.NotNil(t, record["completedAt"])

	user = loadUser(t, db, "cursor@example.com")
	assert.Equal(t, 6, user.CurrentDay)
	assert.Equal(t, 2, user.TotalProblemsCompleted)
}

func TestCompleteEarlierDayKeepsCursor(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "behind@example.com")

	user := loadUser(t, db, "behind@example.com")
	user.CurrentDay = 5
	require.NoError(t, db.Save(&user).Error)

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/3", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	user = loadUser(t, db, "behind@example.com")
	assert.Equal(t, 5, user.CurrentDay)
}

func TestCompleteFinalDayCapsCursor(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "final@example.com")

	user := loadUser(t, db, "final@example.com")
	user.CurrentDay = 84
	require.NoError(t, db.Save(&user).Error)

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/84", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	user = loadUser(t, db, "final@example.com")
	assert.Equal(t, 84, user.CurrentDay)
}

func TestCompletionRequiresAllThreeConditions(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "gate@example.com")

	onlyOneProblem := twoProblemsDone()
	onlyOneProblem["problemsCompleted"] = onlyOneProblem["problemsCompleted"].([]map[string]interface{})[:1]
	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, onlyOneProblem)
	assert.Equal(t, fiber.StatusBadRequest, status, "one problem is not enough")

	noVideo := twoProblemsDone()
	noVideo["videoWatched"] = false
	status, _ = doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, noVideo)
	assert.Equal(t, fiber.StatusBadRequest, status, "video must be watched")

	noNotebook := twoProblemsDone()
	noNotebook["notebookCompleted"] = false
	status, _ = doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, noNotebook)
	assert.Equal(t, fiber.StatusBadRequest, status, "notebook must be done")

	status, _ = doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCompletionReplayDoesNotRepeatSideEffects(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "replay@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	user := loadUser(t, db, "replay@example.com")
	require.Equal(t, 2, user.CurrentDay)
	require.Equal(t, 2, user.TotalProblemsCompleted)

	// Replaying the same completed update must not advance the cursor or
	// bump the counter again.
	status, _ = doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	user = loadUser(t, db, "replay@example.com")
	assert.Equal(t, 2, user.CurrentDay)
	assert.Equal(t, 2, user.TotalProblemsCompleted)
}

func TestCompletedFlagIsOneWay(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "oneway@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, map[string]interface{}{
		"completed": false,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, progressOf(t, result)["completed"])
}

func TestAddProblemRequiresExistingRecord(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "noprog@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/progress/day/9/problem", token, map[string]interface{}{
		"problemName": "Two Sum",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAddProblemAppendsInOrder(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "append@example.com")

	status, _ := doJSON(t, app, http.MethodGet, "/api/progress/day/2", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	for _, name := range []string{"Two Sum", "Valid Anagram", "Group Anagrams"} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/progress/day/2/problem", token, map[string]interface{}{
			"problemName": name,
			"difficulty":  "Easy",
			"timeSpent":   10,
		})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/day/2", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	problems := progressOf(t, result)["problemsCompleted"].([]interface{})
	require.Len(t, problems, 3)
	for i, want := range []string{"Two Sum", "Valid Anagram", "Group Anagrams"} {
		assert.Equal(t, want, problems[i].(map[string]interface{})["problemName"])
	}
}

func TestAddProblemRejectsUnknownDifficulty(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "difficulty@example.com")

	status, _ := doJSON(t, app, http.MethodGet, "/api/progress/day/2", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/progress/day/2/problem", token, map[string]interface{}{
		"problemName": "Two Sum",
		"difficulty":  "Extreme",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestStatsOnEmptyAccount(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "empty@example.com")

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	stats := data(t, result)
	assert.Equal(t, float64(1), stats["currentDay"])
	assert.Equal(t, float64(0), stats["streak"])
	assert.Equal(t, float64(0), stats["totalDaysCompleted"])
	assert.Equal(t, float64(0), stats["weeklyProgress"])
	assert.Equal(t, float64(0), stats["totalProblemsCompleted"])
	assert.Equal(t, "JavaScript", stats["preferredLanguage"])
}

func TestStatsRecountsProblems(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "recount@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	// A problem appended after completion shows up in the recount even
	// though the incremental counter on the user record missed it.
	status, _ = doJSON(t, app, http.MethodPost, "/api/progress/day/1/problem", token, map[string]interface{}{
		"problemName": "Contains Duplicate",
		"difficulty":  "Easy",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	stats := data(t, result)
	assert.Equal(t, float64(1), stats["totalDaysCompleted"])
	assert.Equal(t, float64(1), stats["weeklyProgress"])
	assert.Equal(t, float64(3), stats["totalProblemsCompleted"])

	user := loadUser(t, db, "recount@example.com")
	assert.Equal(t, 2, user.TotalProblemsCompleted, "incremental counter only sees the completing update")
}

func TestStatsWeeklyWindowExcludesOldCompletions(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "weekly@example.com")

	status, _ := doJSON(t, app, http.MethodPut, "/api/progress/day/1", token, twoProblemsDone())
	require.Equal(t, fiber.StatusOK, status)

	// Backdate the completion beyond the trailing week.
	old := time.Now().AddDate(0, 0, -10)
	require.NoError(t, db.Model(&models.Progress{}).
		Where("day = ?", 1).
		Update("completed_at", old).Error)

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/stats", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	stats := data(t, result)
	assert.Equal(t, float64(1), stats["totalDaysCompleted"])
	assert.Equal(t, float64(0), stats["weeklyProgress"])
}

func TestProgressIsScopedToAccount(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice@example.com")
	bob := registerUser(t, app, "bob@example.com")

	status, _ := doJSON(t, app, http.MethodGet, "/api/progress/day/1", alice, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, http.MethodGet, "/api/progress", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, data(t, result)["progress"])
}

func TestCurriculumEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "curriculum@example.com")

	status, result := doJSON(t, app, http.MethodGet, "/api/curriculum/day/7", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	entry := data(t, result)
	assert.Equal(t, "Week 1 Review & Mixed Practice", entry["topic"])
	assert.Equal(t, true, entry["isReview"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/curriculum/day/99", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/curriculum/day/0", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, result = doJSON(t, app, http.MethodGet, "/api/curriculum/overview", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, data(t, result)["curriculum"], 84)

	status, _ = doJSON(t, app, http.MethodGet, "/api/curriculum/overview", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGetStatsReportsFailedCount(t *testing.T) {
	app, db := newTestApp(t)
	token := registerUser(t, app, "statsbroken@example.com")
	require.NoError(t, db.Migrator().DropTable(&models.Problem{}))

	status, result := doJSON(t, app, http.MethodGet, "/api/progress/stats", token, nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Could not compute stats", result["error"])
}
