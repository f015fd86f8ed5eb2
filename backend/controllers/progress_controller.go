package controllers

import (
	"fmt"
	"time"

	"dsamentor/backend/config"
	"dsamentor/backend/curriculum"
	"dsamentor/backend/middleware"
	"dsamentor/backend/models"
	"dsamentor/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

type ProblemInput struct {
	ProblemName string `json:"problemName"`
	ProblemURL  string `json:"problemUrl"`
	TimeSpent   int    `json:"timeSpent"`
	Difficulty  string `json:"difficulty"`
}

// UpdateDayInput carries a partial update: nil pointers leave the stored
// field untouched. The problems list, when present, replaces the stored
// list wholesale (last write wins, as with every other field here).
type UpdateDayInput struct {
	Topic             *string        `json:"topic"`
	VideoWatched      *bool          `json:"videoWatched"`
	ProblemsCompleted []ProblemInput `json:"problemsCompleted"`
	NotebookCompleted *bool          `json:"notebookCompleted"`
	NotebookNotes     *string        `json:"notebookNotes"`
	Completed         *bool          `json:"completed"`
	TimeSpent         *int           `json:"timeSpent"`
}

func parseDay(c *fiber.Ctx) (int, error) {
	day, err := c.ParamsInt("day")
	if err != nil || day < 1 || day > models.TotalDays {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid day number")
	}
	return day, nil
}

// GetProgress godoc
// @Summary List all progress records
// @Description Returns every per-day record for the caller, ordered by day
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	var records []models.Progress
	if err := pc.DB.Preload("ProblemsCompleted", problemOrder).
		Where("user_id = ?", middleware.UserID(c)).
		Order("day ASC").
		Find(&records).Error; err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress": records,
	})
}

// GetDay godoc
// @Summary Fetch or create one day's record
// @Description Returns the record for the day, creating a default one on first access
// @Tags progress
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/day/{day} [get]
func (pc *ProgressController) GetDay(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	userID := middleware.UserID(c)

	progress, err := pc.findDay(userID, day)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return utils.InternalServerError(c, "Could not query progress")
		}
		progress = pc.defaultRecord(userID, day)
		if err := pc.DB.Create(progress).Error; err != nil {
			return utils.InternalServerError(c, "Could not create progress")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress": progress,
	})
}

// UpdateDay godoc
// @Summary Partially update one day's record
// @Description Merges the supplied fields into the record, running the completion side effects on a false-to-true transition
// @Tags progress
// @Accept json
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/day/{day} [put]
func (pc *ProgressController) UpdateDay(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input UpdateDayInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	userID := middleware.UserID(c)
	progress, err := pc.findDay(userID, day)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return utils.InternalServerError(c, "Could not query progress")
		}
		progress = pc.defaultRecord(userID, day)
		if err := pc.DB.Create(progress).Error; err != nil {
			return utils.InternalServerError(c, "Could not create progress")
		}
	}

	if input.Topic != nil {
		progress.Topic = *input.Topic
	}
	if input.VideoWatched != nil {
		progress.VideoWatched = *input.VideoWatched
	}
	if input.NotebookCompleted != nil {
		progress.NotebookCompleted = *input.NotebookCompleted
	}
	if input.NotebookNotes != nil {
		progress.NotebookNotes = *input.NotebookNotes
		// Substantial notes count as a done notebook, mirroring the
		// client-side convention.
		if len(progress.NotebookNotes) >= models.MinNotebookNotesLength {
			progress.NotebookCompleted = true
		}
	}
	if input.TimeSpent != nil {
		progress.TimeSpent = *input.TimeSpent
	}

	if input.ProblemsCompleted != nil {
		if err := pc.replaceProblems(progress, input.ProblemsCompleted); err != nil {
			return utils.InternalServerError(c, "Could not update problems")
		}
	}

	// completed is one-way: a false never unsets it, and the side effects
	// below run only on the false-to-true transition, so replaying the
	// same update cannot advance the cursor or the counter twice.
	completing := input.Completed != nil && *input.Completed && !progress.Completed
	if completing {
		if !progress.MeetsCompletionRequirements() {
			return utils.BadRequest(c, "Day completion requirements not met")
		}
		now := time.Now()
		progress.Completed = true
		progress.CompletedAt = &now
	}

	// Problem rows are persisted by replaceProblems; only the record's own
	// columns are written here.
	if err := pc.DB.Omit("ProblemsCompleted").Save(progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	if completing {
		if err := pc.applyCompletionToUser(userID, day, len(input.ProblemsCompleted)); err != nil {
			return utils.InternalServerError(c, "Could not update user progress")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress": progress,
	})
}

// applyCompletionToUser advances the account cursor past a newly completed
// day that is at or beyond it, bumps the incremental problem counter by the
// number of problems submitted in the completing update, and extends the
// streak. Completing an earlier, already-passed day touches none of it.
func (pc *ProgressController) applyCompletionToUser(userID uint, day int, submittedProblems int) error {
	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return err
	}

	if day >= user.CurrentDay {
		next := day + 1
		if next > models.TotalDays {
			next = models.TotalDays
		}
		user.CurrentDay = next
		user.TotalProblemsCompleted += submittedProblems
		user.UpdateStreak(time.Now())
		return pc.DB.Save(&user).Error
	}
	return nil
}

// AddProblem godoc
// @Summary Append a solved problem to a day
// @Description Appends one immutable problem entry; the day's record must already exist
// @Tags progress
// @Accept json
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/day/{day}/problem [post]
func (pc *ProgressController) AddProblem(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input ProblemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Difficulty != "" && !models.IsValidDifficulty(input.Difficulty) {
		return utils.BadRequest(c, "Invalid difficulty")
	}

	userID := middleware.UserID(c)
	progress, err := pc.findDay(userID, day)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFound(c, "Progress not found for this day")
		}
		return utils.InternalServerError(c, "Could not query progress")
	}

	problem := models.Problem{
		ProgressID:  progress.ID,
		ProblemName: input.ProblemName,
		ProblemURL:  input.ProblemURL,
		TimeSpent:   input.TimeSpent,
		Difficulty:  input.Difficulty,
		CompletedAt: time.Now(),
	}
	if err := pc.DB.Create(&problem).Error; err != nil {
		return utils.InternalServerError(c, "Could not save problem")
	}
	progress.ProblemsCompleted = append(progress.ProblemsCompleted, problem)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":  "Problem marked as completed",
		"progress": progress,
	})
}

// GetStats godoc
// @Summary Get aggregated statistics
// @Description Returns the derived summary view; the problem total is a recount of stored entries
// @Tags progress
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/stats [get]
func (pc *ProgressController) GetStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var totalDaysCompleted int64
	if err := pc.DB.Model(&models.Progress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&totalDaysCompleted).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute stats")
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	var weeklyProgress int64
	if err := pc.DB.Model(&models.Progress{}).
		Where("user_id = ? AND completed = ? AND completed_at >= ?", userID, true, weekAgo).
		Count(&weeklyProgress).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute stats")
	}

	var totalProblems int64
	if err := pc.DB.Model(&models.Problem{}).
		Joins("JOIN progresses ON progresses.id = problems.progress_id").
		Where("progresses.user_id = ?", userID).
		Count(&totalProblems).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute stats")
	}

	return utils.Success(c, fiber.StatusOK, models.Stats{
		CurrentDay:             user.CurrentDay,
		Streak:                 user.Streak,
		TotalDaysCompleted:     totalDaysCompleted,
		WeeklyProgress:         weeklyProgress,
		TotalProblemsCompleted: totalProblems,
		JoinDate:               user.JoinDate,
		PreferredLanguage:      user.PreferredLanguage,
	})
}

// problemOrder keeps preloaded problem lists in append order.
func problemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("problems.id ASC")
}

func (pc *ProgressController) findDay(userID uint, day int) (*models.Progress, error) {
	var progress models.Progress
	err := pc.DB.Preload("ProblemsCompleted", problemOrder).
		Where("user_id = ? AND day = ?", userID, day).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (pc *ProgressController) defaultRecord(userID uint, day int) *models.Progress {
	topic := curriculum.TopicFor(day)
	if topic == "" {
		topic = fmt.Sprintf("Day %d Topic", day)
	}
	return &models.Progress{
		UserID:            userID,
		Day:               day,
		Topic:             topic,
		ProblemsCompleted: []models.Problem{},
	}
}

// replaceProblems swaps the stored problem list for the submitted one.
func (pc *ProgressController) replaceProblems(progress *models.Progress, inputs []ProblemInput) error {
	if err := pc.DB.Where("progress_id = ?", progress.ID).Delete(&models.Problem{}).Error; err != nil {
		return err
	}

	now := time.Now()
	problems := make([]models.Problem, 0, len(inputs))
	for _, in := range inputs {
		problems = append(problems, models.Problem{
			ProgressID:  progress.ID,
			ProblemName: in.ProblemName,
			ProblemURL:  in.ProblemURL,
			TimeSpent:   in.TimeSpent,
			Difficulty:  in.Difficulty,
			CompletedAt: now,
		})
	}
	if len(problems) > 0 {
		if err := pc.DB.Create(&problems).Error; err != nil {
			return err
		}
	}
	progress.ProblemsCompleted = problems
	return nil
}
