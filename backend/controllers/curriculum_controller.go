package controllers

import (
	"dsamentor/backend/curriculum"
	"dsamentor/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CurriculumController struct{}

func NewCurriculumController() *CurriculumController {
	return &CurriculumController{}
}

// GetDay godoc
// @Summary Get one curriculum day
// @Description Returns the static curriculum entry for a day
// @Tags curriculum
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} curriculum.Entry
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /curriculum/day/{day} [get]
func (cc *CurriculumController) GetDay(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return utils.BadRequest(c, "Invalid day number")
	}

	// The table covers every valid day, so a miss means the number is out
	// of range.
	entry, ok := curriculum.Get(day)
	if !ok {
		return utils.BadRequest(c, "Invalid day number")
	}

	return utils.Success(c, fiber.StatusOK, entry)
}

// GetOverview godoc
// @Summary Get the full curriculum
// @Description Returns all 84 curriculum entries ordered by day
// @Tags curriculum
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /curriculum/overview [get]
func (cc *CurriculumController) GetOverview(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"curriculum": curriculum.Overview(),
	})
}
