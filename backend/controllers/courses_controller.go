package controllers

import (
	"errors"
	"log"
	"strings"

	"learnify/backend/config"
	"learnify/backend/models"
	"learnify/backend/services"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CoursesController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Generator *services.Generator
	Log       *log.Logger
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, generator *services.Generator, logger *log.Logger) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Generator: generator, Log: logger}
}

// GetCourses lists all courses newest-first, each with its server-computed
// rating aggregate and the caller's own rating.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var courses []models.Course
	if err := cc.DB.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		average, total, err := cc.courseRating(course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not compute course rating")
		}

		var userRating *int
		var rating models.CourseRating
		err = cc.DB.Where("course_id = ? AND user_id = ?", course.ID, userID).First(&rating).Error
		if err == nil {
			userRating = &rating.Rating
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}

		result = append(result, fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"description":    course.Description,
			"created_at":     course.CreatedAt,
			"average_rating": average,
			"total_ratings":  total,
			"user_rating":    userRating,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

type CreateCourseInput struct {
	Topic string `json:"topic"`
}

// CreateCourse turns a free-text topic into a persisted course: generate an
// outline, insert the course row, then fan out chapter-content generation
// and insert each chapter with its stub's order index. The join is
// all-or-nothing; rows already written by a failed attempt are not rolled
// back.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return utils.BadRequest(c, "Topic is required")
	}

	outline, err := cc.Generator.GenerateCourseOutline(c.UserContext(), topic)
	if err != nil {
		cc.Log.Printf("course outline generation failed: %v", err)
		return utils.BadGateway(c, "Could not generate course outline")
	}

	course := models.Course{
		Title:       outline.Title,
		Description: outline.Description,
		UserID:      userID,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	g, ctx := errgroup.WithContext(c.UserContext())
	for _, stub := range outline.Chapters {
		stub := stub
		g.Go(func() error {
			content, err := cc.Generator.GenerateChapterContent(ctx, outline.Title, stub.Title, stub.Description)
			if err != nil {
				return err
			}
			return cc.DB.Create(&models.Chapter{
				CourseID:   course.ID,
				Title:      stub.Title,
				Content:    content,
				OrderIndex: stub.OrderIndex,
			}).Error
		})
	}
	if err := g.Wait(); err != nil {
		cc.Log.Printf("chapter generation failed for course %d: %v", course.ID, err)
		return utils.InternalServerError(c, "Could not generate course chapters")
	}

	return utils.Created(c, fiber.Map{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"chapters":    len(outline.Chapters),
	})
}

// GetChapters returns a course's chapters ordered by index, without content.
func (cc *CoursesController) GetChapters(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var chapters []models.Chapter
	if err := cc.DB.Where("course_id = ?", courseID).Order("order_index").Find(&chapters).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(chapters))
	for _, chapter := range chapters {
		result = append(result, fiber.Map{
			"id":          chapter.ID,
			"title":       chapter.Title,
			"order_index": chapter.OrderIndex,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
		},
		"chapters": result,
	})
}

func (cc *CoursesController) GetChapter(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var chapter models.Chapter
	if err := cc.DB.Where("course_id = ?", courseID).First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          chapter.ID,
		"course_id":   chapter.CourseID,
		"title":       chapter.Title,
		"content":     chapter.Content,
		"order_index": chapter.OrderIndex,
	})
}

type RateCourseInput struct {
	Rating int `json:"rating"`
}

// RateCourse upserts the caller's rating on (course_id, user_id) and
// returns the freshly re-read aggregate.
func (cc *CoursesController) RateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input RateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return utils.BadRequest(c, "Rating must be between 1 and 5")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	rating := models.CourseRating{
		CourseID: course.ID,
		UserID:   userID,
		Rating:   input.Rating,
	}
	err = cc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not save rating")
	}

	average, total, err := cc.courseRating(course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not compute course rating")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course_id":      course.ID,
		"user_rating":    input.Rating,
		"average_rating": average,
		"total_ratings":  total,
	})
}

// courseRating computes the aggregate the hosted platform exposed as the
// get_course_rating procedure.
func (cc *CoursesController) courseRating(courseID uint) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}
	err := cc.DB.Model(&models.CourseRating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("course_id = ?", courseID).
		Scan(&result).Error
	return result.Average, result.Total, err
}
