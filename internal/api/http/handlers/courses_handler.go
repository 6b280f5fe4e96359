package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-portal/internal/api/dto"
	"github.com/spec-kit/gym-portal/internal/service"
)

// CoursesHandler exposes course catalog endpoints.
type CoursesHandler struct {
	catalog *service.CatalogService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(catalogService *service.CatalogService) *CoursesHandler {
	return &CoursesHandler{catalog: catalogService}
}

// List handles GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.catalog.ListCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseResponses(courses)})
}

// Get handles GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.catalog.GetCourse(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// Create handles POST /admin/courses.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	input, err := parseCourseInput(c)
	if err != nil {
		return err
	}
	course, err := h.catalog.CreateCourse(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// Update handles PUT /admin/courses/:id.
func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	input, err := parseCourseInput(c)
	if err != nil {
		return err
	}
	course, err := h.catalog.UpdateCourse(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// Delete handles DELETE /admin/courses/:id.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCourse(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCourseInput(c *fiber.Ctx) (*service.CourseInput, error) {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return &service.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Level:       req.Level,
		Category:    req.Category,
		Duration:    req.Duration,
		Instructor:  req.Instructor,
		Thumbnail:   req.Thumbnail,
	}, nil
}
