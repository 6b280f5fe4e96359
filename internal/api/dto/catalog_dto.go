package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// CourseRequest payload for course create and update.
type CourseRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	VideoURL    string      `json:"video_url" validate:"required"`
	Level       domain.Tier `json:"level" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Duration    int         `json:"duration" validate:"gte=1"`
	Instructor  string      `json:"instructor" validate:"required"`
	Thumbnail   *string     `json:"thumbnail"`
}

// CourseResponse projection.
type CourseResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	VideoURL    string      `json:"video_url"`
	Level       domain.Tier `json:"level"`
	Category    string      `json:"category"`
	Duration    int         `json:"duration"`
	Instructor  string      `json:"instructor"`
	Thumbnail   *string     `json:"thumbnail,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewCourseResponse maps a domain course.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		VideoURL:    course.VideoURL,
		Level:       course.Level,
		Category:    course.Category,
		Duration:    course.Duration,
		Instructor:  course.Instructor,
		Thumbnail:   course.Thumbnail,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// NewCourseResponses maps a course list.
func NewCourseResponses(courses []domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}

// PlanRequest payload for plan create and update.
type PlanRequest struct {
	Name         string      `json:"name" validate:"required"`
	Level        domain.Tier `json:"level" validate:"required"`
	MonthlyPrice float64     `json:"monthly_price" validate:"gte=0"`
	AnnualPrice  float64     `json:"annual_price" validate:"gte=0"`
	Features     []string    `json:"features"`
	AppAccess    bool        `json:"app_access"`
	IsFamily     bool        `json:"is_family"`
}

// PlanResponse projection.
type PlanResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Level        domain.Tier `json:"level"`
	MonthlyPrice float64     `json:"monthly_price"`
	AnnualPrice  float64     `json:"annual_price"`
	Features     []string    `json:"features"`
	AppAccess    bool        `json:"app_access"`
	IsFamily     bool        `json:"is_family"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(plan *domain.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		Level:        plan.Level,
		MonthlyPrice: plan.MonthlyPrice,
		AnnualPrice:  plan.AnnualPrice,
		Features:     plan.Features,
		AppAccess:    plan.AppAccess,
		IsFamily:     plan.IsFamily,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// NewPlanResponses maps a plan list.
func NewPlanResponses(plans []domain.SubscriptionPlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, NewPlanResponse(&plans[i]))
	}
	return out
}

// ProductRequest payload for shop items.
type ProductRequest struct {
	Label       string  `json:"label" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       *string `json:"image"`
}

// ProductResponse projection.
type ProductResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Label:       product.Label,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// NewProductResponses maps a product list.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
