package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-portal/internal/cache"
	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/events"
	"github.com/spec-kit/gym-portal/internal/repository"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

const (
	coursesCacheKey  = "catalog:courses"
	plansCacheKey    = "catalog:plans"
	productsCacheKey = "catalog:products"
)

// CatalogService manages the admin-editable catalogs: courses, subscription
// plans and shop products. List reads go through the cache; every write
// invalidates the touched catalog.
type CatalogService struct {
	courses       repository.CourseRepository
	plans         repository.PlanRepository
	products      repository.ProductRepository
	subscriptions repository.SubscriptionRepository
	dispatcher    events.Dispatcher
	cache         cache.Cache
	catalogTTL    time.Duration
}

// CatalogDependencies bundles collaborators for the catalog service.
type CatalogDependencies struct {
	CourseRepo       repository.CourseRepository
	PlanRepo         repository.PlanRepository
	ProductRepo      repository.ProductRepository
	SubscriptionRepo repository.SubscriptionRepository
	Dispatcher       events.Dispatcher
	Cache            cache.Cache
	CatalogTTL       time.Duration
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	svc := &CatalogService{
		courses:       deps.CourseRepo,
		plans:         deps.PlanRepo,
		products:      deps.ProductRepo,
		subscriptions: deps.SubscriptionRepo,
		dispatcher:    deps.Dispatcher,
		cache:         deps.Cache,
		catalogTTL:    deps.CatalogTTL,
	}
	if svc.cache == nil {
		svc.cache = cache.Noop{}
	}
	if svc.catalogTTL <= 0 {
		svc.catalogTTL = 5 * time.Minute
	}
	return svc
}

// CourseInput describes a course create or update payload.
type CourseInput struct {
	Title       string
	Description string
	VideoURL    string
	Level       domain.Tier
	Category    string
	Duration    int
	Instructor  string
	Thumbnail   *string
}

// CreateCourse adds a catalog entry.
func (s *CatalogService) CreateCourse(ctx context.Context, input CourseInput) (*domain.Course, error) {
	if !input.Level.Valid() {
		return nil, apperrors.NewValidationError("unknown course level", map[string]any{"level": input.Level})
	}

	course := &domain.Course{
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Level:       input.Level,
		Category:    input.Category,
		Duration:    input.Duration,
		Instructor:  input.Instructor,
		Thumbnail:   input.Thumbnail,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(coursesCacheKey)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCourseCreated,
			Timestamp: time.Now(),
			Payload:   events.CourseCreatedPayload{Title: course.Title, Level: course.Level},
		})
	}
	return course, nil
}

// UpdateCourse edits a catalog entry.
func (s *CatalogService) UpdateCourse(ctx context.Context, id string, input CourseInput) (*domain.Course, error) {
	if !input.Level.Valid() {
		return nil, apperrors.NewValidationError("unknown course level", map[string]any{"level": input.Level})
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Title = input.Title
	course.Description = input.Description
	course.VideoURL = input.VideoURL
	course.Level = input.Level
	course.Category = input.Category
	course.Duration = input.Duration
	course.Instructor = input.Instructor
	course.Thumbnail = input.Thumbnail

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(coursesCacheKey)
	return course, nil
}

// DeleteCourse removes a catalog entry. Overrides and schedule references
// follow via foreign keys.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("course", map[string]any{"course_id": id})
		}
		return err
	}
	_ = s.cache.Invalidate(coursesCacheKey)
	return nil
}

// GetCourse returns one catalog entry.
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("course", map[string]any{"course_id": id})
		}
		return nil, err
	}
	return course, nil
}

// ListCourses returns the course catalog.
func (s *CatalogService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var cached []domain.Course
	if hit, err := s.cache.Get(coursesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(coursesCacheKey, courses, s.catalogTTL)
	return courses, nil
}

// PlanInput describes a subscription plan payload.
type PlanInput struct {
	Name         string
	Level        domain.Tier
	MonthlyPrice float64
	AnnualPrice  float64
	Features     []string
	AppAccess    bool
	IsFamily     bool
}

// CreatePlan adds a sellable plan.
func (s *CatalogService) CreatePlan(ctx context.Context, input PlanInput) (*domain.SubscriptionPlan, error) {
	if !input.Level.Valid() {
		return nil, apperrors.NewValidationError("unknown plan level", map[string]any{"level": input.Level})
	}

	plan := &domain.SubscriptionPlan{
		Name:         input.Name,
		Level:        input.Level,
		MonthlyPrice: input.MonthlyPrice,
		AnnualPrice:  input.AnnualPrice,
		Features:     input.Features,
		AppAccess:    input.AppAccess,
		IsFamily:     input.IsFamily,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(plansCacheKey)
	return plan, nil
}

// UpdatePlan edits a plan. Plans with current subscribers cannot change.
func (s *CatalogService) UpdatePlan(ctx context.Context, id string, input PlanInput) (*domain.SubscriptionPlan, error) {
	if !input.Level.Valid() {
		return nil, apperrors.NewValidationError("unknown plan level", map[string]any{"level": input.Level})
	}

	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guardPlanInUse(ctx, id); err != nil {
		return nil, err
	}

	plan.Name = input.Name
	plan.Level = input.Level
	plan.MonthlyPrice = input.MonthlyPrice
	plan.AnnualPrice = input.AnnualPrice
	plan.Features = input.Features
	plan.AppAccess = input.AppAccess
	plan.IsFamily = input.IsFamily

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(plansCacheKey)
	return plan, nil
}

// DeletePlan removes a plan. Plans with current subscribers cannot be
// deleted.
func (s *CatalogService) DeletePlan(ctx context.Context, id string) error {
	if _, err := s.GetPlan(ctx, id); err != nil {
		return err
	}
	if err := s.guardPlanInUse(ctx, id); err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("plan", map[string]any{"plan_id": id})
		}
		return err
	}
	_ = s.cache.Invalidate(plansCacheKey)
	return nil
}

// GetPlan returns one plan.
func (s *CatalogService) GetPlan(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("plan", map[string]any{"plan_id": id})
		}
		return nil, err
	}
	return plan, nil
}

// ListPlans returns every plan.
func (s *CatalogService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	var cached []domain.SubscriptionPlan
	if hit, err := s.cache.Get(plansCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(plansCacheKey, plans, s.catalogTTL)
	return plans, nil
}

func (s *CatalogService) guardPlanInUse(ctx context.Context, planID string) error {
	count, err := s.subscriptions.CountCurrentByPlan(ctx, planID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict("plan has current subscribers", map[string]any{
			"plan_id":     planID,
			"subscribers": count,
		})
	}
	return nil
}

// ProductInput describes a shop product payload.
type ProductInput struct {
	Label       string
	Description string
	Price       float64
	Image       *string
}

// CreateProduct adds a shop item.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": input.Price})
	}

	product := &domain.Product{
		Label:       input.Label,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(productsCacheKey)
	return product, nil
}

// UpdateProduct edits a shop item.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{"price": input.Price})
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Label = input.Label
	product.Description = input.Description
	product.Price = input.Price
	product.Image = input.Image

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(productsCacheKey)
	return product, nil
}

// DeleteProduct removes a shop item.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return err
	}
	_ = s.cache.Invalidate(productsCacheKey)
	return nil
}

// GetProduct returns one shop item.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns the shop catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if hit, err := s.cache.Get(productsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(productsCacheKey, products, s.catalogTTL)
	return products, nil
}
