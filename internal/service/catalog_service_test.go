package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *AccountService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	catalog := NewCatalogService(CatalogDependencies{
		CourseRepo:       store.Courses(),
		PlanRepo:         store.Plans(),
		ProductRepo:      store.Products(),
		SubscriptionRepo: store.Subscriptions(),
	})
	accounts := NewAccountService(AccountDependencies{
		UserRepo:         store.Users(),
		SubscriptionRepo: store.Subscriptions(),
		PlanRepo:         store.Plans(),
		Clock:            func() time.Time { return testNow },
	})
	return catalog, accounts, store
}

func TestCourseCRUD(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	course, err := catalog.CreateCourse(ctx, CourseInput{
		Title:      "hiit",
		VideoURL:   "https://videos.example.com/hiit",
		Level:      domain.TierMedium,
		Category:   "cardio",
		Duration:   30,
		Instructor: "coach",
	})
	require.NoError(t, err)
	require.NotEmpty(t, course.ID)

	updated, err := catalog.UpdateCourse(ctx, course.ID, CourseInput{
		Title:      "hiit v2",
		VideoURL:   course.VideoURL,
		Level:      domain.TierExpert,
		Category:   "cardio",
		Duration:   40,
		Instructor: "coach",
	})
	require.NoError(t, err)
	assert.Equal(t, "hiit v2", updated.Title)
	assert.Equal(t, domain.TierExpert, updated.Level)

	require.NoError(t, catalog.DeleteCourse(ctx, course.ID))
	_, err = catalog.GetCourse(ctx, course.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateCourseRejectsUnknownLevel(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	_, err := catalog.CreateCourse(context.Background(), CourseInput{
		Title:      "hiit",
		VideoURL:   "https://videos.example.com/hiit",
		Level:      domain.Tier("gold"),
		Category:   "cardio",
		Duration:   30,
		Instructor: "coach",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestPlanGuardBlocksDeleteAndUpdateWhenInUse(t *testing.T) {
	catalog, accounts, store := newCatalogFixture(t)
	ctx := context.Background()

	plan, err := catalog.CreatePlan(ctx, PlanInput{
		Name:         "premium",
		Level:        domain.TierMedium,
		MonthlyPrice: 49.90,
		AnnualPrice:  499,
	})
	require.NoError(t, err)

	user := seedUser(t, store, "alice", domain.TierDebutant)
	_, err = accounts.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)

	err = catalog.DeletePlan(ctx, plan.ID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, 1, domainErr.Details["subscribers"])

	_, err = catalog.UpdatePlan(ctx, plan.ID, PlanInput{Name: "premium v2", Level: domain.TierMedium})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	// once the subscription is gone the plan can be removed
	_, err = accounts.Cancel(ctx, "admin", user.ID)
	require.NoError(t, err)
	require.NoError(t, catalog.DeletePlan(ctx, plan.ID))
}

func TestPlanDeleteIgnoresPastSubscriptions(t *testing.T) {
	catalog, accounts, store := newCatalogFixture(t)
	ctx := context.Background()

	plan, err := catalog.CreatePlan(ctx, PlanInput{Name: "basic", Level: domain.TierDebutant})
	require.NoError(t, err)
	other, err := catalog.CreatePlan(ctx, PlanInput{Name: "premium", Level: domain.TierExpert})
	require.NoError(t, err)

	user := seedUser(t, store, "alice", domain.TierDebutant)
	_, err = accounts.AssignSubscription(ctx, "admin", user.ID, plan.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)
	// switching plans cancels the old subscription
	_, err = accounts.AssignSubscription(ctx, "admin", user.ID, other.ID, domain.IntervalMonthly, nil)
	require.NoError(t, err)

	assert.NoError(t, catalog.DeletePlan(ctx, plan.ID))
}

func TestProductCRUD(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	product, err := catalog.CreateProduct(ctx, ProductInput{Label: "shaker", Price: 9.90})
	require.NoError(t, err)

	_, err = catalog.CreateProduct(ctx, ProductInput{Label: "bad", Price: -1})
	require.Error(t, err)

	updated, err := catalog.UpdateProduct(ctx, product.ID, ProductInput{Label: "shaker xl", Price: 12.90})
	require.NoError(t, err)
	assert.Equal(t, "shaker xl", updated.Label)

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, catalog.DeleteProduct(ctx, product.ID))
	products, err = catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
