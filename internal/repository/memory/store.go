// Package memory provides an in-process implementation of the repository
// interfaces. It mirrors the browser local-storage backend of the portal:
// plain record lists scanned linearly, no indexes. Missing rows are reported
// as pgx.ErrNoRows so callers behave identically against either backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-portal/internal/domain"
	"github.com/spec-kit/gym-portal/internal/repository"
)

// Store holds every collection behind one mutex. Single-admin deployments do
// not need finer locking.
type Store struct {
	mu            sync.RWMutex
	users         []domain.User
	courses       []domain.Course
	overrides     []domain.AccessOverride
	plans         []domain.SubscriptionPlan
	subscriptions []domain.UserSubscription
	products      []domain.Product
	programs      []domain.WeeklyProgram
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Users returns the user collection as a repository.
func (s *Store) Users() repository.UserRepository { return userStore{s} }

// Courses returns the course collection as a repository.
func (s *Store) Courses() repository.CourseRepository { return courseStore{s} }

// AccessOverrides returns the override collection as a repository.
func (s *Store) AccessOverrides() repository.AccessOverrideRepository { return overrideStore{s} }

// Plans returns the plan collection as a repository.
func (s *Store) Plans() repository.PlanRepository { return planStore{s} }

// Subscriptions returns the subscription collection as a repository.
func (s *Store) Subscriptions() repository.SubscriptionRepository { return subscriptionStore{s} }

// Products returns the product collection as a repository.
func (s *Store) Products() repository.ProductRepository { return productStore{s} }

// Programs returns the program collection as a repository.
func (s *Store) Programs() repository.ProgramRepository { return programStore{s} }

// ---- users ----

type userStore struct{ s *Store }

func (st userStore) Create(_ context.Context, user *domain.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	st.s.users = append(st.s.users, *user)
	return nil
}

func (st userStore) Update(_ context.Context, user *domain.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.users {
		if st.s.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			st.s.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st userStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.users {
		if st.s.users[i].ID == id {
			st.s.users = append(st.s.users[:i], st.s.users[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.users {
		if st.s.users[i].ID == id {
			user := st.s.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st userStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.users {
		if st.s.users[i].Username == username {
			user := st.s.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.users {
		if st.s.users[i].Email == email {
			user := st.s.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st userStore) List(_ context.Context) ([]domain.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.User{}, st.s.users...), nil
}

// ---- courses ----

type courseStore struct{ s *Store }

func (st courseStore) Create(_ context.Context, course *domain.Course) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	course.ID = uuid.NewString()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	st.s.courses = append(st.s.courses, *course)
	return nil
}

func (st courseStore) Update(_ context.Context, course *domain.Course) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.courses {
		if st.s.courses[i].ID == course.ID {
			course.UpdatedAt = time.Now()
			st.s.courses[i] = *course
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st courseStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.courses {
		if st.s.courses[i].ID == id {
			st.s.courses = append(st.s.courses[:i], st.s.courses[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st courseStore) GetByID(_ context.Context, id string) (*domain.Course, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.courses {
		if st.s.courses[i].ID == id {
			course := st.s.courses[i]
			return &course, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st courseStore) List(_ context.Context) ([]domain.Course, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.Course{}, st.s.courses...), nil
}

// ---- access overrides ----

type overrideStore struct{ s *Store }

func (st overrideStore) Upsert(_ context.Context, override *domain.AccessOverride) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.overrides {
		existing := &st.s.overrides[i]
		if existing.UserID == override.UserID && existing.CourseID == override.CourseID {
			override.ID = existing.ID
			override.CreatedAt = existing.CreatedAt
			override.UpdatedAt = time.Now()
			st.s.overrides[i] = *override
			return nil
		}
	}
	override.ID = uuid.NewString()
	override.CreatedAt = time.Now()
	override.UpdatedAt = override.CreatedAt
	st.s.overrides = append(st.s.overrides, *override)
	return nil
}

func (st overrideStore) Remove(_ context.Context, userID, courseID string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.overrides {
		if st.s.overrides[i].UserID == userID && st.s.overrides[i].CourseID == courseID {
			st.s.overrides = append(st.s.overrides[:i], st.s.overrides[i+1:]...)
			return nil
		}
	}
	// removing a missing override is not an error
	return nil
}

func (st overrideStore) Get(_ context.Context, userID, courseID string) (*domain.AccessOverride, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.overrides {
		if st.s.overrides[i].UserID == userID && st.s.overrides[i].CourseID == courseID {
			override := st.s.overrides[i]
			return &override, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st overrideStore) List(_ context.Context) ([]domain.AccessOverride, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.AccessOverride{}, st.s.overrides...), nil
}

// ---- subscription plans ----

type planStore struct{ s *Store }

func (st planStore) Create(_ context.Context, plan *domain.SubscriptionPlan) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	plan.Features = append([]string{}, plan.Features...)
	st.s.plans = append(st.s.plans, *plan)
	return nil
}

func (st planStore) Update(_ context.Context, plan *domain.SubscriptionPlan) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.plans {
		if st.s.plans[i].ID == plan.ID {
			plan.UpdatedAt = time.Now()
			plan.Features = append([]string{}, plan.Features...)
			st.s.plans[i] = *plan
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st planStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.plans {
		if st.s.plans[i].ID == id {
			st.s.plans = append(st.s.plans[:i], st.s.plans[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st planStore) GetByID(_ context.Context, id string) (*domain.SubscriptionPlan, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.plans {
		if st.s.plans[i].ID == id {
			plan := st.s.plans[i]
			return &plan, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st planStore) List(_ context.Context) ([]domain.SubscriptionPlan, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.SubscriptionPlan{}, st.s.plans...), nil
}

// ---- user subscriptions ----

type subscriptionStore struct{ s *Store }

func (st subscriptionStore) Create(_ context.Context, sub *domain.UserSubscription) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	st.s.subscriptions = append(st.s.subscriptions, *sub)
	return nil
}

func (st subscriptionStore) Update(_ context.Context, sub *domain.UserSubscription) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.subscriptions {
		if st.s.subscriptions[i].ID == sub.ID {
			sub.UpdatedAt = time.Now()
			st.s.subscriptions[i] = *sub
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st subscriptionStore) GetByID(_ context.Context, id string) (*domain.UserSubscription, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.subscriptions {
		if st.s.subscriptions[i].ID == id {
			sub := st.s.subscriptions[i]
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st subscriptionStore) GetCurrentByUser(_ context.Context, userID string) (*domain.UserSubscription, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := len(st.s.subscriptions) - 1; i >= 0; i-- {
		sub := st.s.subscriptions[i]
		if sub.UserID == userID && (sub.Status == domain.SubscriptionActive || sub.Status == domain.SubscriptionOverdue) {
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st subscriptionStore) ListByUser(_ context.Context, userID string) ([]domain.UserSubscription, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	subs := []domain.UserSubscription{}
	for i := range st.s.subscriptions {
		if st.s.subscriptions[i].UserID == userID {
			subs = append(subs, st.s.subscriptions[i])
		}
	}
	return subs, nil
}

func (st subscriptionStore) List(_ context.Context) ([]domain.UserSubscription, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.UserSubscription{}, st.s.subscriptions...), nil
}

func (st subscriptionStore) CountCurrentByPlan(_ context.Context, planID string) (int, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	count := 0
	for i := range st.s.subscriptions {
		sub := &st.s.subscriptions[i]
		if sub.PlanID == planID && (sub.Status == domain.SubscriptionActive || sub.Status == domain.SubscriptionOverdue) {
			count++
		}
	}
	return count, nil
}

// ---- products ----

type productStore struct{ s *Store }

func (st productStore) Create(_ context.Context, product *domain.Product) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	st.s.products = append(st.s.products, *product)
	return nil
}

func (st productStore) Update(_ context.Context, product *domain.Product) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.products {
		if st.s.products[i].ID == product.ID {
			product.UpdatedAt = time.Now()
			st.s.products[i] = *product
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st productStore) Delete(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.products {
		if st.s.products[i].ID == id {
			st.s.products = append(st.s.products[:i], st.s.products[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st productStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.products {
		if st.s.products[i].ID == id {
			product := st.s.products[i]
			return &product, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st productStore) List(_ context.Context) ([]domain.Product, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return append([]domain.Product{}, st.s.products...), nil
}

// ---- weekly programs ----

type programStore struct{ s *Store }

func (st programStore) CreateProgram(_ context.Context, program *domain.WeeklyProgram) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	program.ID = uuid.NewString()
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt
	stored := *program
	stored.Days = nil
	st.s.programs = append(st.s.programs, stored)
	return nil
}

func (st programStore) CreateDaySchedule(_ context.Context, day *domain.DaySchedule) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.programs {
		if st.s.programs[i].ID == day.ProgramID {
			day.ID = uuid.NewString()
			stored := *day
			stored.CourseIDs = append([]string{}, day.CourseIDs...)
			st.s.programs[i].Days = append(st.s.programs[i].Days, stored)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (st programStore) DeleteProgram(_ context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range st.s.programs {
		if st.s.programs[i].ID == id {
			st.s.programs = append(st.s.programs[:i], st.s.programs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (st programStore) GetByID(_ context.Context, id string) (*domain.WeeklyProgram, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	for i := range st.s.programs {
		if st.s.programs[i].ID == id {
			program := st.s.programs[i]
			program.Days = append([]domain.DaySchedule{}, program.Days...)
			return &program, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (st programStore) List(_ context.Context) ([]domain.WeeklyProgram, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	programs := make([]domain.WeeklyProgram, 0, len(st.s.programs))
	for i := range st.s.programs {
		program := st.s.programs[i]
		program.Days = append([]domain.DaySchedule{}, program.Days...)
		programs = append(programs, program)
	}
	return programs, nil
}
