package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/domain"
	"github.com/amalbabu1997/Fitness-Tracker-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests. They mirror
// the Mongo implementations closely enough to exercise the service
// logic, including the (analyticsId, date) upsert semantics.

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[primitive.ObjectID]*domain.Exercise{}}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *exercise
	stored.ID = id
	r.exercises[id] = &stored
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *exercise
	return &copied, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, goalCategory domain.GoalCategory) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, exercise := range r.exercises {
		if goalCategory == "" || exercise.GoalCategory == goalCategory {
			out = append(out, *exercise)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) SetMediaObjectKey(_ context.Context, id primitive.ObjectID, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	exercise.MediaObjectKey = objectKey
	return nil
}

type fakeAnalyticsRepo struct {
	mu    sync.Mutex
	goals map[primitive.ObjectID]*domain.Analytics
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{goals: map[primitive.ObjectID]*domain.Analytics{}}
}

func (r *fakeAnalyticsRepo) Create(_ context.Context, goal *domain.Analytics) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *goal
	stored.ID = id
	r.goals[id] = &stored
	return id, nil
}

func (r *fakeAnalyticsRepo) GetByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*domain.Analytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok || goal.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *goal
	return &copied, nil
}

func (r *fakeAnalyticsRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Analytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Analytics
	for _, goal := range r.goals {
		if goal.UserID == userID {
			out = append(out, *goal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAnalyticsRepo) ListByUserAndCadence(_ context.Context, userID primitive.ObjectID, cadence domain.Cadence) ([]domain.Analytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Analytics
	for _, goal := range r.goals {
		if goal.UserID == userID && goal.Cadence == cadence {
			out = append(out, *goal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAnalyticsRepo) ListUnfinished(_ context.Context) ([]domain.Analytics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Analytics
	for _, goal := range r.goals {
		if goal.Status != domain.GoalCompleted {
			out = append(out, *goal)
		}
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) UpdateProgress(_ context.Context, id primitive.ObjectID, percent float64, status domain.GoalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok {
		return repository.ErrNotFound
	}
	goal.ProgressPercent = percent
	goal.Status = status
	return nil
}

func (r *fakeAnalyticsRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok || goal.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *fakeAnalyticsRepo) get(id primitive.ObjectID) *domain.Analytics {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok {
		return nil
	}
	copied := *goal
	return &copied
}

type fakeOccurrenceRepo struct {
	mu          sync.Mutex
	occurrences map[string]*domain.Occurrence // keyed by analyticsID|date
}

func newFakeOccurrenceRepo() *fakeOccurrenceRepo {
	return &fakeOccurrenceRepo{occurrences: map[string]*domain.Occurrence{}}
}

func occKey(analyticsID primitive.ObjectID, date string) string {
	return analyticsID.Hex() + "|" + date
}

func (r *fakeOccurrenceRepo) Upsert(_ context.Context, occ *domain.Occurrence) (*domain.Occurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := occKey(occ.AnalyticsID, occ.Date)
	existing, ok := r.occurrences[key]
	if ok {
		existing.Status = occ.Status
		existing.UserID = occ.UserID
		if occ.CaloriesBurned != nil {
			existing.CaloriesBurned = occ.CaloriesBurned
		}
		copied := *existing
		return &copied, nil
	}
	stored := *occ
	stored.ID = primitive.NewObjectID()
	r.occurrences[key] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeOccurrenceRepo) CountByStatuses(_ context.Context, analyticsID primitive.ObjectID, statuses ...domain.OccurrenceStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, occ := range r.occurrences {
		if occ.AnalyticsID != analyticsID {
			continue
		}
		for _, status := range statuses {
			if occ.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeOccurrenceRepo) CountByStatusUpTo(_ context.Context, analyticsID primitive.ObjectID, date string, status domain.OccurrenceStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, occ := range r.occurrences {
		if occ.AnalyticsID == analyticsID && occ.Status == status && occ.Date <= date {
			count++
		}
	}
	return count, nil
}

func (r *fakeOccurrenceRepo) ExistsForDate(_ context.Context, analyticsID primitive.ObjectID, date string, statuses ...domain.OccurrenceStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	occ, ok := r.occurrences[occKey(analyticsID, date)]
	if !ok {
		return false, nil
	}
	for _, status := range statuses {
		if occ.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOccurrenceRepo) SumCaloriesByDate(_ context.Context, userID primitive.ObjectID) ([]repository.DateCalories, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := map[string]float64{}
	for _, occ := range r.occurrences {
		if occ.UserID != userID || occ.Status != domain.OccurrenceCompleted || occ.CaloriesBurned == nil {
			continue
		}
		totals[occ.Date] += *occ.CaloriesBurned
	}
	var rows []repository.DateCalories
	for date, total := range totals {
		rows = append(rows, repository.DateCalories{Date: date, TotalCalories: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

func (r *fakeOccurrenceRepo) DeleteByAnalyticsID(_ context.Context, analyticsID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, occ := range r.occurrences {
		if occ.AnalyticsID == analyticsID {
			delete(r.occurrences, key)
		}
	}
	return nil
}

func (r *fakeOccurrenceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.occurrences)
}

type fakeFoodRepo struct {
	mu           sync.Mutex
	items        map[primitive.ObjectID]*domain.FoodItem
	sizes        map[primitive.ObjectID]*domain.FoodSize
	consumptions []*domain.FoodConsumption
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{
		items: map[primitive.ObjectID]*domain.FoodItem{},
		sizes: map[primitive.ObjectID]*domain.FoodSize{},
	}
}

func (r *fakeFoodRepo) ListCategories(context.Context) ([]domain.FoodCategory, error) {
	return nil, nil
}

func (r *fakeFoodRepo) ListUnits(context.Context) ([]domain.FoodUnit, error) {
	return nil, nil
}

func (r *fakeFoodRepo) ListItems(context.Context, *primitive.ObjectID) ([]domain.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FoodItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeFoodRepo) GetItemByID(_ context.Context, id primitive.ObjectID) (*domain.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeFoodRepo) ListSizes(context.Context) ([]domain.FoodSize, error) {
	return nil, nil
}

func (r *fakeFoodRepo) GetSizeByID(_ context.Context, id primitive.ObjectID) (*domain.FoodSize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	size, ok := r.sizes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *size
	return &copied, nil
}

func (r *fakeFoodRepo) CreateConsumption(_ context.Context, c *domain.FoodConsumption) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *c
	stored.ID = id
	r.consumptions = append(r.consumptions, &stored)
	return id, nil
}

func (r *fakeFoodRepo) SumConsumedByDate(_ context.Context, userID primitive.ObjectID, start, end string, mealType *domain.MealType) ([]repository.DateCalories, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := map[string]float64{}
	for _, c := range r.consumptions {
		if c.UserID != userID {
			continue
		}
		if mealType != nil && c.MealType != *mealType {
			continue
		}
		day := c.LoggedAt.UTC().Format(domain.DateLayout)
		if day < start || day > end {
			continue
		}
		totals[day] += c.CaloriesConsumed
	}
	var rows []repository.DateCalories
	for date, total := range totals {
		rows = append(rows, repository.DateCalories{Date: date, TotalCalories: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}
