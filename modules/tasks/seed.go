package tasks

import (
	"log"
	"time"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/task"
	"github.com/google/uuid"
)

// demoOwner is the account the demo fixtures belong to.
const demoOwner = "demo-user"

// seedDemoData populates an empty store with demo projects and tasks
// spanning every due-date bucket. Enabled with TASKS_SEED_DEMO=true;
// a non-empty store is left alone.
func (m *TasksModule) seedDemoData() error {
	count, err := m.repo.CountByOwner(demoOwner)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[tasks] Demo data already present (%d tasks), skipping seed", count)
		return nil
	}

	now := time.Now()
	today := domain.StartOfDay(now)
	day := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset)
		return &d
	}

	work := domain.Project{
		ID:        uuid.New().String(),
		Name:      "Work",
		Color:     "#3b82f6",
		Owner:     demoOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	personal := domain.Project{
		ID:        uuid.New().String(),
		Name:      "Personal",
		Color:     "#22c55e",
		Owner:     demoOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, p := range []*domain.Project{&work, &personal} {
		if err := m.projects.Create(p); err != nil {
			return err
		}
	}

	demoTasks := []domain.Task{
		{
			Title:       "Prepare quarterly report",
			Description: "Numbers are due to finance by end of week",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			DueDate:     day(-2),
			ProjectID:   work.ID,
			Tags:        []string{"report", "finance"},
		},
		{
			Title:     "Review open pull requests",
			Status:    domain.StatusPending,
			Priority:  domain.PriorityUrgent,
			DueDate:   day(0),
			ProjectID: work.ID,
			Tags:      []string{"code-review"},
		},
		{
			Title:      "Plan team offsite",
			Status:     domain.StatusPending,
			Priority:   domain.PriorityMedium,
			DueDate:    day(3),
			ProjectID:  work.ID,
			AssignedTo: demoOwner,
		},
		{
			Title:     "Renew gym membership",
			Status:    domain.StatusPending,
			Priority:  domain.PriorityLow,
			DueDate:   day(6),
			ProjectID: personal.ID,
			Tags:      []string{"health"},
		},
		{
			Title:    "Read design system proposal",
			Status:   domain.StatusPending,
			Priority: domain.PriorityMedium,
		},
		{
			Title:       "Ship onboarding email flow",
			Description: "Went out this morning",
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityHigh,
			DueDate:     day(0),
			ProjectID:   work.ID,
		},
		{
			Title:     "Cancel unused subscription",
			Status:    domain.StatusCancelled,
			Priority:  domain.PriorityLow,
			DueDate:   day(-5),
			ProjectID: personal.ID,
		},
	}

	for i := range demoTasks {
		t := &demoTasks[i]
		t.ID = uuid.New().String()
		t.Owner = demoOwner
		t.CreatedAt = now
		t.UpdatedAt = now
		if t.Status == domain.StatusCompleted {
			t.CompletedAt = &now
		}
		if err := m.repo.Create(t); err != nil {
			return err
		}
	}

	log.Printf("[tasks] Seeded %d demo tasks and %d projects for %s", len(demoTasks), 2, demoOwner)
	return nil
}
