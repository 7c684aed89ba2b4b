package container

import (
	"context"
	"log"
	"os"

	"github.com/volition-os/volition-api/internal/auth"
	"github.com/volition-os/volition-api/internal/blueprint"
	"github.com/volition-os/volition-api/internal/calendar"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/job"
	"github.com/volition-os/volition-api/internal/planner"
	"github.com/volition-os/volition-api/internal/stresstest"
	"github.com/volition-os/volition-api/internal/trial"
	"github.com/volition-os/volition-api/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	GoalContainer       *goal.GoalContainer
	PlannerContainer    *planner.PlannerContainer
	TrialContainer      *trial.TrialContainer
	StressTestContainer *stresstest.StressTestContainer
	CalendarContainer   *calendar.CalendarContainer
	BlueprintContainer  *blueprint.BlueprintContainer
	JobContainer        *job.JobContainer
}

func New() *Container {
	ctx := context.Background()

	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.DB.AutoMigrate(
		&user.User{},
		&goal.Goal{},
		&trial.TrialTask{},
		&blueprint.Phase{},
		&blueprint.Milestone{},
		&job.JobCluster{},
		&job.Job{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	plannerContainer, err := planner.NewPlannerContainer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize planner: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	goalContainer := goal.NewGoalContainer(config.DB)
	calendarContainer := calendar.NewCalendarContainer(userContainer.Repo, userContainer.OAuthConfig)

	trialContainer := trial.NewTrialContainer(
		config.DB,
		goalContainer.Service,
		goalContainer.Repo,
		plannerContainer.Service,
	)
	stressTestContainer := stresstest.NewStressTestContainer(
		goalContainer.Service,
		trialContainer.Service,
		plannerContainer.Service,
	)

	// The job repository doubles as the blueprint's completion statistics
	// source, so it is created first and shared.
	jobRepo := job.NewRepositoryOnly(config.DB)

	blueprintContainer := blueprint.NewBlueprintContainer(
		config.DB,
		goalContainer.Service,
		goalContainer.Repo,
		plannerContainer.Service,
		jobRepo,
	)
	jobContainer := job.NewJobContainer(
		jobRepo,
		blueprintContainer.Repo,
		blueprintContainer.Service,
		goalContainer.Service,
		plannerContainer.Service,
		calendarContainer.Manager,
	)

	return &Container{
		UserContainer:       userContainer,
		GoalContainer:       goalContainer,
		PlannerContainer:    plannerContainer,
		TrialContainer:      trialContainer,
		StressTestContainer: stressTestContainer,
		CalendarContainer:   calendarContainer,
		BlueprintContainer:  blueprintContainer,
		JobContainer:        jobContainer,
	}
}
