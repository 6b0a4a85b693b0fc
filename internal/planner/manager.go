package planner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/modplan/internal/account"
	"github.com/handiism/modplan/internal/api"
	"github.com/handiism/modplan/internal/api/dto"
	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/config"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

// PlanService is the plan-generation and persistence collaborator.
type PlanService interface {
	GeneratePlan(ctx context.Context, req dto.GenerateRequest) (map[string][]model.Module, error)
	SavePlan(ctx context.Context, userID, label string, doc dto.PlanDocument) error
	FetchUserPlan(ctx context.Context, userID string) (dto.FetchPlanResponse, error)
}

// PlanStatus says whether the signed-in user already has a stored plan.
type PlanStatus int

const (
	// PlanUnknown means the check was skipped or failed.
	PlanUnknown PlanStatus = iota
	PlanMissing
	PlanExists
)

// Bootstrap is everything the board needs at startup.
type Bootstrap struct {
	Board      board.State
	Engine     *requirements.Engine
	User       model.User
	SignedIn   bool
	PlanStatus PlanStatus
}

// NeedsOnboarding reports whether the user should be offered plan
// generation.
func (b Bootstrap) NeedsOnboarding() bool {
	return b.SignedIn && b.PlanStatus == PlanMissing
}

// Manager coordinates the boundary calls around the board: startup, plan
// generation and plan persistence.
type Manager struct {
	settings *config.Settings
	plans    PlanService
	accounts *account.Service
	logger   *zap.Logger

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager. onProgress and logger may be nil.
func NewManager(settings *config.Settings, plans PlanService, accounts *account.Service, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		settings:   settings,
		plans:      plans,
		accounts:   accounts,
		logger:     logger.Named("planner"),
		onProgress: onProgress,
	}
}

// Initialize loads the requirement catalogue and the starter plan, restores
// the stored session and checks whether the user has a saved plan. The
// three run concurrently.
//
// A saved plan replaces the starter plan contents. Only a broken catalogue
// or template is an error; a failed plan check leaves PlanStatus unknown.
func (m *Manager) Initialize(ctx context.Context) (Bootstrap, error) {
	var (
		categories []model.RequirementCategory
		tl         timeline.Timeline
		user       model.User
		signedIn   bool
		status     PlanStatus
		saved      *dto.PlanDocument
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m.progress(ProgressEvent{Message: "Loading requirement catalogue", Level: LevelVerbose})
		var err error
		if m.settings.CataloguePath == "" {
			categories, err = requirements.Default()
		} else {
			categories, err = requirements.Load(m.settings.CataloguePath)
		}
		return err
	})

	g.Go(func() error {
		m.progress(ProgressEvent{Message: "Loading starter plan", Level: LevelVerbose})
		var err error
		if m.settings.TemplatePath == "" {
			tl, err = timeline.Template()
		} else {
			tl, err = timeline.LoadTemplate(m.settings.TemplatePath)
		}
		return err
	})

	g.Go(func() error {
		if m.accounts == nil {
			return nil
		}
		user, signedIn = m.accounts.Restore()
		if !signedIn {
			return nil
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Welcome back, %s", user.Name), Level: LevelInfo})
		status, saved = m.checkSavedPlan(ctx, user)
		return nil
	})

	if err := g.Wait(); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Startup failed: %v", err), Level: LevelError})
		return Bootstrap{}, err
	}

	if saved != nil {
		tl = tl.ApplySemesterPlan(saved.ToModules())
		m.progress(ProgressEvent{Message: "Loaded your saved plan", Level: LevelSuccess})
	}

	return Bootstrap{
		Board:      board.New(tl, staging.NewPool()),
		Engine:     requirements.NewEngine(categories),
		User:       user,
		SignedIn:   signedIn,
		PlanStatus: status,
	}, nil
}

// CheckSavedPlan reports whether user has a stored plan. The returned
// action loads that plan into a board; it is nil when there is nothing to
// load.
func (m *Manager) CheckSavedPlan(ctx context.Context, user model.User) (PlanStatus, board.Action) {
	status, saved := m.checkSavedPlan(ctx, user)
	if saved == nil {
		return status, nil
	}
	return status, board.ApplyPlan{Plan: saved.ToModules()}
}

func (m *Manager) checkSavedPlan(ctx context.Context, user model.User) (PlanStatus, *dto.PlanDocument) {
	if m.plans == nil || user.ID == account.OfflineGuest.ID {
		return PlanUnknown, nil
	}
	resp, err := m.plans.FetchUserPlan(ctx, user.ID)
	if err != nil {
		m.logger.Warn("plan check failed", zap.String("user_id", user.ID), zap.Error(err))
		return PlanUnknown, nil
	}
	if !resp.Exists {
		return PlanMissing, nil
	}
	return PlanExists, resp.Plan
}

// Generate requests a plan for focusArea (a display name) and stores it
// under the configured label. The returned action applies the plan to a
// board; it is nil on failure.
func (m *Manager) Generate(ctx context.Context, userID, focusArea string) (board.Action, error) {
	req := m.settings.ToGenerateRequest(api.MapFocusArea(focusArea))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Generating plan (%s, focus %s)", req.Major, req.FocusArea), Level: LevelInfo})

	plan, err := m.plans.GeneratePlan(ctx, req)
	if err != nil {
		m.fail("Plan generation failed", err)
		return nil, err
	}

	doc := dto.NewPlanDocument(m.settings.StartYear, plan)
	if err := m.plans.SavePlan(ctx, userID, m.settings.PlanLabel, doc); err != nil {
		m.fail("Saving the generated plan failed", err)
		return nil, err
	}

	m.logger.Info("plan generated", zap.String("user_id", userID), zap.Int("semesters", len(plan)))
	m.progress(ProgressEvent{Message: "Plan generated and saved", Level: LevelSuccess})
	return board.ApplyPlan{Plan: plan}, nil
}

// Skip stores an empty plan so the user is not offered generation again.
// Failures are reported but not returned.
func (m *Manager) Skip(ctx context.Context, userID string) {
	doc := dto.EmptyPlanDocument(m.settings.StartYear, m.settings.PlanningYears)
	if err := m.plans.SavePlan(ctx, userID, m.settings.PlanLabel, doc); err != nil {
		m.logger.Warn("empty plan not saved", zap.String("user_id", userID), zap.Error(err))
		m.progress(ProgressEvent{Message: "Could not record the skipped setup", Level: LevelWarning})
	}
}

// Save stores the current timeline.
func (m *Manager) Save(ctx context.Context, userID string, state board.State) error {
	doc := dto.NewPlanDocument(m.settings.StartYear, PlanModules(state.Timeline))
	if err := m.plans.SavePlan(ctx, userID, m.settings.PlanLabel, doc); err != nil {
		m.fail("Saving failed", err)
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %q", m.settings.PlanLabel), Level: LevelSuccess})
	return nil
}

// PlanModules exports the timeline keyed by y<year>s<n>, keeping titles.
func PlanModules(tl timeline.Timeline) map[string][]model.Module {
	out := make(map[string][]model.Module)
	for _, sem := range tl.Semesters() {
		key, ok := tl.SemesterKey(sem.ID)
		if !ok {
			continue
		}
		modules := make([]model.Module, len(sem.Modules))
		copy(modules, sem.Modules)
		out[key] = modules
	}
	return out
}

func (m *Manager) fail(what string, err error) {
	level := zap.ErrorLevel
	if errors.Is(err, api.ErrRejected) || errors.Is(err, api.ErrInvalidRequest) {
		level = zap.WarnLevel
	}
	m.logger.Log(level, what, zap.Error(err))
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", what, api.UserMessage(err)), Level: LevelError})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
