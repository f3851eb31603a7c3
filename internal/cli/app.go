// Package cli drives the interactive project manager session. The menu loop
// is an explicit state machine: every handler returns a typed result, store
// and validation failures roll back to the per-iteration savepoint and the
// loop continues from the menu.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/poisebuild/poise-pms/internal/config"
	"github.com/poisebuild/poise-pms/internal/model"
	"github.com/poisebuild/poise-pms/internal/service"
	"github.com/poisebuild/poise-pms/internal/session"
)

type state int

const (
	stateMenu state = iota
	stateExit
)

type App struct {
	console  *Console
	sess     *session.Session
	projects *service.ProjectService
	cfg      *config.Config
	log      zerolog.Logger
	currency string
	now      func() time.Time
}

type Option func(*App)

// WithClock overrides the time source used for overdue listings and
// completion dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func New(
	console *Console,
	sess *session.Session,
	projects *service.ProjectService,
	cfg *config.Config,
	log zerolog.Logger,
	opts ...Option,
) *App {
	app := &App{
		console:  console,
		sess:     sess,
		projects: projects,
		cfg:      cfg,
		log:      log.With().Str("session_id", sess.ID().String()).Logger(),
		currency: cfg.Reports.CurrencySymbol,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run executes the menu loop until the operator exits. Recoverable failures
// never terminate the loop; only a broken session transaction does.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := a.sess.Savepoint(session.MenuSavepoint); err != nil {
			return fmt.Errorf("set savepoint: %w", err)
		}

		a.console.Println("______________________\nProject Manager\n______________________")
		a.showMenu()
		choice, err := a.console.ReadLine("\nSelect an option: ")
		if err != nil {
			// Input ran out. Pending work is discarded when the session
			// closes; exit never commits implicitly.
			a.log.Debug().Msg("input closed, leaving menu loop")
			return nil
		}

		next, err := a.dispatch(ctx, choice)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.log.Debug().Msg("input closed mid-operation")
				return nil
			}
			if rbErr := a.sess.RollbackTo(session.MenuSavepoint); rbErr != nil {
				return fmt.Errorf("rollback to savepoint: %w", rbErr)
			}
			a.log.Error().Err(err).Str("option", choice).Msg("menu iteration rolled back")
			if errors.Is(err, service.ErrInvalidInput) {
				a.console.Println("An error has occurred. Invalid input.")
			} else {
				a.console.Println("An error has occurred.")
			}
			continue
		}

		if next == stateExit {
			a.console.Println("Closing Project Manager...")
			return nil
		}
	}
}

func (a *App) dispatch(ctx context.Context, choice string) (state, error) {
	switch choice {
	case "0":
		a.showMenu()
		return stateMenu, nil
	case "1":
		return stateMenu, a.handleCreate(ctx)
	case "2":
		return stateMenu, a.handleSearch(ctx)
	case "3":
		return stateMenu, a.handleIncomplete(ctx)
	case "4":
		return stateMenu, a.handleOverdue(ctx)
	case "5":
		return stateExit, nil
	default:
		a.console.Println("Option not found. Try again.")
		return stateMenu, nil
	}
}

func (a *App) showMenu() {
	a.console.Println("Main Menu\n_____________\n" +
		"1 - Create new\n" +
		"2 - Search - view, update or finalise projects.\n" +
		"3 - View projects to be completed\n" +
		"4 - View projects past due date\n" +
		"5 - Close Project Manager")
}

// printProjectWithStakeholders renders the project block followed by its
// four stakeholders in fixed role order. A stakeholder row that no longer
// exists renders as a notice, never as a crash.
func (a *App) printProjectWithStakeholders(ctx context.Context, project *model.Project) error {
	a.console.Println(a.formatProject(project))
	a.console.Println("\nStakeholders\n-------------")
	for i, role := range model.Roles {
		if i > 0 {
			a.console.Println()
		}
		person, err := a.projects.GetPerson(ctx, role, project.StakeholderID(role))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				a.console.Printf("[%s]\nNot on record.\n", role.Label())
				continue
			}
			return err
		}
		a.console.Println(formatPerson(*person))
	}
	return nil
}
