package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	catalogin "apnea/internal/modules/catalog/adapter/in"
	catalogout "apnea/internal/modules/catalog/adapter/out"
	catalogservice "apnea/internal/modules/catalog/service"
	catalogusecase "apnea/internal/modules/catalog/usecase"
	planin "apnea/internal/modules/plan/adapter/in"
	planout "apnea/internal/modules/plan/adapter/out"
	plandomain "apnea/internal/modules/plan/domain"
	planservice "apnea/internal/modules/plan/service"
	planusecase "apnea/internal/modules/plan/usecase"
	profilein "apnea/internal/modules/profile/adapter/in"
	profileout "apnea/internal/modules/profile/adapter/out"
	profileservice "apnea/internal/modules/profile/service"
	profileusecase "apnea/internal/modules/profile/usecase"
	progressin "apnea/internal/modules/progress/adapter/in"
	progressout "apnea/internal/modules/progress/adapter/out"
	progressservice "apnea/internal/modules/progress/service"
	progressusecase "apnea/internal/modules/progress/usecase"
	sessionin "apnea/internal/modules/session/adapter/in"
	sessionout "apnea/internal/modules/session/adapter/out"
	sessiondto "apnea/internal/modules/session/dto"
	sessionservice "apnea/internal/modules/session/service"
	sessionusecase "apnea/internal/modules/session/usecase"
	"apnea/internal/platform/clock"
	"apnea/internal/platform/config"
	"apnea/internal/platform/id"
	"apnea/internal/platform/sqlitedb"
	"apnea/internal/platform/tx"
	uiapp "apnea/internal/ui/app"
	pickerview "apnea/internal/ui/views/picker"
)

type App struct {
	Config      config.Config
	CatalogCLI  catalogin.CLIHandler
	PlanCLI     planin.CLIHandler
	ProfileCLI  profilein.CLIHandler
	SessionCLI  sessionin.CLIHandler
	ProgressCLI progressin.CLIHandler

	db *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlitedb.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogout.NewYAMLOverrideStore(cfg.TemplatesPath),
	))

	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(
		clk,
		ids,
		profileout.NewJSONRepository(cfg.StorePath),
		profileout.NewSQLiteRecordProjector(db),
		profileout.NewJSONExchange(),
		profileout.NewCatalogTypes(catalogUC),
		&tx.Serial{},
	))

	planUC := planusecase.NewInteractor(planservice.NewPlanService(
		planout.NewCatalogSource(catalogUC),
		planout.NewProfileSource(profileUC),
		plandomain.Options{BoxMode: plandomain.BoxMode(cfg.BoxBreathing)},
	))

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		ids,
		sessionout.NewMarkdownJournalStore(cfg.JournalDir),
		sessionout.NewProfileSink(profileUC),
		sessionout.NewPlanSource(planUC),
	))

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressout.NewSQLiteRecordReader(db),
		progressout.NewProfileLocator(profileUC),
	))

	return &App{
		Config:      cfg,
		CatalogCLI:  catalogin.NewCLIHandler(catalogUC),
		PlanCLI:     planin.NewCLIHandler(planUC),
		ProfileCLI:  profilein.NewCLIHandler(profileUC),
		SessionCLI:  sessionin.NewCLIHandler(sessionUC),
		ProgressCLI: progressin.NewCLIHandler(progressUC),
		db:          db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RunTUI opens the live runner. A nil initial starts on the session picker.
func RunTUI(app *App, initial *sessiondto.PrepareOutput, date string) error {
	model := uiapp.NewModel(
		uiapp.Options{TickInterval: app.Config.TickInterval, Date: date},
		app.SessionCLI,
		app.ProfileCLI,
		pickerBridge{app: app, date: date},
		initial,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// pickerBridge lists built-in templates followed by the current profile's
// custom sessions.
type pickerBridge struct {
	app  *App
	date string
}

func (b pickerBridge) Choices(ctx context.Context) ([]pickerview.Choice, error) {
	templates, err := b.app.CatalogCLI.List(ctx)
	if err != nil {
		return nil, err
	}
	customs, err := b.app.ProfileCLI.CustomSessions(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]pickerview.Choice, 0, len(templates)+len(customs))
	for _, t := range templates {
		choices = append(choices, pickerview.Choice{Name: t.Name, Category: t.Category})
	}
	for _, c := range customs {
		choices = append(choices, pickerview.Choice{Name: c.Definition.Name, Custom: true})
	}
	return choices, nil
}

func (b pickerBridge) Preview(ctx context.Context, sessionType string) (sessiondto.PrepareOutput, error) {
	return b.app.SessionCLI.Prepare(ctx, sessionType, b.date, 0)
}
