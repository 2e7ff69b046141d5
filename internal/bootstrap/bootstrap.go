package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "voltref/internal/modules/history/adapter/in"
	historyoutadapter "voltref/internal/modules/history/adapter/out"
	historyservice "voltref/internal/modules/history/service"
	historyusecase "voltref/internal/modules/history/usecase"
	providerinadapter "voltref/internal/modules/provider/adapter/in"
	provideroutadapter "voltref/internal/modules/provider/adapter/out"
	providerservice "voltref/internal/modules/provider/service"
	providerusecase "voltref/internal/modules/provider/usecase"
	scaleinadapter "voltref/internal/modules/scale/adapter/in"
	scaleoutadapter "voltref/internal/modules/scale/adapter/out"
	scaleservice "voltref/internal/modules/scale/service"
	scaleusecase "voltref/internal/modules/scale/usecase"
	"voltref/internal/platform/clock"
	"voltref/internal/platform/config"
	"voltref/internal/platform/id"
	uiapp "voltref/internal/ui/app"
	convertview "voltref/internal/ui/views/convert"
)

type App struct {
	ScaleCLI    scaleinadapter.CLIHandler
	ScaleTUI    scaleinadapter.TUIHandler
	HistoryTUI  historyinadapter.TUIHandler
	ProviderCLI providerinadapter.CLIHandler
	Defaults    config.Defaults
}

// New assembles the whole dependency graph. The electrode table is merged
// once here: built-in seeds first, then YAML packs, then plugin providers,
// so a later source can never shadow a built-in name.
func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	providerUC := providerusecase.NewInteractor(providerservice.NewProviderService(
		provideroutadapter.NewFileManifestStore(cfg.Root, cfg.ManifestPath),
		provideroutadapter.NewGRPCHost(),
	))

	projector, err := scaleoutadapter.NewSQLiteElectrodeProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new electrode projector: %w", err)
	}
	scaleSvc, err := scaleservice.NewScaleService(context.Background(), projector,
		scaleoutadapter.NewBuiltinSource(),
		scaleoutadapter.NewYAMLPackSource(cfg.PacksDir),
		scaleoutadapter.NewProviderSource(providerUC),
	)
	if err != nil {
		return nil, fmt.Errorf("assemble electrode table: %w", err)
	}
	scaleUC := scaleusecase.NewInteractor(scaleSvc)

	historyUC := historyusecase.NewInteractor(
		historyservice.NewHistoryService(clk, ids, historyoutadapter.NewMemoryRecordStore()),
		scaleUC,
	)

	return &App{
		ScaleCLI:    scaleinadapter.NewCLIHandler(scaleUC),
		ScaleTUI:    scaleinadapter.NewTUIHandler(scaleUC),
		HistoryTUI:  historyinadapter.NewTUIHandler(historyUC),
		ProviderCLI: providerinadapter.NewCLIHandler(providerUC),
		Defaults:    cfg.Defaults,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ScaleTUI, app.HistoryTUI, convertview.Defaults{
		Value: app.Defaults.Potential,
		From:  app.Defaults.From,
		To:    app.Defaults.To,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
