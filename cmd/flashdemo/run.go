package main

import (
	"context"
	"time"

	"github.com/matheus3301/flash/internal/app"
	"github.com/matheus3301/flash/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the flash message TUI",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*configPath)
		},
	}
}

func runTUI(configPath string) error {
	var ui *tui.App
	fxApp := fx.New(
		app.Module(app.Params{ConfigPath: configPath}),
		fx.Populate(&ui),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}

	runErr := ui.Run()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
