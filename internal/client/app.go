// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/service"
	"github.com/MKhiriev/vetfinder/internal/tui"
	"github.com/MKhiriev/vetfinder/models"
)

type App struct {
	services *service.Services
	tui      *tui.TUI
	cfg      config.Workers
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, cfg config.Workers, logger *logger.Logger) (*App, error) {
	return &App{services: services, tui: ui, cfg: cfg, logger: logger}, nil
}

// Run drives the welcome/main-loop cycle until the user quits. Signing
// out returns to the welcome screen with all session-derived state
// already discarded by the subscription below.
func (a *App) Run() error {
	ctx := context.Background()

	unsubscribe := a.services.AuthService.Subscribe(func(session models.Session) {
		if session.SignedIn() {
			return
		}
		a.services.FavoritesService.Invalidate(ctx)
		a.services.ProfileService.Reset(ctx)
	})
	defer unsubscribe()

	a.services.AuthService.Restore(ctx)

	for {
		if !a.services.AuthService.Session(ctx).SignedIn() {
			if err := a.tui.SignInFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		if err := a.services.FavoritesService.Refresh(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("initial favorites refresh failed")
		}

		a.services.ReconcileJob.Start(ctx, a.cfg.ReconcileInterval)

		signedOut, err := a.tui.MainLoop(ctx)
		a.services.ReconcileJob.Stop()
		if err != nil {
			return err
		}
		if !signedOut {
			return nil
		}
	}
}
