package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/service"
)

var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services *service.Services
}

func New(services *service.Services, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// SignInFlow shows the welcome screen until the user signs in anonymously
// or quits. Returns ErrUserQuit on quit.
func (t *TUI) SignInFlow(ctx context.Context) error {
	model := newWelcomeModel(ctx, t.services.AuthService)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(welcomeModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the provider browser until sign-out or quit. Returns true
// when the user signed out and wants to return to the welcome screen.
func (t *TUI) MainLoop(ctx context.Context) (signedOut bool, err error) {
	model := newMainLoopModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.signedOut, nil
}
