package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vetfinder/internal/service"
	"github.com/MKhiriev/vetfinder/models"
)

type signInDoneMsg struct {
	session models.Session
	err     error
}

type welcomeModel struct {
	ctx  context.Context
	auth service.AuthService

	signingIn  bool
	errMsg     string
	quitByUser bool
}

func newWelcomeModel(ctx context.Context, auth service.AuthService) welcomeModel {
	return welcomeModel{ctx: ctx, auth: auth}
}

func (m welcomeModel) Init() tea.Cmd {
	// A persisted session skips the welcome screen entirely.
	if m.auth.Session(m.ctx).SignedIn() {
		return tea.Quit
	}
	return nil
}

func (m welcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(signInDoneMsg); ok {
		m.signingIn = false
		if result.err != nil {
			m.errMsg = result.err.Error()
			return m, nil
		}
		return m, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.quitByUser = true
		return m, tea.Quit
	case "enter":
		if m.signingIn {
			return m, nil
		}
		m.signingIn = true
		m.errMsg = ""
		return m, m.cmdSignIn()
	}

	return m, nil
}

func (m welcomeModel) View() string {
	out := titleStyle.Render("VetFinder") + "\n\n"
	out += "Find abroad healthcare providers that accept VA benefits.\n\n"

	if m.signingIn {
		out += "Signing in...\n"
	} else {
		out += "Press enter to continue anonymously.\n"
	}

	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
	}

	out += "\n" + helpStyle.Render("enter: continue │ q: quit")
	return out
}

func (m welcomeModel) cmdSignIn() tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, err := auth.SignIn(ctx)
		return signInDoneMsg{session: session, err: err}
	}
}
