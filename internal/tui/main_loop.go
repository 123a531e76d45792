package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vetfinder/internal/service"
	"github.com/MKhiriev/vetfinder/models"
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.Services

	providers     []models.Provider
	facets        models.Facets
	countryFilter string
	idx           int
	loading       bool
	refreshing    bool
	onlyFavorites bool
	status        string
	errMsg        string
	detail        bool

	editingProfile bool
	profileInputs  []textinput.Model
	profileFocus   int
	profileSaving  bool

	signedOut bool
}

type providersLoadedMsg struct {
	providers []models.Provider
	err       error
}

type refreshDoneMsg struct {
	err error
}

type toggleDoneMsg struct {
	providerID string
	added      bool
	err        error
}

type profileSavedMsg struct {
	err error
}

type signOutDoneMsg struct {
	err error
}

func newMainLoopModel(ctx context.Context, services *service.Services) mainLoopModel {
	return mainLoopModel{
		ctx:      ctx,
		services: services,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadProviders(), m.cmdRefreshFavorites())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case providersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.providers = msg.providers
		m.facets = models.DeriveFacets(msg.providers)
		m.clampIdx()
		return m, nil
	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("refresh favorites: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.clampIdx()
		return m, nil
	case toggleDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("favorite not saved: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		if msg.added {
			m.status = "Added to favorites"
		} else {
			m.status = "Removed from favorites"
		}
		m.clampIdx()
		return m, nil
	case profileSavedMsg:
		m.profileSaving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.editingProfile = false
		m.status = "Profile saved"
		m.errMsg = ""
		return m, nil
	case signOutDoneMsg:
		// Local state is cleared even when the backend call failed.
		m.signedOut = true
		return m, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editingProfile {
			return m.updateProfileForm(msg)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.editingProfile {
		return m.updateProfileForm(msg)
	}

	if m.detail {
		provider, ok := m.current()
		if !ok {
			m.detail = false
			return m, nil
		}

		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			m.detail = false
		case "f":
			return m, m.toggleFavorite(provider)
		case "c":
			locator, ok := provider.MapsLocator()
			if !ok {
				m.status = "No maps link for this provider"
				return m, nil
			}
			if err := clipboard.WriteAll(locator); err != nil {
				m.errMsg = fmt.Sprintf("copy maps link: %v", err)
				return m, nil
			}
			m.status = "Maps link copied"
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up":
		if m.idx > 0 {
			m.idx--
		}
	case "down":
		if m.idx < len(m.visible())-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "No providers"
			return m, nil
		}
		m.detail = true
	case "f":
		provider, ok := m.current()
		if !ok {
			m.status = "No providers"
			return m, nil
		}
		return m, m.toggleFavorite(provider)
	case "v":
		m.onlyFavorites = !m.onlyFavorites
		m.idx = 0
	case "t":
		m.cycleCountryFilter()
		m.idx = 0
	case "r":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.loading = true
		m.status = ""
		m.errMsg = ""
		return m, tea.Batch(m.cmdLoadProviders(), m.cmdRefreshFavorites())
	case "p":
		m.startProfileForm()
		return m, textinput.Blink
	case "l":
		return m, m.cmdSignOut()
	}

	return m, nil
}

func (m *mainLoopModel) clampIdx() {
	if max := len(m.visible()) - 1; m.idx > max {
		m.idx = max
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// cycleCountryFilter steps through "all countries" plus every country the
// loaded providers actually carry.
func (m *mainLoopModel) cycleCountryFilter() {
	options := append([]string{""}, m.facets.Countries...)
	next := 0
	for i, country := range options {
		if country == m.countryFilter {
			next = (i + 1) % len(options)
			break
		}
	}
	m.countryFilter = options[next]
}

func (m mainLoopModel) visible() []models.Provider {
	filtered := models.FilterProviders(m.providers, models.ProviderFilter{Country: m.countryFilter})
	if !m.onlyFavorites {
		return filtered
	}

	out := make([]models.Provider, 0, len(filtered))
	for _, p := range filtered {
		if m.services.FavoritesService.IsFavorite(m.ctx, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (m mainLoopModel) current() (models.Provider, bool) {
	visible := m.visible()
	if len(visible) == 0 || m.idx < 0 || m.idx >= len(visible) {
		return models.Provider{}, false
	}
	return visible[m.idx], true
}

func (m mainLoopModel) toggleFavorite(provider models.Provider) tea.Cmd {
	// The cache flips before the remote write, so the marker updates on
	// the very next render; toggleDoneMsg only reports the outcome.
	added := !m.services.FavoritesService.IsFavorite(m.ctx, provider.ID)
	return m.cmdToggle(provider.ID, added)
}

func (m *mainLoopModel) startProfileForm() {
	profile := m.services.ProfileService.Load(m.ctx)

	fields := []struct {
		placeholder string
		value       string
	}{
		{"Jane Q. Veteran", profile.FullName},
		{"123-45-6789", profile.SSN},
		{"1975-04-21", profile.DOB},
		{"Street, city, country", profile.Address},
		{"+66 2 000 0000", profile.Phone},
		{"jane@example.com", profile.Email},
	}

	m.profileInputs = make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		input := textinput.New()
		input.Placeholder = f.placeholder
		input.Width = 40
		input.SetValue(f.value)
		if i == 0 {
			input.Focus()
		}
		m.profileInputs = append(m.profileInputs, input)
	}

	m.profileFocus = 0
	m.editingProfile = true
	m.status = ""
	m.errMsg = ""
}

func (m mainLoopModel) updateProfileForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.editingProfile = false
			m.errMsg = ""
			return m, nil
		case "tab":
			m.profileInputs[m.profileFocus].Blur()
			m.profileFocus = (m.profileFocus + 1) % len(m.profileInputs)
			m.profileInputs[m.profileFocus].Focus()
			return m, nil
		case "shift+tab":
			m.profileInputs[m.profileFocus].Blur()
			m.profileFocus = (m.profileFocus - 1 + len(m.profileInputs)) % len(m.profileInputs)
			m.profileInputs[m.profileFocus].Focus()
			return m, nil
		case "enter":
			if m.profileSaving {
				return m, nil
			}
			m.profileSaving = true
			m.errMsg = ""
			return m, m.cmdSaveProfile(m.collectProfile())
		}
	}

	var cmd tea.Cmd
	m.profileInputs[m.profileFocus], cmd = m.profileInputs[m.profileFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) collectProfile() models.Profile {
	return models.Profile{
		FullName: m.profileInputs[0].Value(),
		SSN:      m.profileInputs[1].Value(),
		DOB:      m.profileInputs[2].Value(),
		Address:  m.profileInputs[3].Value(),
		Phone:    m.profileInputs[4].Value(),
		Email:    m.profileInputs[5].Value(),
	}
}

func (m mainLoopModel) View() string {
	if m.editingProfile {
		return m.viewProfileForm()
	}

	if m.detail {
		provider, ok := m.current()
		if !ok {
			return renderPage("PROVIDER", "Provider not found", "esc: back")
		}
		title, out, hotKeys := m.viewDetail(provider)
		return renderPage(title, strings.TrimRight(out, "\n"), hotKeys)
	}

	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	title := "PROVIDERS"
	if m.onlyFavorites {
		title = "FAVORITE PROVIDERS"
	}
	if m.countryFilter != "" {
		title += " · " + m.countryFilter
	}
	hotKeys := "enter: open │ f: favorite │ v: favorites only │ t: country │ r: refresh │ p: profile │ l: sign out │ ↑/↓: move"

	out := ""

	if m.loading {
		out += "Loading providers...\n"
		return renderPage(title, strings.TrimRight(out, "\n"), hotKeys)
	}

	if m.errMsg != "" {
		out += "Error: " + m.errMsg + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}

	visible := m.visible()
	if len(visible) == 0 {
		if out != "" {
			out += "\n"
		}
		if m.onlyFavorites {
			out += "No favorites yet\n"
		} else {
			out += "No providers\n"
		}
	} else {
		if out != "" {
			out += "\n"
		}
		out += "    │ Name                     │ City            │ Country │ Billing\n"
		out += "────┼──────────────────────────┼─────────────────┼─────────┼──────────────\n"
		for i, p := range visible {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			marker := " "
			if m.services.FavoritesService.IsFavorite(m.ctx, p.ID) {
				marker = "★"
			}

			out += fmt.Sprintf(
				"%s %s │ %-24s │ %-15s │ %-7s │ %s\n",
				cursor,
				marker,
				fitText(p.Name, 24),
				fitText(valueOrDash(p.City), 15),
				fitText(valueOrDash(p.Country), 7),
				valueOrDash(p.Billing),
			)
		}
	}

	return renderPage(title, strings.TrimRight(out, "\n"), hotKeys)
}

func (m mainLoopModel) viewDetail(provider models.Provider) (title, body, hotKeys string) {
	favorite := "no"
	if m.services.FavoritesService.IsFavorite(m.ctx, provider.ID) {
		favorite = "yes ★"
	}

	locator := "-"
	if v, ok := provider.MapsLocator(); ok {
		locator = v
	}

	out := ""
	out += "Name      : " + provider.Name + "\n"
	out += "City      : " + valueOrDash(provider.City) + "\n"
	out += "Country   : " + valueOrDash(provider.Country) + "\n"
	out += "Region    : " + valueOrDash(provider.RegionTag) + "\n"
	out += "Billing   : " + valueOrDash(provider.Billing) + "\n"
	out += "Phone     : " + valueOrDash(provider.Phone) + "\n"
	out += "Email     : " + valueOrDash(provider.Email) + "\n"
	out += "Website   : " + valueOrDash(provider.Website) + "\n"
	out += "Address   : " + valueOrDash(provider.Address) + "\n"
	out += "Maps      : " + locator + "\n"
	out += "Favorite  : " + favorite + "\n"

	if m.errMsg != "" {
		out += "\nError: " + m.errMsg + "\n"
	}
	if m.status != "" {
		out += "\nStatus: " + m.status + "\n"
	}

	return "PROVIDER", out, "esc: back │ f: favorite │ c: copy maps link"
}

func (m mainLoopModel) viewProfileForm() string {
	labels := []string{
		"Full name ",
		"SSN       ",
		"Birth date",
		"Address   ",
		"Phone     ",
		"Email     ",
	}

	out := ""
	for i, input := range m.profileInputs {
		out += labels[i] + ": [ " + input.View() + " ]\n"
	}

	if m.profileSaving {
		out += "\nSaving...\n"
	}
	if m.errMsg != "" {
		out += "\nError: " + m.errMsg + "\n"
	}

	return renderPage(
		"MY PROFILE",
		strings.TrimRight(out, "\n"),
		"tab: next field │ shift+tab: prev field │ enter: save │ esc: back",
	)
}

func (m mainLoopModel) cmdLoadProviders() tea.Cmd {
	ctx := m.ctx
	gateway := m.services.Gateway

	return func() tea.Msg {
		providers, err := gateway.ListProviders(ctx)
		return providersLoadedMsg{providers: providers, err: err}
	}
}

func (m mainLoopModel) cmdRefreshFavorites() tea.Cmd {
	ctx := m.ctx
	svc := m.services.FavoritesService

	return func() tea.Msg {
		err := svc.Refresh(ctx)
		return refreshDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdToggle(providerID string, added bool) tea.Cmd {
	ctx := m.ctx
	svc := m.services.FavoritesService

	return func() tea.Msg {
		err := svc.Toggle(ctx, providerID)
		return toggleDoneMsg{providerID: providerID, added: added, err: err}
	}
}

func (m mainLoopModel) cmdSaveProfile(profile models.Profile) tea.Cmd {
	ctx := m.ctx
	svc := m.services.ProfileService

	return func() tea.Msg {
		_, err := svc.Save(ctx, profile)
		return profileSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdSignOut() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService

	return func() tea.Msg {
		err := auth.SignOut(ctx)
		return signOutDoneMsg{err: err}
	}
}
