// Package tui provides the interactive Bubble Tea dashboard for runway.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/runway/internal/advisor"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// AdviceMsg is sent when an advisor request finishes.
type AdviceMsg struct {
	Seq  int
	Text string
	Err  error
}

// Options configures a new App.
type Options struct {
	Config    config.Config
	Inputs    model.Inputs
	Tiers     model.TierConfig
	Advisor   advisor.Advisor // nil disables advice
	// NewAdvisor builds an advisor from config. When set, the advisor is
	// rebuilt whenever the key or model changes in setup or Settings.
	NewAdvisor func(config.Config) advisor.Advisor
	NeedSetup  bool
	Now        func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	now        func() time.Time
	advisor    advisor.Advisor
	newAdvisor func(config.Config) advisor.Advisor
	currency   string

	// Engine state, recomputed whenever inputs change
	inputs     model.Inputs
	tiers      model.TierConfig
	outcome    model.Outcome
	projection model.Projection
	inputErr   error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	afford   affordState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
	setupErr  error

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	adviceTimeout = 30 * time.Second

	tabDashboard = 0
	tabAfford    = 1
	tabBurndown  = 2
	tabSettings  = 3
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:        opts.Config,
		now:        now,
		advisor:    opts.Advisor,
		newAdvisor: opts.NewAdvisor,
		currency:   config.NormalizeCurrency(opts.Config.General.Currency),
		inputs:     opts.Inputs,
		tiers:      opts.Tiers,
		needSetup:  opts.NeedSetup,
		afford:     newAffordState(),
		spinner:    sp,
	}
	if a.advisor == nil && a.newAdvisor != nil {
		a.advisor = a.newAdvisor(a.cfg)
	}
	if a.inputs.Today.IsZero() {
		a.inputs.Today = engine.Today(now())
	}
	if a.tiers.Policy == "" {
		a.tiers = model.DefaultTierConfig()
	}
	if a.needSetup {
		a.setupVals = NewSetupValues(a.cfg, a.inputs.Today)
		a.setupForm = NewSetupForm(a.setupVals)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute refreshes the budget, projection, and any standing verdict.
func (a *App) recompute() {
	a.projection = nil
	a.outcome, a.inputErr = engine.ComputeBudget(a.inputs)
	if a.inputErr == nil && a.outcome.Result != nil {
		a.projection = engine.ComputeProjection(*a.outcome.Result)
	}
	if a.afford.evaluated {
		a.evaluatePurchase()
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Text inputs own the keyboard while focused
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.activeTab == tabAfford && a.afford.editing {
			return a.updateAffordInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabAfford {
			switch key {
			case "e", "enter":
				return a.affordStartEdit()
			case "g":
				return a.requestAdvice()
			case "c":
				a.afford = newAffordState()
				return a, nil
			}
		}

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				a.settings.move(1)
				return a, nil
			case "k", "up":
				a.settings.move(-1)
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation
		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case AdviceMsg:
		if msg.Seq != a.afford.adviceSeq {
			return a, nil // stale response for an earlier query
		}
		a.afford.advising = false
		a.afford.advice = msg.Text
		a.afford.adviceErr = msg.Err
		return a, nil

	case spinner.TickMsg:
		if a.afford.advising {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == tabAfford && a.afford.editing {
		var cmd tea.Cmd
		a.afford, cmd = a.afford.updateFocused(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.setupErr = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveSetupConfig applies the setup answers to the running app and persists
// them.
func (a *App) saveSetupConfig() error {
	cfg := a.cfg
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}
	if err := a.applyConfig(cfg); err != nil {
		return err
	}
	return config.Save(cfg)
}

// applyConfig replaces the running config and derived engine inputs.
func (a *App) applyConfig(cfg config.Config) error {
	in, err := cfg.Inputs(a.inputs.Today)
	if err != nil {
		return err
	}
	tiers, err := cfg.TierConfig()
	if err != nil {
		return err
	}
	if a.newAdvisor != nil && advisorChanged(a.cfg, cfg) {
		a.advisor = a.newAdvisor(cfg)
		a.afford.adviceErr = nil
	}
	a.cfg = cfg
	a.inputs = in
	a.tiers = tiers
	a.currency = config.NormalizeCurrency(cfg.General.Currency)
	theme.SetActive(cfg.Appearance.Theme)
	a.recompute()
	return nil
}

// advisorChanged reports whether the advisor settings differ between old
// and cfg. The key is compared after environment lookup.
func advisorChanged(old, cfg config.Config) bool {
	return config.GetAPIKey(old) != config.GetAPIKey(cfg) ||
		old.Advisor.Model != cfg.Advisor.Model ||
		old.Advisor.BaseURL != cfg.Advisor.BaseURL ||
		old.Advisor.TimeoutSec != cfg.Advisor.TimeoutSec
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" ") + pillAccent.Render(a.periodLabel()) +
		pillStyle.Render(" │ ") + pillAccent.Render(string(a.tiers.Policy)) +
		pillStyle.Render(" │ buffer ") + pillAccent.Render(fmt.Sprintf("%d%%", a.inputs.BufferPercent)) +
		pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	advisorState := "advisor off"
	if a.advisor != nil {
		advisorState = "advisor on"
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.currency+" · "+advisorState)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabAfford:
		content = a.renderAffordTab(cw)
	case tabBurndown:
		content = a.renderBurndownTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = fillWidth(fitHeight(content, contentH), cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) periodLabel() string {
	switch {
	case a.inputErr != nil:
		return "invalid inputs"
	case a.outcome.Ended():
		return "semester over"
	default:
		return fmt.Sprintf("%d days left", a.outcome.DaysRemaining)
	}
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabAfford && a.afford.editing:
		return "[Tab]next field  [Enter]check  [Esc]cancel"
	case a.activeTab == tabAfford:
		return "[e]dit  [g]et advice  [c]lear  [?]help  [q]uit"
	case a.activeTab == tabSettings && a.settings.editing:
		return "[Enter]save  [Esc]cancel"
	case a.activeTab == tabSettings:
		return "[j/k]move  [Enter]edit  [?]help  [q]uit"
	}
	return "[?]help  [q]uit"
}

// adviceCmd asks the advisor in the background, bounded by adviceTimeout.
func adviceCmd(adv advisor.Advisor, req advisor.Request, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()
		text, err := adv.Advise(ctx, req)
		return AdviceMsg{Seq: seq, Text: text, Err: err}
	}
}
