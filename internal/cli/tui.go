package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/errors"
	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/preview"
	"github.com/matzehuels/phpgen/pkg/project"
	"github.com/matzehuels/phpgen/pkg/session"
)

// tuiSessionTTL keeps the terminal form around between runs.
const tuiSessionTTL = 30 * 24 * time.Hour

// tuiSessionID is the fixed session the terminal form is stored under.
var tuiSessionID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("phpgen/tui")).String()

func (c *CLI) tuiCommand() *cobra.Command {
	var (
		fresh  bool
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Configure a project in an interactive terminal form",
		Long: `Configure a project in an interactive terminal form.

The form is saved in the cache directory on exit and restored on the next
run. Use --fresh to start over from the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, closeStore, err := openTUIStore(noSave)
			if err != nil {
				return err
			}
			defer closeStore()

			sess, err := store.Load(ctx, tuiSessionID)
			if err != nil {
				return err
			}
			sess.ID = tuiSessionID
			if fresh {
				sess.Reset()
			}

			final, err := tea.NewProgram(NewFormModel(ctx, sess.Config), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("run form: %w", err)
			}
			m := final.(FormModel)

			sess.Config = m.Config
			if err := store.Save(ctx, sess); err != nil {
				logger.Warn("could not save form", "err", err)
			}
			if m.Generated != nil {
				printResult(os.Stdout, m.Generated)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "start from the default form")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not restore or save the form")
	return cmd
}

func openTUIStore(noSave bool) (*session.CacheStore, func(), error) {
	store, err := newCache(noSave)
	if err != nil {
		return nil, nil, err
	}
	return session.NewCacheStore(store, nil, tuiSessionTTL), func() { _ = store.Close() }, nil
}

// =============================================================================
// FormModel - Interactive project form
// =============================================================================

type formTab int

const (
	formTabProject formTab = iota
	formTabDependencies
	formTabAdvanced
)

var formTabNames = []string{"Project", "Dependencies", "Advanced"}

// Rows of the project tab.
const (
	fieldFramework = iota
	fieldPHPVersion
	fieldName
	fieldDescription
	fieldAuthorName
	fieldAuthorEmail
)

var projectFieldLabels = []string{"Framework", "PHP Version", "Project Name", "Description", "Author Name", "Author Email"}

// maxFieldLength bounds what can be typed into a text field.
const maxFieldLength = 256

// Form styles
var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorGray)
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle       = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	badgeStyle       = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("238")).Padding(0, 1)
	errorStyle       = lipgloss.NewStyle().Foreground(colorRed)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// FormModel is the bubbletea model of the project form with its preview
// pane.
type FormModel struct {
	// Config is the edited form.
	Config project.Config
	// Generated is set when the form was generated before quitting.
	Generated *generate.Result

	ctx      context.Context
	tab      formTab
	cursor   int
	query    string
	category int

	previewFramework string
	previewTab       preview.Tab

	status    string
	statusErr bool
	width     int
	height    int
}

// NewFormModel creates a form model editing cfg.
func NewFormModel(ctx context.Context, cfg project.Config) FormModel {
	return FormModel{
		Config:           cfg.Clone(),
		ctx:              ctx,
		previewFramework: project.DefaultFramework,
		previewTab:       preview.TabStructure,
		width:            100,
		height:           30,
	}
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % formTab(len(formTabNames))
			m.cursor = 0
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + formTab(len(formTabNames)) - 1) % formTab(len(formTabNames))
			m.cursor = 0
			return m, nil
		case "ctrl+r":
			m.Config.Reset()
			m.query, m.category, m.cursor = "", 0, 0
			m.setStatus("Form reset", false)
			return m, nil
		case "ctrl+g":
			res, err := generate.Generate(m.ctx, m.Config)
			if err != nil {
				m.setStatus(errors.UserMessage(err), true)
				return m, nil
			}
			m.Generated = res
			m.setStatus(res.Message, false)
			return m, nil
		case "ctrl+p":
			m.previewTab = m.previewTab.Other()
			return m, nil
		case "ctrl+f":
			m.previewFramework = cycle(catalog.IDs(), m.previewFramework, 1)
			return m, nil
		}

		switch m.tab {
		case formTabProject:
			m.updateProject(msg)
		case formTabDependencies:
			m.updateDependencies(msg)
		case formTabAdvanced:
			m.updateAdvanced(msg)
		}
	}
	return m, nil
}

func (m *FormModel) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *FormModel) moveCursor(delta, n int) {
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *FormModel) textField(row int) (*string, string) {
	switch row {
	case fieldName:
		return &m.Config.Name, "project name"
	case fieldDescription:
		return &m.Config.Description, "description"
	case fieldAuthorName:
		return &m.Config.AuthorName, "author name"
	case fieldAuthorEmail:
		return &m.Config.AuthorEmail, "author email"
	}
	return nil, ""
}

func (m *FormModel) updateProject(msg tea.KeyMsg) {
	switch msg.String() {
	case "up":
		m.moveCursor(-1, len(projectFieldLabels))
		return
	case "down", "enter":
		m.moveCursor(1, len(projectFieldLabels))
		return
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.cursor {
		case fieldFramework:
			if err := m.Config.SetFramework(cycle(catalog.IDs(), m.Config.Framework, delta)); err != nil {
				m.setStatus(errors.UserMessage(err), true)
			}
			m.category = 0
		case fieldPHPVersion:
			if err := m.Config.SetPHPVersion(cycle(project.PHPVersions(), m.Config.PHPVersion, delta)); err != nil {
				m.setStatus(errors.UserMessage(err), true)
			}
		}
		return
	}

	field, label := m.textField(m.cursor)
	if field == nil {
		return
	}
	if next, ok := editText(*field, msg); ok {
		if err := errors.ValidateText(label, next); err != nil {
			m.setStatus(errors.UserMessage(err), true)
			return
		}
		*field = next
	}
}

// dependencyRows is what the dependency list currently shows: search
// results while a query is typed, the active category otherwise.
func (m FormModel) dependencyRows() []catalog.Dependency {
	if strings.TrimSpace(m.query) != "" {
		var out []catalog.Dependency
		for _, r := range catalog.SearchContext(m.ctx, m.Config.Framework, m.query) {
			out = append(out, r.Dependency)
		}
		return out
	}
	cats := catalog.Categories(m.Config.Framework)
	if len(cats) == 0 {
		return nil
	}
	return cats[min(m.category, len(cats)-1)].Dependencies
}

func (m *FormModel) updateDependencies(msg tea.KeyMsg) {
	rows := m.dependencyRows()
	switch msg.String() {
	case "up":
		m.moveCursor(-1, len(rows))
		return
	case "down":
		m.moveCursor(1, len(rows))
		return
	case "left", "right":
		if strings.TrimSpace(m.query) != "" {
			return
		}
		cats := catalog.Categories(m.Config.Framework)
		if len(cats) == 0 {
			return
		}
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		m.category = (m.category + delta + len(cats)) % len(cats)
		m.cursor = 0
		return
	case "enter":
		if len(rows) == 0 {
			return
		}
		id := rows[min(m.cursor, len(rows)-1)].ID
		if m.Config.Dependencies.Has(id) {
			m.Config.RemoveDependency(id)
			m.setStatus("Removed "+id, false)
			return
		}
		if _, err := m.Config.AddDependency(id); err != nil {
			m.setStatus(errors.UserMessage(err), true)
			return
		}
		m.setStatus("Added "+id, false)
		return
	case "ctrl+d":
		ids := m.Config.Dependencies.IDs()
		if len(ids) > 0 {
			last := ids[len(ids)-1]
			m.Config.RemoveDependency(last)
			m.setStatus("Removed "+last, false)
		}
		return
	}

	if next, ok := editText(m.query, msg); ok {
		m.query = next
		m.cursor = 0
	}
}

func (m *FormModel) updateAdvanced(msg tea.KeyMsg) {
	features := project.AvailableFeatures(m.Config.Framework)
	switch msg.String() {
	case "up":
		m.moveCursor(-1, len(features))
	case "down":
		m.moveCursor(1, len(features))
	case "enter", " ", "space":
		if len(features) == 0 {
			return
		}
		f := features[min(m.cursor, len(features)-1)]
		if err := m.Config.SetFeature(f.ID, !m.Config.HasFeature(f.ID)); err != nil {
			m.setStatus(errors.UserMessage(err), true)
		}
	}
}

// editText applies a typing key to s. It reports false for keys that do
// not edit text.
func editText(s string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		next := s + string(msg.Runes)
		if utf8.RuneCountInString(next) > maxFieldLength {
			return s, false
		}
		return next, true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyBackspace:
		if s == "" {
			return s, false
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size], true
	case tea.KeyCtrlU:
		return "", true
	}
	return s, false
}

// cycle returns the element delta steps away from cur, wrapping around.
func cycle(items []string, cur string, delta int) string {
	if len(items) == 0 {
		return cur
	}
	i := slices.Index(items, cur)
	if i < 0 {
		return items[0]
	}
	return items[(i+delta+len(items))%len(items)]
}

// =============================================================================
// Rendering
// =============================================================================

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("PHP Framework Project Generator"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("Bootstrap your PHP application by selecting framework and configuration options"))
	b.WriteString("\n\n")

	formWidth, previewWidth := m.width*3/5-4, m.width*2/5-4
	form := paneStyle.Width(max(formWidth, 40)).Render(m.viewForm())
	pane := paneStyle.Width(max(previewWidth, 30)).Render(m.viewPreview())
	if m.width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, " ", pane))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, form, pane))
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleIconError.Render(iconError) + " " + errorStyle.Render(m.status))
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("tab switch  ↑/↓ move  ←/→ change  ⏎ select  ctrl+g generate  ctrl+r reset  ctrl+p files/structure  ctrl+f preview framework  esc quit"))
	return b.String()
}

func (m FormModel) viewForm() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Project"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("Configure your PHP framework project options"))
	b.WriteString("\n\n")

	var tabs []string
	for i, name := range formTabNames {
		if formTab(i) == m.tab {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n\n")

	switch m.tab {
	case formTabProject:
		b.WriteString(m.viewProject())
	case formTabDependencies:
		b.WriteString(m.viewDependencies())
	case formTabAdvanced:
		b.WriteString(m.viewAdvanced())
	}
	return b.String()
}

func (m FormModel) line(i int, s string) string {
	if i == m.cursor {
		return cursorStyle.Render("▸ ") + s + "\n"
	}
	return "  " + s + "\n"
}

func (m FormModel) viewProject() string {
	var b strings.Builder
	for i, label := range projectFieldLabels {
		var value string
		switch i {
		case fieldFramework:
			value = m.Config.Framework
			if f, ok := catalog.LookupFramework(value); ok {
				value = f.Name
			}
			value = "‹ " + value + " ›"
		case fieldPHPVersion:
			value = "‹ PHP " + m.Config.PHPVersion + " ›"
		default:
			field, _ := m.textField(i)
			value = *field
			if i == m.cursor {
				value += "█"
			}
		}
		b.WriteString(m.line(i, labelStyle.Render(label)+" "+StyleValue.Render(value)))
	}
	return b.String()
}

func (m FormModel) viewDependencies() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Search") + " " + StyleValue.Render(m.query+"█"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("Search dependencies..."))
	b.WriteString("\n\n")

	if ids := m.Config.Dependencies.IDs(); len(ids) > 0 {
		b.WriteString("Selected Dependencies:\n")
		var badges []string
		for _, id := range ids {
			badges = append(badges, badgeStyle.Render(id))
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n\n")
	}

	searching := strings.TrimSpace(m.query) != ""
	cats := catalog.Categories(m.Config.Framework)
	switch {
	case searching:
		b.WriteString("Search Results:\n")
	case len(cats) == 0:
		b.WriteString(StyleDim.Render("No dependencies available for this framework"))
		return b.String()
	default:
		active := min(m.category, len(cats)-1)
		var tabs []string
		for i, c := range cats {
			if i == active {
				tabs = append(tabs, tabActiveStyle.Render(c.Name))
			} else {
				tabs = append(tabs, tabInactiveStyle.Render(c.Name))
			}
		}
		b.WriteString(strings.Join(tabs, "  "))
		b.WriteString("\n")
	}

	rows := m.dependencyRows()
	if len(rows) == 0 {
		b.WriteString(StyleDim.Render("No dependencies found"))
		return b.String()
	}
	for i, d := range rows {
		mark := StyleDim.Render("+")
		if m.Config.Dependencies.Has(d.ID) {
			mark = StyleSuccess.Render(iconSuccess)
		}
		b.WriteString(m.line(i, mark+" "+StyleValue.Render(d.Name)+" "+StyleDim.Render(d.Description)))
	}
	return b.String()
}

func (m FormModel) viewAdvanced() string {
	var b strings.Builder
	for i, f := range project.AvailableFeatures(m.Config.Framework) {
		box := "[ ]"
		if m.Config.HasFeature(f.ID) {
			box = StyleSuccess.Render("[x]")
		}
		b.WriteString(m.line(i, box+" "+f.Label))
	}
	return b.String()
}

func (m FormModel) viewPreview() string {
	var b strings.Builder

	name := m.previewFramework
	if f, ok := catalog.LookupFramework(name); ok {
		name = f.Name
	}
	b.WriteString(StyleTitle.Render("Project Preview") + StyleDim.Render(" · "+name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("Preview your project structure and files"))
	b.WriteString("\n\n")

	structure, files := tabActiveStyle.Render("Structure"), tabInactiveStyle.Render("Files")
	if m.previewTab == preview.TabFiles {
		structure, files = tabInactiveStyle.Render("Structure"), tabActiveStyle.Render("Files")
	}
	b.WriteString(structure + "   " + files)
	b.WriteString("\n\n")

	p, err := preview.For(m.previewFramework)
	if err != nil {
		b.WriteString(errorStyle.Render(errors.UserMessage(err)))
		return b.String()
	}

	budget := max(m.height-12, 8)
	if m.previewTab == preview.TabFiles {
		b.WriteString(StyleHighlight.Render("composer.json"))
		b.WriteString("\n")
		b.WriteString(clipLines(p.ComposerJSON, budget/2))
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render(p.MainFilePath))
		b.WriteString("\n")
		b.WriteString(clipLines(p.MainFile, budget/2))
	} else {
		b.WriteString(clipLines(p.Structure, budget))
	}
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("ctrl+p: " + preview.ToggleLabel(m.previewTab)))
	return b.String()
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n") + "\n" + StyleDim.Render(fmt.Sprintf("… %d more lines", len(lines)-n))
}
