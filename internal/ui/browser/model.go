// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/thagstyle/internal/export"
	"github.com/jeranaias/thagstyle/internal/index"
	"github.com/jeranaias/thagstyle/internal/integrations"
	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CatalogChangedMsg is delivered when the watched catalog applied a change.
type CatalogChangedMsg struct {
	Change index.Change
}

// ExportDoneMsg reports the result of an export-all.
type ExportDoneMsg struct {
	Theme string
	Paths []string
	Err   error
}

// CopiedMsg reports the result of a clipboard copy.
type CopiedMsg struct {
	Hex string
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a browser.
type Options struct {
	// Attrs are the current terminal attributes. Its theme styles the
	// browser chrome; its support and luma drive previews and validation.
	Attrs *styling.TermAttributes
	// Selector supplies the theme names and themes.
	Selector *styling.Selector
	// Changes, when set, triggers a reload on every catalog change.
	Changes <-chan index.Change
	// OutputDir receives exported files. Defaults to ".".
	OutputDir string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

type themeItem struct {
	name string
	desc string
}

func (i themeItem) Title() string       { return i.name }
func (i themeItem) Description() string { return i.desc }
func (i themeItem) FilterValue() string { return i.name }

// preview is a loaded theme: full is as declared, shown is converted to the
// terminal's color support.
type preview struct {
	full  *styling.Theme
	shown *styling.Theme
	err   error
	valid error
}

// Model is the bubbletea model for the browser.
type Model struct {
	list      list.Model
	keys      KeyMap
	sel       *styling.Selector
	attrs     *styling.TermAttributes
	styles    integrations.Styles
	changes   <-chan index.Change
	outputDir string
	clip      func(string) error

	cache map[string]*preview

	status    string
	statusErr bool
	chosen    string
	quitting  bool

	width, height int
}

// New builds a browser with every theme the selector knows.
func New(opts Options) Model {
	attrs := opts.Attrs
	if attrs == nil {
		attrs = styling.GetOrInit()
	}
	sel := opts.Selector
	if sel == nil {
		sel = styling.NewSelector(styling.Preferences{})
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles = integrations.ListItemStyles(attrs.Theme)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Themes"
	l.Styles = integrations.ListStyles(attrs.Theme)
	l.DisableQuitKeybindings()
	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = keys.ShortHelp

	m := Model{
		list:      l,
		keys:      keys,
		sel:       sel,
		attrs:     attrs,
		styles:    integrations.ThemeStyles(attrs.Theme),
		changes:   opts.Changes,
		outputDir: dir,
		clip:      clip,
		cache:     make(map[string]*preview),
	}
	m.list.SetItems(m.items())
	if attrs.Theme != nil {
		m.selectName(attrs.Theme.Name)
	}
	return m
}

// Choice returns the theme selected with enter, or "" when the user quit.
func (m Model) Choice() string {
	return m.chosen
}

// Selected returns the highlighted theme name.
func (m Model) Selected() string {
	if it, ok := m.list.SelectedItem().(themeItem); ok {
		return it.name
	}
	return ""
}

// Status returns the last status line message.
func (m Model) Status() string {
	return m.status
}

// Init starts listening for catalog changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan index.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return CatalogChangedMsg{Change: change}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CatalogChangedMsg:
		return m.handleCatalogChange(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("export %s failed: %v", msg.Theme, msg.Err))
		} else {
			m.setStatus(fmt.Sprintf("exported %s: %d files to %s", msg.Theme, len(msg.Paths), m.outputDir))
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("clipboard: %v", msg.Err))
		} else {
			m.setStatus("copied " + msg.Hex)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(m.listWidth(), max(msg.Height-1, 1))
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// While typing a filter every key belongs to the list
	if m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if name := m.Selected(); name != "" {
				m.chosen = name
				m.quitting = true
				logging.Verbosef("BROWSER | selected theme=%s", name)
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Export):
			return m, m.exportCmd()

		case key.Matches(msg, m.keys.Copy):
			return m, m.copyCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleCatalogChange(msg CatalogChangedMsg) (tea.Model, tea.Cmd) {
	current := m.Selected()
	m.cache = make(map[string]*preview)
	cmd := m.list.SetItems(m.items())
	m.selectName(current)
	if msg.Change.Name != "" {
		m.setStatus(fmt.Sprintf("%s %s", msg.Change.Name, msg.Change.Op))
	}
	logging.Debugf("BROWSER | reloaded after %s %s", msg.Change.Op, msg.Change.Path)
	return m, tea.Batch(cmd, waitForChange(m.changes))
}

func (m Model) exportCmd() tea.Cmd {
	name := m.Selected()
	p := m.preview(name)
	if p == nil || p.err != nil {
		return nil
	}
	theme, dir := p.full, m.outputDir
	return func() tea.Msg {
		paths, err := export.ExportAll(theme, dir, "")
		return ExportDoneMsg{Theme: theme.Name, Paths: paths, Err: err}
	}
}

func (m Model) copyCmd() tea.Cmd {
	p := m.preview(m.Selected())
	if p == nil || p.err != nil {
		return nil
	}
	hex := p.full.BgHex()
	if hex == "" {
		return func() tea.Msg {
			return CopiedMsg{Err: fmt.Errorf("%s declares no background", p.full.Name)}
		}
	}
	clip := m.clip
	return func() tea.Msg {
		return CopiedMsg{Hex: hex, Err: clip(hex)}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) items() []list.Item {
	names := m.sel.Names()
	items := make([]list.Item, 0, len(names))
	for _, n := range names {
		desc := "unreadable"
		if p := m.preview(n); p.err == nil {
			desc = fmt.Sprintf("%s, %s", p.full.TermBgLuma, p.full.MinColorSupport)
		}
		items = append(items, themeItem{name: n, desc: desc})
	}
	return items
}

// preview loads name once and caches the result.
func (m *Model) preview(name string) *preview {
	if name == "" {
		return nil
	}
	if p, ok := m.cache[name]; ok {
		return p
	}
	p := &preview{}
	p.full, p.err = m.sel.Load(name)
	if p.err == nil {
		p.shown = p.full.WithColorSupport(m.attrs.ColorSupport)
		p.valid = p.full.Validate(m.attrs.ColorSupport, m.attrs.TermBgLuma)
	}
	m.cache[name] = p
	return p
}

func (m *Model) selectName(name string) {
	for i, it := range m.list.Items() {
		if ti, ok := it.(themeItem); ok && ti.name == name {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
	logging.Warnf("BROWSER | %s", s)
}

func (m Model) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	return w
}
