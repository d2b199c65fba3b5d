package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/pager"
)

type pageMsg struct{ page *pager.Page }

type errMsg struct{ err error }

// BrowseModel is the bubbletea model for paging through diagrams. Pages come
// from a pager.Runner session, so the search only advances when the user
// asks for a page that has not been seen yet. Earlier pages are kept for
// going back.
type BrowseModel struct {
	ctx    context.Context
	runner *pager.Runner
	req    *io.Request // sent with the first page only
	uid    string

	Pages   []*pager.Page
	Current int // index into Pages
	Cursor  int // selected row on the current page
	Loading bool
	Err     error
}

// NewBrowseModel creates a model that pages through req using runner.
func NewBrowseModel(ctx context.Context, runner *pager.Runner, req io.Request) BrowseModel {
	return BrowseModel{
		ctx:     ctx,
		runner:  runner,
		req:     &req,
		Loading: true,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return m.fetch()
}

func (m BrowseModel) fetch() tea.Cmd {
	ctx, runner, uid, req := m.ctx, m.runner, m.uid, m.req
	return func() tea.Msg {
		page, err := runner.Page(ctx, uid, req)
		if err != nil {
			return errMsg{err}
		}
		return pageMsg{page}
	}
}

// page returns the page on screen, or nil before the first one arrives.
func (m BrowseModel) page() *pager.Page {
	if len(m.Pages) == 0 {
		return nil
	}
	return m.Pages[m.Current]
}

// Seen returns the number of diagrams pulled from the search so far.
func (m BrowseModel) Seen() int {
	if len(m.Pages) == 0 {
		return 0
	}
	last := m.Pages[len(m.Pages)-1]
	return last.Offset + len(last.Diagrams)
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		m.Loading = false
		m.uid = msg.page.SessionID
		m.req = nil
		m.Pages = append(m.Pages, msg.page)
		m.Current = len(m.Pages) - 1
		m.Cursor = 0
	case errMsg:
		m.Loading = false
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	p := m.page()
	if m.Loading || p == nil {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(p.Diagrams)-1 {
			m.Cursor++
		}
	case "right", "n", " ":
		if m.Current < len(m.Pages)-1 {
			m.Current++
			m.Cursor = 0
			return m, nil
		}
		if p.More {
			m.Loading = true
			return m, m.fetch()
		}
	case "left", "p":
		if m.Current > 0 {
			m.Current--
			m.Cursor = 0
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Diagrams"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  ←/→ page  q quit"))
	b.WriteString("\n\n")

	p := m.page()
	switch {
	case m.Err != nil:
		b.WriteString(statusFail.style.Render(statusFail.icon) + " " + errors.UserMessage(m.Err))
		b.WriteString("\n")
		return b.String()
	case p == nil:
		b.WriteString(StyleDim.Render("Searching..."))
		b.WriteString("\n")
		return b.String()
	case len(p.Diagrams) == 0:
		b.WriteString(StyleDim.Render("No connected diagrams"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(diagramTable(p.Offset, p.Diagrams, m.Cursor).Render())
	b.WriteString("\n\n")

	status := fmt.Sprintf("  page %d  ·  %d seen", p.Index+1, m.Seen())
	switch {
	case m.Loading:
		status += "  ·  searching..."
	case m.Current == len(m.Pages)-1 && !p.More:
		status += "  ·  end"
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")

	return b.String()
}
