package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sns/internal/client"
	postPort "sns/internal/ports/post"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const requestTimeout = 5 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	authorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	postStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = metaStyle
)

type timelineMsg []postPort.PostDTO

type postedMsg string

type likedMsg struct {
	id    string
	liked int64
}

type statusMsg struct {
	text string
	err  bool
}

type clearStatusMsg struct{}

type model struct {
	api      *client.Client
	username string
	limit    int

	viewport viewport.Model
	textbox  textarea.Model
	posts    []postPort.PostDTO
	selected int
	status   statusMsg
	width    int
}

func newModel(api *client.Client, username string, limit int) model {
	m := model{api: api, username: username, limit: limit, width: 80}

	m.viewport = viewport.New(80, 16)

	m.textbox = textarea.New()
	m.textbox.Focus()
	m.textbox.Placeholder = "What's happening?"
	m.textbox.Prompt = "┃ "
	m.textbox.CharLimit = 1000
	m.textbox.ShowLineNumbers = false
	m.textbox.SetHeight(4)
	m.textbox.SetWidth(80)
	m.textbox.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadTimeline())
}

func (m model) loadTimeline() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		posts, err := m.api.Timeline(ctx, m.limit)
		if err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		return timelineMsg(posts)
	}
}

func (m model) publish(content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id, err := m.api.CreatePost(ctx, content, nil)
		if err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		return postedMsg(id)
	}
}

func (m model) like(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		liked, err := m.api.Like(ctx, id)
		if err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		return likedMsg{id: id, liked: liked}
	}
}

func clearAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-12, 4)
		m.textbox.SetWidth(msg.Width)
		m.render()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			content := strings.TrimSpace(m.textbox.Value())
			if content == "" {
				m.status = statusMsg{text: "Nothing to post", err: true}
				return m, clearAfter(3 * time.Second)
			}
			return m, m.publish(content)
		case "ctrl+r":
			return m, m.loadTimeline()
		case "ctrl+l":
			if len(m.posts) > 0 {
				return m, m.like(m.posts[m.selected].ID)
			}
			return m, nil
		case "ctrl+n":
			if m.selected < len(m.posts)-1 {
				m.selected++
				m.render()
			}
			return m, nil
		case "ctrl+p":
			if m.selected > 0 {
				m.selected--
				m.render()
			}
			return m, nil
		}

	case timelineMsg:
		m.posts = msg
		if m.selected >= len(m.posts) {
			m.selected = max(len(m.posts)-1, 0)
		}
		m.render()
		m.viewport.GotoTop()

	case postedMsg:
		m.textbox.Reset()
		m.status = statusMsg{text: "Posted!"}
		cmds = append(cmds, m.loadTimeline(), clearAfter(3*time.Second))

	case likedMsg:
		for i := range m.posts {
			if m.posts[i].ID == msg.id {
				m.posts[i].Liked = msg.liked
			}
		}
		m.render()

	case statusMsg:
		m.status = msg
		cmds = append(cmds, clearAfter(5*time.Second))

	case clearStatusMsg:
		m.status = statusMsg{}
	}

	var cmd tea.Cmd
	m.textbox, cmd = m.textbox.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) render() {
	if len(m.posts) == 0 {
		m.viewport.SetContent(metaStyle.Render("No posts yet."))
		return
	}

	width := max(m.width-4, 20)
	blocks := make([]string, 0, len(m.posts))
	for i, p := range m.posts {
		header := authorStyle.Render(p.Account) + " " +
			metaStyle.Render(fmt.Sprintf("%s · ♥ %d", time.Unix(p.Time, 0).Format("2006-01-02 15:04"), p.Liked))
		if p.Related != nil {
			header += metaStyle.Render(" · reply to " + shortID(*p.Related))
		}
		style := postStyle.Width(width)
		if i == m.selected {
			style = style.BorderForeground(lipgloss.Color("63"))
		}
		blocks = append(blocks, style.Render(header+"\n"+p.Content))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Timeline") + "\n")
	b.WriteString(m.viewport.View() + "\n\n")
	b.WriteString(fmt.Sprintf("Post as %s:\n", m.username))
	b.WriteString(m.textbox.View() + "\n")

	if m.status.text != "" {
		style := statusStyle
		if m.status.err {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status.text) + "\n")
	}
	b.WriteString(helpStyle.Render("ctrl+s post · ctrl+r refresh · ctrl+n/ctrl+p select · ctrl+l like · esc quit"))
	return b.String()
}
