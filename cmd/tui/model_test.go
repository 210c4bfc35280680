package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()
	// the api client is never reached by the messages used here
	return newModel(nil, "alice", 10)
}

func TestTimelineRendering(t *testing.T) {
	m := testModel(t)
	related := "0123456789abcdef"

	next, _ := m.Update(timelineMsg{
		{ID: "p2", Account: "bob", Time: 1700000001, Content: "second", Liked: 3, Related: &related},
		{ID: "p1", Account: "alice", Time: 1700000000, Content: "first"},
	})
	m = next.(model)

	view := m.View()
	for _, want := range []string{"bob", "second", "first", "♥ 3", "reply to 01234567", "Post as alice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestLikeUpdatesCount(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(timelineMsg{{ID: "p1", Account: "alice", Content: "first"}})
	next, _ = next.(model).Update(likedMsg{id: "p1", liked: 7})
	m = next.(model)

	if m.posts[0].Liked != 7 {
		t.Fatalf("liked = %d, want 7", m.posts[0].Liked)
	}
}

func TestSelectionStaysInRange(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(timelineMsg{{ID: "p1"}, {ID: "p2"}})
	m = next.(model)

	for i := 0; i < 3; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
		m = next.(model)
	}
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	next, _ = m.Update(timelineMsg{{ID: "p3"}})
	m = next.(model)
	if m.selected != 0 {
		t.Fatalf("selected = %d after shrink, want 0", m.selected)
	}
}

func TestEmptyPostIsRejected(t *testing.T) {
	m := testModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(model)

	if m.status.text != "Nothing to post" || !m.status.err {
		t.Fatalf("status = %+v", m.status)
	}
	if cmd == nil {
		t.Fatal("expected a command clearing the status")
	}
}

func TestStatusMessages(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(statusMsg{text: "401 Authentication required", err: true})
	m = next.(model)
	if !strings.Contains(m.View(), "401 Authentication required") {
		t.Fatal("error status not shown")
	}

	next, _ = m.Update(clearStatusMsg{})
	m = next.(model)
	if m.status.text != "" {
		t.Fatalf("status not cleared: %+v", m.status)
	}
}
