package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/board/internal/model"
)

// snapshotMsg carries a board snapshot into the Bubble Tea loop.
type snapshotMsg []model.Project

// mailbox is a one-slot, latest-wins hand-off from the board's listener
// goroutine to the program. put never blocks, so the board's lock is never
// held while waiting on the UI.
type mailbox struct {
	ch   chan []model.Project
	done chan struct{}
	once sync.Once
}

func newMailbox() *mailbox {
	return &mailbox{
		ch:   make(chan []model.Project, 1),
		done: make(chan struct{}),
	}
}

func (m *mailbox) put(items []model.Project) {
	for {
		select {
		case m.ch <- items:
			return
		default:
		}
		// drop the unread, older snapshot
		select {
		case <-m.ch:
		default:
		}
	}
}

func (m *mailbox) close() { m.once.Do(func() { close(m.done) }) }

// wait blocks until a snapshot arrives. Re-issue it after every snapshotMsg.
func (m *mailbox) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case items := <-m.ch:
			return snapshotMsg(items)
		case <-m.done:
			return nil
		}
	}
}
