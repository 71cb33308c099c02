package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abertrand/fable/internal/playback"
	"github.com/abertrand/fable/internal/session"
)

// Model is the bubbletea model for fable.
type Model struct {
	ctrl *playback.Controller
	sub  *playback.Subscription

	state  session.State
	search textinput.Model
	cursor int // index into the visible list (books or chapters)

	width  int
	height int
}

// New creates the app model around a running controller.
func New(ctrl *playback.Controller) Model {
	search := textinput.New()
	search.Placeholder = "Search title or author"
	search.CharLimit = 64

	return Model{
		ctrl:   ctrl,
		sub:    ctrl.Subscribe(),
		state:  ctrl.State(),
		search: search,
	}
}

// Init starts the catalog load and the event/tick loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCatalogCmd(m.ctrl),
		waitForState(m.sub),
		tickCmd(),
	)
}

func loadCatalogCmd(ctrl *playback.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ctrl.LoadCatalog(ctx)
		return nil
	}
}

func waitForState(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case state := <-sub.StateChanged:
			return StateMsg(state)
		case <-sub.Done:
			return SubscriptionClosedMsg{}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
