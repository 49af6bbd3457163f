// Package search provides the live search view for the TUI.
// Keystrokes flow into the search pipeline as they happen; result
// batches flow back asynchronously, one per settled query.
package search

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
)

// queryBuffer is the capacity of the query channel. The pipeline
// consumes promptly, so this only absorbs momentary bursts.
const queryBuffer = 16

// View represents the live search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	live driving.LiveSearchService

	baseCtx context.Context
	cancel  context.CancelFunc
	queries chan string
	events  <-chan domain.SearchEvent

	lastQuery string
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new live search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, live driving.LiveSearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		live:      live,
		baseCtx:   context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.baseCtx = ctx
	return v
}

// Init starts the live pipeline and begins listening for result batches.
func (v *View) Init() tea.Cmd {
	if v.live == nil {
		return tea.Batch(v.input.Init(), func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoLiveSearchService}
		})
	}

	ctx, cancel := context.WithCancel(v.baseCtx)
	v.cancel = cancel
	v.queries = make(chan string, queryBuffer)
	v.events = v.live.Run(ctx, v.queries)

	return tea.Batch(v.input.Init(), v.waitForEvent())
}

// waitForEvent returns a command that blocks until the pipeline
// delivers the next result batch.
func (v *View) waitForEvent() tea.Cmd {
	events := v.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return messages.PipelineClosed{}
		}
		return messages.SearchEventReceived{Event: event}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchEventReceived:
		v.handleSearchEvent(msg.Event)
		// Re-arm the listener for the next batch
		return v, v.waitForEvent()

	case messages.PipelineClosed:
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input. Navigation keys drive the
// result list; everything else edits the query and feeds the pipeline.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.Clear) {
		v.input.SetValue("")
		v.publishQuery()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.publishQuery()
	return v, cmd
}

// publishQuery feeds the current input value into the pipeline.
func (v *View) publishQuery() {
	if v.queries == nil {
		return
	}

	query := v.input.Value()
	if query == v.lastQuery {
		return
	}
	v.lastQuery = query

	select {
	case v.queries <- query:
	default:
		// A full buffer means a newer keystroke is right behind this
		// one; dropping is safe because it will carry the full text.
	}
}

// handleSearchEvent processes one result batch from the pipeline.
func (v *View) handleSearchEvent(event domain.SearchEvent) {
	if event.Err != nil {
		v.err = event.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(event.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(event.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(event.Results))
}

// Close shuts down the live pipeline.
func (v *View) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.queries != nil {
		close(v.queries)
		v.queries = nil
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	// The loading flag flips while a lookup is in flight
	if v.live != nil && v.live.Loading() {
		v.statusbar.SetState(status.StateSearching)
	}

	sections := make([]string, 0, 8)

	// Header
	header := v.styles.Title.Render("Fynda")
	sections = append(sections, header, "")

	// Query input
	sections = append(sections, v.input.View(), "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Results list
	sections = append(sections, v.list.View())

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the view back to an empty query.
func (v *View) Reset() {
	v.input.Focus()
	v.input.SetValue("")
	v.lastQuery = ""
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}
