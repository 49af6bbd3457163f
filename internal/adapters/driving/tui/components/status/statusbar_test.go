package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_States(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())

	bar.SetState(StateSearching)
	assert.Equal(t, StateSearching, bar.State())
	assert.Contains(t, bar.View(), "Searching")

	bar.SetState(StateError)
	bar.SetMessage("index unavailable")
	assert.Contains(t, bar.View(), "index unavailable")
}

func TestBar_ResultCount(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateResults)
	bar.SetResultCount(7)

	assert.Equal(t, 7, bar.ResultCount())
	assert.Contains(t, bar.View(), "7 results")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetResultCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	assert.Equal(t, 120, bar.Width())
}
