// Package stream provides channel-based operators for event pipelines.
//
// The operators compose into the live search pipeline: Debounce collapses
// keystroke bursts, DistinctUntilChanged drops repeated queries, Tap marks
// the loading flag, and SwitchMap dispatches lookups with latest-wins
// cancellation. Each operator returns a new output channel and owns a single
// goroutine; output channels close once the input closes and pending work has
// drained, or once the context is cancelled.
package stream
