package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/showfinder/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsLoaded MsgKind = iota
	MsgDetailsLoaded
	MsgProgressUpdate
)

// resultsLoadedMsg is the constructor for [MsgResultsLoaded]
func resultsLoadedMsg(res tasks.Result) Msg {
	return Msg{kind: MsgResultsLoaded, data: res}
}

// detailsLoadedMsg is the constructor for [MsgDetailsLoaded]
func detailsLoadedMsg(res tasks.Result) Msg {
	return Msg{kind: MsgDetailsLoaded, data: res}
}

type progressData struct {
	update tasks.ProgressUpdate
	source <-chan tasks.ProgressUpdate
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]. It carries the channel so the
// next read can be scheduled.
func progressUpdateMsg(update tasks.ProgressUpdate, source <-chan tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: progressData{update: update, source: source}}
}
