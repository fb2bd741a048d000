package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodboard/internal/models"
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
	MsgBoardLoaded MsgKind = iota
	MsgItemRemoved
	MsgFrame
)

type boardLoaded struct {
	categories []string
	items      []*models.Item
	counts     map[string]int
	err        error
}

// boardLoadedMsg is the constructor for [MsgBoardLoaded]
func boardLoadedMsg(loaded boardLoaded) Msg {
	return Msg{kind: MsgBoardLoaded, data: loaded}
}

// itemRemovedMsg is the constructor for [MsgItemRemoved]
func itemRemovedMsg(id string, err error) Msg {
	return Msg{
		kind: MsgItemRemoved,
		data: struct {
			id  string
			err error
		}{id, err},
	}
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(t time.Time) Msg {
	return Msg{kind: MsgFrame, data: t}
}
