package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]core.Action{
		"left":  core.ActionLeft,
		"a":     core.ActionLeft,
		"h":     core.ActionLeft,
		"right": core.ActionRight,
		"d":     core.ActionRight,
		"l":     core.ActionRight,
		"up":    core.ActionRotate,
		"w":     core.ActionRotate,
		"x":     core.ActionRotate,
		"z":     core.ActionRotateBack,
		"down":  core.ActionSoftDrop,
		"s":     core.ActionSoftDrop,
		"j":     core.ActionSoftDrop,
		" ":     core.ActionHardDrop,
		"space": core.ActionHardDrop,
		"enter": core.ActionConfirm,
		"b":     core.ActionBack,
		"p":     core.ActionPause,
		"esc":   core.ActionPause,
		"r":     core.ActionRestart,
	}}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}
	if a, ok := km.bindings[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
