package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind перечисляет закрытую грамматику кнопок.
// Всё, что не разбирается, становится ActionUnknown.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionDigit
	ActionCommitPattern
	ActionNewNote
	ActionListNotes
	ActionOpenSettings
	ActionLockDevice
	ActionUnlockCompleted
	ActionBackToMenu
	ActionViewNote
	ActionEditNote
	ActionDeleteNote
	ActionConfirmDelete
	ActionChangePatternDigit
	ActionCommitNewPattern
)

// Action — разобранное нажатие кнопки с типизированными аргументами.
type Action struct {
	Kind   ActionKind
	Digit  byte // ActionDigit, ActionChangePatternDigit
	NoteID uint // ActionViewNote, ActionEditNote, ActionDeleteNote, ActionConfirmDelete
}

const (
	tagDigit              = "digit"
	tagCommitPattern      = "commitPattern"
	tagNewNote            = "newNote"
	tagListNotes          = "listNotes"
	tagOpenSettings       = "openSettings"
	tagLockDevice         = "lockDevice"
	tagUnlockCompleted    = "unlockCompleted"
	tagBackToMenu         = "backToMenu"
	tagViewNote           = "viewNote"
	tagEditNote           = "editNote"
	tagDeleteNote         = "deleteNote"
	tagConfirmDelete      = "confirmDelete"
	tagChangePatternDigit = "changePatternDigit"
	tagCommitNewPattern   = "commitNewPattern"
)

// ParseAction разбирает callback data кнопки в Action.
func ParseAction(data string) Action {
	name, arg, hasArg := strings.Cut(data, ":")

	switch name {
	case tagCommitPattern, tagNewNote, tagListNotes, tagOpenSettings,
		tagLockDevice, tagUnlockCompleted, tagBackToMenu, tagCommitNewPattern:
		if hasArg {
			return Action{Kind: ActionUnknown}
		}
		switch name {
		case tagCommitPattern:
			return Action{Kind: ActionCommitPattern}
		case tagNewNote:
			return Action{Kind: ActionNewNote}
		case tagListNotes:
			return Action{Kind: ActionListNotes}
		case tagOpenSettings:
			return Action{Kind: ActionOpenSettings}
		case tagLockDevice:
			return Action{Kind: ActionLockDevice}
		case tagUnlockCompleted:
			return Action{Kind: ActionUnlockCompleted}
		case tagBackToMenu:
			return Action{Kind: ActionBackToMenu}
		default:
			return Action{Kind: ActionCommitNewPattern}
		}

	case tagDigit, tagChangePatternDigit:
		if len(arg) != 1 || arg[0] < '0' || arg[0] > '9' {
			return Action{Kind: ActionUnknown}
		}
		kind := ActionDigit
		if name == tagChangePatternDigit {
			kind = ActionChangePatternDigit
		}
		return Action{Kind: kind, Digit: arg[0]}

	case tagViewNote, tagEditNote, tagDeleteNote, tagConfirmDelete:
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil || id == 0 {
			return Action{Kind: ActionUnknown}
		}
		switch name {
		case tagViewNote:
			return Action{Kind: ActionViewNote, NoteID: uint(id)}
		case tagEditNote:
			return Action{Kind: ActionEditNote, NoteID: uint(id)}
		case tagDeleteNote:
			return Action{Kind: ActionDeleteNote, NoteID: uint(id)}
		default:
			return Action{Kind: ActionConfirmDelete, NoteID: uint(id)}
		}
	}

	return Action{Kind: ActionUnknown}
}

func digitCallback(tag string, d byte) string {
	return tag + ":" + string(d)
}

func noteCallback(tag string, id uint) string {
	return fmt.Sprintf("%s:%d", tag, id)
}
