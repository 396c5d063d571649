// Package dialog хранит транзитное состояние диалога каждого пользователя.
package dialog

// Kind — режим диалога, определяющий трактовку следующего события.
type Kind int

const (
	Idle Kind = iota
	SettingPattern
	Unlocking
	MainMenu
	CreatingNote
	EditingNote
	ChangingPattern
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case SettingPattern:
		return "setting_pattern"
	case Unlocking:
		return "unlocking"
	case MainMenu:
		return "main_menu"
	case CreatingNote:
		return "creating_note"
	case EditingNote:
		return "editing_note"
	case ChangingPattern:
		return "changing_pattern"
	default:
		return "unknown"
	}
}

// State несет режим диалога и его типизированные данные:
// PendingDigits — набираемый код при настройке или смене блокировки,
// NoteID — редактируемая заметка.
type State struct {
	Kind          Kind
	PendingDigits string
	NoteID        uint
}
