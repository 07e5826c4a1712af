package editor

import "strings"

// ShortcutFor maps a key press to the editor action it triggers.  Presses
// while focus is in a text input never trigger anything.
//
//	Delete, Backspace   delete selection
//	mod+A               select all
//	mod+D               duplicate selection
//	mod+0               reset view
//	mod+Z               undo
//	mod+shift+Z         redo
//	mod+C, mod+V        copy, paste
//	Escape              clear selection
//
// mod is Ctrl or Cmd (Meta).
func ShortcutFor(k KeyDownEvent) (Event, bool) {
	if k.InTextInput {
		return nil, false
	}
	mod := k.Ctrl || k.Meta
	key := strings.ToLower(k.Key)

	if !mod {
		switch key {
		case "delete", "backspace":
			return DeleteSelectionEvent{}, true
		case "escape":
			return ClearSelectionEvent{}, true
		}
		return nil, false
	}

	switch key {
	case "a":
		return SelectAllEvent{}, true
	case "d":
		return DuplicateSelectionEvent{}, true
	case "0":
		return ResetViewEvent{}, true
	case "z":
		if k.Shift {
			return RedoEvent{}, true
		}
		return UndoEvent{}, true
	case "c":
		return CopyEvent{}, true
	case "v":
		return PasteEvent{}, true
	}
	return nil, false
}
