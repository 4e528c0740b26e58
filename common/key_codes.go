package common

import (
	"fmt"
	"sort"
	"strings"
)

// KeyCode is a virtual key code delivered by the window's event source.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode uint32

const (
	KeyW         KeyCode = 87  // W key (ASCII)
	KeyA         KeyCode = 65  // A key (ASCII)
	KeyS         KeyCode = 83  // S key (ASCII)
	KeyD         KeyCode = 68  // D key (ASCII)
	KeyQ         KeyCode = 81  // Q key (ASCII)
	KeyE         KeyCode = 69  // E key (ASCII)
	KeyC         KeyCode = 67  // C key (ASCII)
	KeyF         KeyCode = 70  // F key (ASCII)
	KeyR         KeyCode = 82  // R key (ASCII)
	KeyX         KeyCode = 88  // X key (ASCII)
	KeyZ         KeyCode = 90  // Z key (ASCII)
	KeySpace     KeyCode = 32  // Spacebar (ASCII)
	KeyEsc       KeyCode = 256 // Escape key (GLFW)
	KeyTab       KeyCode = 258 // Tab key (GLFW)
	KeyBackspace KeyCode = 259 // Backspace key (GLFW)

	KeyRight KeyCode = 262 // Right arrow (GLFW)
	KeyLeft  KeyCode = 263 // Left arrow (GLFW)
	KeyDown  KeyCode = 264 // Down arrow (GLFW)
	KeyUp    KeyCode = 265 // Up arrow (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    KeyCode = 340 // Left Shift (GLFW)
	KeyLeftControl  KeyCode = 341 // Left Control (GLFW)
	KeyRightShift   KeyCode = 344 // Right Shift (GLFW)
	KeyRightControl KeyCode = 345 // Right Control (GLFW)
)

// keyNames maps the names accepted in configuration files to key codes.
var keyNames = map[string]KeyCode{
	"W": KeyW, "A": KeyA, "S": KeyS, "D": KeyD,
	"Q": KeyQ, "E": KeyE, "C": KeyC, "F": KeyF,
	"R": KeyR, "X": KeyX, "Z": KeyZ,
	"Space":        KeySpace,
	"Tab":          KeyTab,
	"Backspace":    KeyBackspace,
	"Right":        KeyRight,
	"Left":         KeyLeft,
	"Down":         KeyDown,
	"Up":           KeyUp,
	"LeftShift":    KeyLeftShift,
	"LeftControl":  KeyLeftControl,
	"RightShift":   KeyRightShift,
	"RightControl": KeyRightControl,
}

// KeyByName resolves a configuration key name (case-insensitive, e.g. "w", "LeftShift") to its code.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - KeyCode: the matching key code
//   - error: error if the name is not known
func KeyByName(name string) (KeyCode, error) {
	for n, code := range keyNames {
		if strings.EqualFold(n, name) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown key name %q (known: %s)", name, strings.Join(KeyNames(), ", "))
}

// KeyNames returns every accepted key name in sorted order.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for n := range keyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
