// Package keymap defines the USB HID boot-keyboard usage table and the
// name-to-code lookups used by the report engine.
package keymap

// KeyCode is a scan code in the HID keyboard/keypad usage page.
type KeyCode = uint8

// Modifier is a bit in the report's modifier byte. Multiple bits may be
// OR-ed together.
type Modifier = uint8

// Modifier key bitmasks
const (
	ModLeftCtrl   Modifier = 0x01
	ModLeftShift  Modifier = 0x02
	ModLeftAlt    Modifier = 0x04
	ModLeftGUI    Modifier = 0x08 // Windows/Command key
	ModRightCtrl  Modifier = 0x10
	ModRightShift Modifier = 0x20
	ModRightAlt   Modifier = 0x40
	ModRightGUI   Modifier = 0x80
)

// HID usage codes for keyboard keys (USB HID Keyboard/Keypad usage page)
const (
	// Letters A-Z
	KeyA KeyCode = 0x04
	KeyB KeyCode = 0x05
	KeyC KeyCode = 0x06
	KeyD KeyCode = 0x07
	KeyE KeyCode = 0x08
	KeyF KeyCode = 0x09
	KeyG KeyCode = 0x0A
	KeyH KeyCode = 0x0B
	KeyI KeyCode = 0x0C
	KeyJ KeyCode = 0x0D
	KeyK KeyCode = 0x0E
	KeyL KeyCode = 0x0F
	KeyM KeyCode = 0x10
	KeyN KeyCode = 0x11
	KeyO KeyCode = 0x12
	KeyP KeyCode = 0x13
	KeyQ KeyCode = 0x14
	KeyR KeyCode = 0x15
	KeyS KeyCode = 0x16
	KeyT KeyCode = 0x17
	KeyU KeyCode = 0x18
	KeyV KeyCode = 0x19
	KeyW KeyCode = 0x1A
	KeyX KeyCode = 0x1B
	KeyY KeyCode = 0x1C
	KeyZ KeyCode = 0x1D

	// Numbers 1-0 (top row)
	Key1 KeyCode = 0x1E
	Key2 KeyCode = 0x1F
	Key3 KeyCode = 0x20
	Key4 KeyCode = 0x21
	Key5 KeyCode = 0x22
	Key6 KeyCode = 0x23
	Key7 KeyCode = 0x24
	Key8 KeyCode = 0x25
	Key9 KeyCode = 0x26
	Key0 KeyCode = 0x27

	// Special keys
	KeyEnter      KeyCode = 0x28
	KeyEscape     KeyCode = 0x29
	KeyBackspace  KeyCode = 0x2A
	KeyTab        KeyCode = 0x2B
	KeySpace      KeyCode = 0x2C
	KeyMinus      KeyCode = 0x2D // - and _
	KeyEqual      KeyCode = 0x2E // = and +
	KeyLeftBrace  KeyCode = 0x2F // [ and {
	KeyRightBrace KeyCode = 0x30 // ] and }
	KeyBackslash  KeyCode = 0x31 // \ and |
	KeySemicolon  KeyCode = 0x33 // ; and :
	KeyApostrophe KeyCode = 0x34 // ' and "
	KeyGrave      KeyCode = 0x35 // ` and ~
	KeyComma      KeyCode = 0x36 // , and <
	KeyPeriod     KeyCode = 0x37 // . and >
	KeySlash      KeyCode = 0x38 // / and ?
	KeyCapsLock   KeyCode = 0x39

	// Function keys
	KeyF1  KeyCode = 0x3A
	KeyF2  KeyCode = 0x3B
	KeyF3  KeyCode = 0x3C
	KeyF4  KeyCode = 0x3D
	KeyF5  KeyCode = 0x3E
	KeyF6  KeyCode = 0x3F
	KeyF7  KeyCode = 0x40
	KeyF8  KeyCode = 0x41
	KeyF9  KeyCode = 0x42
	KeyF10 KeyCode = 0x43
	KeyF11 KeyCode = 0x44
	KeyF12 KeyCode = 0x45

	// Control keys
	KeyPrintScreen KeyCode = 0x46
	KeyScrollLock  KeyCode = 0x47
	KeyPause       KeyCode = 0x48
	KeyInsert      KeyCode = 0x49
	KeyHome        KeyCode = 0x4A
	KeyPageUp      KeyCode = 0x4B
	KeyDelete      KeyCode = 0x4C
	KeyEnd         KeyCode = 0x4D
	KeyPageDown    KeyCode = 0x4E

	// Arrow keys
	KeyRight KeyCode = 0x4F
	KeyLeft  KeyCode = 0x50
	KeyDown  KeyCode = 0x51
	KeyUp    KeyCode = 0x52

	// Numpad
	KeyNumLock    KeyCode = 0x53
	KeyKpSlash    KeyCode = 0x54 // Keypad /
	KeyKpAsterisk KeyCode = 0x55 // Keypad *
	KeyKpMinus    KeyCode = 0x56 // Keypad -
	KeyKpPlus     KeyCode = 0x57 // Keypad +
	KeyKpEnter    KeyCode = 0x58
	KeyKp1        KeyCode = 0x59
	KeyKp2        KeyCode = 0x5A
	KeyKp3        KeyCode = 0x5B
	KeyKp4        KeyCode = 0x5C
	KeyKp5        KeyCode = 0x5D
	KeyKp6        KeyCode = 0x5E
	KeyKp7        KeyCode = 0x5F
	KeyKp8        KeyCode = 0x60
	KeyKp9        KeyCode = 0x61
	KeyKp0        KeyCode = 0x62
	KeyKpDot      KeyCode = 0x63 // Keypad . and Delete
)

// keyNames maps every canonical key name to its usage code. Aliases are
// layered on top by the Table; lookups are case-insensitive and trimmed.
var keyNames = map[string]KeyCode{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,

	"enter":       KeyEnter,
	"escape":      KeyEscape,
	"backspace":   KeyBackspace,
	"tab":         KeyTab,
	"space":       KeySpace,
	"minus":       KeyMinus,
	"equal":       KeyEqual,
	"leftbrace":   KeyLeftBrace,
	"rightbrace":  KeyRightBrace,
	"backslash":   KeyBackslash,
	"semicolon":   KeySemicolon,
	"apostrophe":  KeyApostrophe,
	"grave":       KeyGrave,
	"comma":       KeyComma,
	"period":      KeyPeriod,
	"slash":       KeySlash,
	"capslock":    KeyCapsLock,
	"printscreen": KeyPrintScreen,
	"scrolllock":  KeyScrollLock,
	"pause":       KeyPause,
	"insert":      KeyInsert,
	"home":        KeyHome,
	"pageup":      KeyPageUp,
	"delete":      KeyDelete,
	"end":         KeyEnd,
	"pagedown":    KeyPageDown,

	"right": KeyRight,
	"left":  KeyLeft,
	"down":  KeyDown,
	"up":    KeyUp,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	"numlock":    KeyNumLock,
	"kpslash":    KeyKpSlash,
	"kpasterisk": KeyKpAsterisk,
	"kpminus":    KeyKpMinus,
	"kpplus":     KeyKpPlus,
	"kpenter":    KeyKpEnter,
	"kp1":        KeyKp1,
	"kp2":        KeyKp2,
	"kp3":        KeyKp3,
	"kp4":        KeyKp4,
	"kp5":        KeyKp5,
	"kp6":        KeyKp6,
	"kp7":        KeyKp7,
	"kp8":        KeyKp8,
	"kp9":        KeyKp9,
	"kp0":        KeyKp0,
	"kpdot":      KeyKpDot,
}

// keyAliases resolve to the same code as their canonical name.
var keyAliases = map[string]string{
	"return":   "enter",
	"esc":      "escape",
	"spacebar": "space",
	"del":      "delete",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"pgdown":   "pagedown",
	"ins":      "insert",

	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",

	"kpstar":     "kpasterisk",
	"kpmultiply": "kpasterisk",
	"kpdivide":   "kpslash",
	"kpperiod":   "kpdot",

	// Symbol aliases for punctuation keys
	"-":  "minus",
	"=":  "equal",
	"[":  "leftbrace",
	"]":  "rightbrace",
	"\\": "backslash",
	";":  "semicolon",
	"'":  "apostrophe",
	"`":  "grave",
	",":  "comma",
	".":  "period",
	"/":  "slash",
}

// modifierNames maps canonical modifier names to bitmask values.
var modifierNames = map[string]Modifier{
	"ctrl":       ModLeftCtrl,
	"shift":      ModLeftShift,
	"alt":        ModLeftAlt,
	"meta":       ModLeftGUI,
	"rightctrl":  ModRightCtrl,
	"rightshift": ModRightShift,
	"rightalt":   ModRightAlt,
	"rightmeta":  ModRightGUI,
}

// modifierAliases resolve to the same bit as their canonical name.
// cmd/super/win/gui all land on the left GUI bit; altgr is right alt.
var modifierAliases = map[string]string{
	"control":   "ctrl",
	"leftctrl":  "ctrl",
	"lctrl":     "ctrl",
	"leftshift": "shift",
	"lshift":    "shift",
	"leftalt":   "alt",
	"lalt":      "alt",
	"cmd":       "meta",
	"super":     "meta",
	"win":       "meta",
	"gui":       "meta",
	"leftmeta":  "meta",

	"rctrl":  "rightctrl",
	"rshift": "rightshift",
	"ralt":   "rightalt",
	"altgr":  "rightalt",
	"rcmd":   "rightmeta",
	"rgui":   "rightmeta",
}

// shiftedBase maps characters produced with Shift held to the name of the
// unshifted key that produces them.
var shiftedBase = map[rune]string{
	'A': "a", 'B': "b", 'C': "c", 'D': "d", 'E': "e", 'F': "f", 'G': "g",
	'H': "h", 'I': "i", 'J': "j", 'K': "k", 'L': "l", 'M': "m", 'N': "n",
	'O': "o", 'P': "p", 'Q': "q", 'R': "r", 'S': "s", 'T': "t", 'U': "u",
	'V': "v", 'W': "w", 'X': "x", 'Y': "y", 'Z': "z",

	// Shifted number row
	'!': "1", '@': "2", '#': "3", '$': "4", '%': "5",
	'^': "6", '&': "7", '*': "8", '(': "9", ')': "0",

	// Shifted symbols
	'_': "minus",
	'+': "equal",
	'{': "leftbrace",
	'}': "rightbrace",
	'|': "backslash",
	':': "semicolon",
	'"': "apostrophe",
	'~': "grave",
	'<': "comma",
	'>': "period",
	'?': "slash",
}
