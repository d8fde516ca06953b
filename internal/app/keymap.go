package app

// Key binding constants used in handleKey.
const (
	KeyQuit        = "q"
	KeyQuitUpper   = "Q"
	KeyCtrlC       = "ctrl+c"
	KeyEsc         = "esc"
	KeyPickVideo   = "v"
	KeyPickOutput  = "o"
	KeyRun         = "r"
	KeyRunUpper    = "R"
	KeyVideoUpper  = "V"
	KeyOutputUpper = "O"
)
