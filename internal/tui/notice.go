package tui

// NoticeLevel classifies a toast notice.
type NoticeLevel int

const (
	LevelInfo NoticeLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice is a transient user-facing message shown in the toast stack.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// InfoNotice builds an informational notice.
func InfoNotice(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// SuccessNotice builds a success notice.
func SuccessNotice(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

// WarningNotice builds a warning notice.
func WarningNotice(msg string) Notice { return Notice{Level: LevelWarning, Message: msg} }

// ErrorNotice builds an error notice.
func ErrorNotice(msg string) Notice { return Notice{Level: LevelError, Message: msg} }
