package types

// IO is the diagnostic sink shared by the installer and every stage. Lines
// are meant for humans; nothing parses them.
type IO interface {
	// Write prints a plain line
	Write(msg string)

	// Info prints a highlighted progress line
	Info(msg string)

	// Warning prints a warning line
	Warning(msg string)
}
