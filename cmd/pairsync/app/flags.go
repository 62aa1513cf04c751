package app

import "os"

// Flags holds the global flag state shared by every command.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	LogLevel   string
	MaxWorkers int
}

// DefaultFlags returns flag defaults, honoring the LOG_LEVEL environment
// variable the same way the logger does.
func DefaultFlags() *Flags {
	return &Flags{
		LogLevel:   os.Getenv("LOG_LEVEL"),
		NoColor:    os.Getenv("NO_COLOR") != "",
		MaxWorkers: 0,
	}
}
