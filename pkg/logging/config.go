package logging

const (
	BaseLogDir = "logs"
	TimeFormat = "2006-01-02 15:04:05"
)

type LogLevel string

const (
	Development LogLevel = "development" // prints debug and above
	Production  LogLevel = "production"  // prints info and above
)

// ProcessName type to ensure valid process names
type ProcessName string

const (
	ConsoleProcess ProcessName = "console"
	TestProcess    ProcessName = "test"
)

type LoggerConfig struct {
	LogDir      string
	ProcessName ProcessName
	Environment LogLevel
	// UseConsole mirrors log output to stderr. Stdout is reserved for views.
	UseConsole bool
}

func NewDefaultConfig(processName ProcessName) LoggerConfig {
	return LoggerConfig{
		LogDir:      BaseLogDir,
		ProcessName: processName,
		Environment: Development,
		UseConsole:  true,
	}
}
