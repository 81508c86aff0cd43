package log

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

type LogFormat string

var (
	Pretty LogFormat = "pretty"
	JSON   LogFormat = "json"
	Text   LogFormat = "text"
)

var (
	stderr = zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Stdout is for output that should survive shell redirection, e.g. route tables
	Stdout = zerolog.New(os.Stdout).With().Timestamp().Logger()

	globalFormat LogFormat = Pretty

	Fatal = stderr.Fatal
	Error = stderr.Error
	Warn  = stderr.Warn
	Info  = stderr.Info
	Debug = stderr.Debug
	Trace = stderr.Trace

	Err  = stderr.Err
	With = stderr.With

	GetLevel = stderr.GetLevel
)

const (
	FatalLevel = zerolog.FatalLevel
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
	TraceLevel = zerolog.TraceLevel
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported format. supported 'json', 'pretty', 'text'")

// SetLevelString parses the given level and applies it to both loggers.
// can be error,warn,info,debug,trace
func SetLevelString(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	stderr = stderr.Level(l)
	Stdout = Stdout.Level(l)
	rebind()
	return nil
}

func GetLogFormat() LogFormat {
	return globalFormat
}

// SetFormat switches the output writer. json writes structured lines, pretty and
// text use the console writer with and without color respectively.
func SetFormat(format string) error {
	switch format {
	case "json", "":
		globalFormat = JSON
	case "pretty":
		stderr = stderr.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false, TimeFormat: "3:04PM"})
		Stdout = Stdout.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: false, TimeFormat: "3:04PM"})
		globalFormat = Pretty
	case "text":
		stderr = stderr.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true, TimeFormat: "3:04PM"})
		Stdout = Stdout.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: "3:04PM"})
		globalFormat = Text
	default:
		return ErrUnsupportedFormat
	}
	rebind()
	return nil
}

// rebind refreshes the exported event constructors after the underlying logger
// is swapped out. Callers holding the package level aliases always see the
// current configuration.
func rebind() {
	Fatal = stderr.Fatal
	Error = stderr.Error
	Warn = stderr.Warn
	Info = stderr.Info
	Debug = stderr.Debug
	Trace = stderr.Trace
	Err = stderr.Err
	With = stderr.With
	GetLevel = stderr.GetLevel
}
