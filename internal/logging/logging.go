package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at logFile (appending) and the console.
// An empty logFile logs to the console only.
func Init(level zerolog.Level, logFile string) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}
		writers = append(writers, f)
	}

	log.Logger = New(level, writers...)

	if level == zerolog.DebugLevel {
		log.Debug().Msg("Log level set to DEBUG")
	}
}

func New(level zerolog.Level, writers ...io.Writer) zerolog.Logger {
	multi := zerolog.MultiLevelWriter(writers...)
	return zerolog.New(multi).Level(level).With().Timestamp().Logger()
}
