package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

func formatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// New builds the application logger writing JSON to out (stderr when nil).
// The package-level logrus logger is configured the same way so libraries
// logging through it (gorm-logrus) share the format.
func New(level string, out io.Writer) *log.Logger {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetFormatter(formatter())
	log.SetOutput(out)
	log.SetLevel(lvl)

	logger := log.New()
	logger.SetFormatter(formatter())
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	return logger
}
