package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// InitLogger configures the process-wide logger. Only the first call has an effect.
func InitLogger(level logrus.Level) {
	once.Do(func() {
		logger = newLogger(level)
	})
}

// GetLogger returns the process-wide logger, creating one at info level if
// InitLogger has not been called yet.
func GetLogger() *logrus.Logger {
	InitLogger(logrus.InfoLevel)
	return logger
}

// SetLevel changes the level of the process-wide logger after startup flags are parsed.
func SetLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

func newLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}
