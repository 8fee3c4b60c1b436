package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер в stdout для сервера
func New(logLevel string) *logrus.Logger {
	return NewWithOutput(logLevel, os.Stdout, true)
}

// NewWithOutput используется CLI: текстовый формат в stderr, чтобы не мешать выводу команд
func NewWithOutput(logLevel string, out io.Writer, jsonFormat bool) *logrus.Logger {
	log := logrus.New()

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
