package utils

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once

var log zerolog.Logger

func GetLogger() zerolog.Logger {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var level = int(zerolog.InfoLevel)
		logLevel, ok := os.LookupEnv("DROVER_LOG_LEVEL")
		if ok {
			if val, err := strconv.Atoi(logLevel); err == nil {
				level = val
			}
		}

		console := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}

		fileLogger := &lumberjack.Logger{
			Filename:   "drover.log",
			MaxSize:    5,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		}

		output := zerolog.MultiLevelWriter(console, fileLogger)

		log = zerolog.New(output).
			Level(zerolog.Level(level)).
			With().
			Timestamp().
			Logger()
	})

	return log
}
