package logger

import (
	"go.uber.org/zap"
)

var global *zap.Logger

// Init настраивает глобальный логгер: dev — человекочитаемый, prod — JSON
func Init(isDev bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if isDev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	global = l
	return nil
}

func L() *zap.Logger {
	if global == nil {
		return zap.NewNop()
	}
	return global
}

func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
