package common

import "go.uber.org/zap"

type LogLevel int32

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var sugar = newSugar()

func newSugar() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		// fall back to a no-op logger rather than fail core operations
		// over a logging misconfiguration
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// ShPrintf dispatches a leveled, printf-style log line through zap.
func ShPrintf(level LogLevel, fmtStr string, a ...interface{}) {
	switch level {
	case DEBUG:
		sugar.Debugf(fmtStr, a...)
	case WARN:
		sugar.Warnf(fmtStr, a...)
	case ERROR:
		sugar.Errorf(fmtStr, a...)
	default:
		sugar.Infof(fmtStr, a...)
	}
}
