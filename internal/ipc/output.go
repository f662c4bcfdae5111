package ipc

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"pokervr-matchlog/internal/parser"
	"pokervr-matchlog/internal/parser/extractors"
)

// Output handles NDJSON (newline-delimited JSON) output to stdout.
// All methods are thread-safe.
type Output struct {
	log *logrus.Logger
}

// NewOutput creates a new NDJSON output handler on stdout.
func NewOutput() *Output {
	return NewOutputTo(os.Stdout)
}

// NewOutputTo creates an NDJSON output handler writing to w.
func NewOutputTo(w io.Writer) *Output {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "msg",
		},
	})
	return &Output{log: logger}
}

// SetLevel sets the minimum level written. Progress messages are info.
func (o *Output) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	o.log.SetLevel(lvl)
	return nil
}

// Logger exposes the underlying logger.
func (o *Output) Logger() *logrus.Logger {
	return o.log
}

// Progress sends a progress update message.
func (o *Output) Progress(stage string, done, total int, pct float64) {
	o.log.WithFields(logrus.Fields{
		"type":  "progress",
		"stage": stage,
		"done":  done,
		"total": total,
		"pct":   pct,
	}).Info("progress")
}

// Log sends a log message. Unknown levels are written as info.
func (o *Output) Log(level, msg string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	o.log.WithField("type", "log").Log(lvl, msg)
}

// Error sends an error message.
func (o *Output) Error(msg string) {
	o.log.WithField("type", "error").Error(msg)
}

// HandError reports a hand that could not be parsed, with the offending
// line when the failure carries one.
func (o *Output) HandError(err *parser.HandError) {
	fields := logrus.Fields{
		"type": "hand_error",
		"hand": err.Index,
	}
	if kind := extractors.KindOf(err); kind != nil {
		fields["kind"] = kind.Error()
	}
	var le *extractors.LineError
	if errors.As(err, &le) && le.Offset >= 0 {
		fields["offset"] = le.Offset
		fields["line"] = le.Line
	}
	o.log.WithFields(fields).Error(err.Error())
}
