// Package logging defines the structured logger used by the generator and
// its surfaces. Callers plug in their own implementation; the library
// never logs unless one is configured.
package logging

import (
	"fmt"
	"log"
	"strings"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type floatField struct {
	key string
	val float64
}

func (f floatField) Key() string        { return f.key }
func (f floatField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field        { return stringField{key, value} }
func Int(key string, value int) Field       { return intField{key, value} }
func Float(key string, value float64) Field { return floatField{key, value} }
func Error(key string, err error) Field     { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// StdLogger writes key=value lines through a standard library logger.
type StdLogger struct {
	out    *log.Logger
	debug  bool
	fields []Field
}

// NewStd returns a Logger writing to l. Debug messages are dropped unless
// debug is set.
func NewStd(l *log.Logger, debug bool) *StdLogger {
	return &StdLogger{out: l, debug: debug}
}

func (s *StdLogger) Debug(msg string, fields ...Field) {
	if s.debug {
		s.write("DEBUG", msg, fields)
	}
}

func (s *StdLogger) Info(msg string, fields ...Field)  { s.write("INFO", msg, fields) }
func (s *StdLogger) Warn(msg string, fields ...Field)  { s.write("WARN", msg, fields) }
func (s *StdLogger) Error(msg string, fields ...Field) { s.write("ERROR", msg, fields) }

func (s *StdLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(s.fields)+len(fields))
	merged = append(merged, s.fields...)
	merged = append(merged, fields...)
	return &StdLogger{out: s.out, debug: s.debug, fields: merged}
}

func (s *StdLogger) write(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, group := range [][]Field{s.fields, fields} {
		for _, f := range group {
			fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
		}
	}
	s.out.Print(b.String())
}
