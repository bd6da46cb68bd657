/*
NAME
  logger.go

DESCRIPTION
  logger.go declares the logging interface accepted by the codec registry
  and the frame pipeline. Its shape mirrors the call sites of
  github.com/ausocean/utils/logging.Logger (see revid/pipeline.go,
  revid/revid.go, revid/config/variables.go and protocol/rtcp/client.go in
  the wider av module) rather than importing that package directly, since
  the source of its exported surface isn't available to verify against.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package status

// Log levels, matching the int8 levels used by logging.Debug/Info/Warning/
// Error/Fatal in the wider av module (see protocol/rtcp/client_test.go).
const (
	Debug int8 = iota
	Info
	Warning
	Error
	Fatal
)

// Logger is the logging interface accepted by codec.WithLogger and the
// pipeline's Start*/Probe* functions. Any
// value satisfying github.com/ausocean/utils/logging.Logger also satisfies
// this interface, since the method set is identical.
type Logger interface {
	// SetLevel changes the minimum level that will be emitted.
	SetLevel(int8)

	// Log emits message at level, with alternating key/value params.
	Log(level int8, message string, params ...interface{})

	Debug(message string, params ...interface{})
	Info(message string, params ...interface{})
	Warning(message string, params ...interface{})
	Error(message string, params ...interface{})
}

// NopLogger discards everything. It is the registry's default logger and
// the one the pipeline falls back to when given a nil logger, which is
// what every sail facade function passes, so that simple one-shot call
// sites (sail.LoadFromFile etc.) don't need to construct a logger first.
type NopLogger struct{}

func (NopLogger) SetLevel(int8)                                {}
func (NopLogger) Log(level int8, message string, params ...interface{}) {}
func (NopLogger) Debug(message string, params ...interface{})  {}
func (NopLogger) Info(message string, params ...interface{})   {}
func (NopLogger) Warning(message string, params ...interface{}) {}
func (NopLogger) Error(message string, params ...interface{})  {}

var _ Logger = NopLogger{}
