package batch_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/MasterOfBinary/batchrand/batch"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    batch.LogLevel
		expected string
	}{
		{batch.LogLevelDebug, "DEBUG"},
		{batch.LogLevelInfo, "INFO"},
		{batch.LogLevelWarn, "WARN"},
		{batch.LogLevelError, "ERROR"},
		{batch.LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := &batch.NoOpLogger{}

	// These should not panic
	logger.Log(batch.LogLevelInfo, "test")
	logger.Debug("debug %d", 1)
	logger.Info("info %s", "test")
	logger.Warn("warn %v", true)
	logger.Error("error %f", 3.14)
}

func TestSimpleLogger(t *testing.T) {
	tests := []struct {
		name        string
		minLevel    batch.LogLevel
		logFunc     func(logger batch.Logger)
		contains    []string
		notContains []string
	}{
		{
			name:     "debug level allows all",
			minLevel: batch.LogLevelDebug,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug message")
				logger.Info("info message")
				logger.Warn("warn message")
				logger.Error("error message")
			},
			contains: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"},
		},
		{
			name:     "info level filters debug",
			minLevel: batch.LogLevelInfo,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug message")
				logger.Info("info message")
			},
			contains:    []string{"[INFO] info message"},
			notContains: []string{"[DEBUG]"},
		},
		{
			name:     "error level only shows errors",
			minLevel: batch.LogLevelError,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug")
				logger.Info("info")
				logger.Warn("warn")
				logger.Error("error message")
			},
			contains:    []string{"[ERROR] error message"},
			notContains: []string{"[DEBUG]", "[INFO]", "[WARN]"},
		},
		{
			name:     "formatting works",
			minLevel: batch.LogLevelInfo,
			logFunc: func(logger batch.Logger) {
				logger.Info("number: %d, string: %s", 42, "hello")
			},
			contains: []string{"[INFO] number: 42, string: hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			logger := &batch.SimpleLogger{
				MinLevel: tt.minLevel,
				Out:      log.New(&out, "", 0),
			}

			tt.logFunc(logger)

			output := out.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing expected string %q\nGot: %s", want, output)
				}
			}
			for _, notWant := range tt.notContains {
				if strings.Contains(output, notWant) {
					t.Errorf("output contains unexpected string %q\nGot: %s", notWant, output)
				}
			}
		})
	}
}

func TestSimpleLogger_NilOut(t *testing.T) {
	logger := &batch.SimpleLogger{MinLevel: batch.LogLevelDebug}

	// Should not panic
	logger.Error("dropped")
}

func TestNewSimpleLogger(t *testing.T) {
	var out bytes.Buffer
	logger := batch.NewSimpleLogger(&out, batch.LogLevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	got := out.String()
	if !strings.HasPrefix(got, "batchrand ") {
		t.Errorf("output %q does not start with the batchrand prefix", got)
	}
	if strings.Contains(got, "hidden") || !strings.Contains(got, "[WARN] shown") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestGenerator_Logging(t *testing.T) {
	var out bytes.Buffer
	logger := &batch.SimpleLogger{
		MinLevel: batch.LogLevelDebug,
		Out:      log.New(&out, "", 0),
	}

	g, err := batch.NewWithOptions(&batch.Options{Logger: logger}, &mockSource{1}, &mockSource{2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Call("Get"); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{"[DEBUG] Dispatching Get to 2 sources", "[DEBUG] Get returned shape [2]"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\nGot: %s", want, got)
		}
	}

	// Failed calls are reported to the caller only
	out.Reset()
	g.Call("Missing")
	if strings.Contains(out.String(), "[ERROR]") {
		t.Errorf("failed call was logged as an error: %s", out.String())
	}

	out.Reset()
	g.WithLogger(nil)
	g.Call("Get")
	if out.Len() != 0 {
		t.Errorf("WithLogger(nil) still logged: %s", out.String())
	}
}
