package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

type debug struct {
	Encode   bool
	Build    bool
	Manifest bool
}

var (
	d      *debug
	logger *log.Logger
)

func init() {
	d = &debug{}
	d.Encode = boolEnv("STARC_DEBUG_ENCODE")
	d.Build = boolEnv("STARC_DEBUG_BUILD")
	d.Manifest = boolEnv("STARC_DEBUG_MANIFEST")
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
		Prefix:          "starc",
	})
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Encode() bool {
	return d.Encode
}
func Build() bool {
	return d.Build
}
func Manifest() bool {
	return d.Manifest
}

// Logger returns the logger debug output is written to.
func Logger() *log.Logger {
	return logger
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		case fmt.Stringer:
			args[i] = x.String()
		}
	}
	logger.Debugf(msg, args...)
}
