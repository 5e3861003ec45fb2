package logsvc

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/gradebook/core"
)

// RollbarLogger reports to Rollbar and echoes every entry to a std logger.
// Args may be errors, *http.Request, map[string]interface{} extras or anything printable.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// requestID reads the id the request id middleware stored on the request.
func requestID(req *http.Request) string {
	return req.Header.Get("X-Request-ID")
}

// rollbarArgs puts msg first and merges request details into a single extras map.
func rollbarArgs(msg string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+2)
	out = append(out, msg)

	var extras map[string]interface{}
	for _, arg := range args {
		switch a := arg.(type) {
		case map[string]interface{}:
			if extras == nil {
				extras = make(map[string]interface{}, len(a)+1)
			}
			for k, v := range a {
				extras[k] = v
			}
		case *http.Request:
			if id := requestID(a); id != "" {
				if extras == nil {
					extras = make(map[string]interface{}, 1)
				}
				extras["request_id"] = id
			}
			out = append(out, a)
		default:
			out = append(out, a)
		}
	}
	if extras != nil {
		out = append(out, extras)
	}
	return out
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	if level != rollbar.INFO {
		b.WriteString(strings.ToUpper(level) + ": ")
	}
	b.WriteString(msg)
	for _, arg := range args {
		b.WriteString("\n")
		if req, ok := arg.(*http.Request); ok {
			fmt.Fprintf(&b, "request: %s %s", req.Method, req.URL.RequestURI())
			if id := requestID(req); id != "" {
				fmt.Fprintf(&b, " [%s]", id)
			}
			continue
		}
		fmt.Fprintf(&b, "%+v", arg)
	}
	l.std.Println(b.String())
}

func (l *RollbarLogger) log(level, msg string, args []interface{}) {
	rollbar.Log(level, rollbarArgs(msg, args)...)
	l.print(level, msg, args)
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l *RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l *RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

// Fatal flushes pending Rollbar reports before exiting.
func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
