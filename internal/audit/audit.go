// Package audit records access decisions for privileged operations.
package audit

import (
	"log"
	"os"
	"time"
)

// Entry is one allow/deny decision on a privileged operation.
type Entry struct {
	UserID    uint
	Operation string
	URL       string
	Allowed   bool
	At        time.Time
}

type Recorder interface {
	Record(e Entry)
}

// LogRecorder writes entries through a standard logger.
type LogRecorder struct {
	logger *log.Logger
}

func NewLogRecorder(l *log.Logger) *LogRecorder {
	if l == nil {
		l = log.New(os.Stdout, "[audit] ", log.LstdFlags)
	}
	return &LogRecorder{logger: l}
}

func (r *LogRecorder) Record(e Entry) {
	decision := "deny"
	if e.Allowed {
		decision = "allow"
	}
	r.logger.Printf("user_id=%d operation=%s url=%s decision=%s requested_at=%s",
		e.UserID, e.Operation, e.URL, decision, e.At.Format(time.RFC3339Nano))
}
