package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/bfem/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

var levels = []slog.Level{
	slog.LevelDebug,
	slog.LevelInfo,
	slog.LevelWarn,
	slog.LevelError,
}

var toJournal = cmds.Switch("-log-journal", "also send logs to the systemd journal")

func init() {
	for _, l := range levels {
		name := strings.ToLower(l.String())
		cmds.Define("-log-"+name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+name))
	}
}

type Logger = *slog.Logger

// Logger writes text records to Writer, and to the journal when running as a
// systemd service or when asked to. A service logs to the journal only.
func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler

	service := underSystemdService()
	var local slog.Handler
	if !service {
		local = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: dropTime,
		})
		handlers = append(handlers, local)
	}

	if service || *toJournal {
		journal, err := newJournalHandler()
		if err != nil {
			if local != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = local.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journal)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

// runs are short, a clock column only adds noise on the terminal
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

func newJournalHandler() (slog.Handler, error) {
	handler, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func underSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	return isServiceCgroup(string(content))
}

// isServiceCgroup reports whether any hierarchy in a /proc/self/cgroup listing
// places the process in a .service unit.
func isServiceCgroup(content string) bool {
	for line := range strings.SplitSeq(strings.TrimSpace(content), "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 3 {
			continue
		}
		p := parts[2]
		if strings.HasSuffix(p, ".service") || strings.HasSuffix(path.Dir(p), ".service") {
			return true
		}
	}
	return false
}
