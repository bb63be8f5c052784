package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	plog "github.com/phuslu/log"

	"github.com/graph-guard/emplace/pkg/cli"
	"github.com/graph-guard/emplace/pkg/container/gomap"
	"github.com/graph-guard/emplace/pkg/container/hamap"
	"github.com/graph-guard/emplace/pkg/container/linear"
	"github.com/graph-guard/emplace/pkg/runner"
	"github.com/graph-guard/emplace/pkg/scenario"
	"github.com/graph-guard/emplace/pkg/statistics"
)

func main() {
	w := os.Stdout
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandRun:
		dir, name := filepath.Split(c.ScenarioPath)
		if dir == "" {
			dir = "."
		}
		if !run(w, os.Stderr, os.DirFS(dir), name, c) {
			os.Exit(1)
		}
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
}

// run executes the scenario at filePath in filesystem and prints
// the resulting map to w.
// Returns false if the scenario couldn't be read
// or any of its operations failed.
func run(
	w, logOut io.Writer,
	filesystem fs.FS,
	filePath string,
	c cli.CommandRun,
) (ok bool) {
	l := plog.Logger{
		Level:      logLevel(c.LogLevel),
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &plog.IOWriter{Writer: logOut},
	}

	s, err := scenario.ReadFile(filesystem, filePath)
	if err != nil {
		l.Error().Err(err).Str("path", c.ScenarioPath).Msg("reading scenario")
		return false
	}

	var m runner.Map
	switch c.Container {
	case cli.ContainerGomap:
		m = gomap.New[string, int64](len(s.Entries))
	case cli.ContainerHamap:
		m = hamap.New[string, int64](len(s.Entries), nil)
	default:
		m = linear.New[string, int64](len(s.Entries))
	}

	stats := statistics.New()
	runner.Run(s, m, l, stats)

	m.Visit(func(key string, value int64) bool {
		_, _ = fmt.Fprintf(w, "%s = %s\n", key, strconv.FormatInt(value, 10))
		return false
	})

	st := stats.Snapshot()
	_, _ = fmt.Fprintf(w,
		"%s operations: %s inserted, %s updated, %s read, %s failed\n",
		humanize.Comma(st.Total()),
		humanize.Comma(st.Inserted),
		humanize.Comma(st.Updated),
		humanize.Comma(st.Read),
		humanize.Comma(st.Failed),
	)
	l.Info().
		Str("container", c.Container).
		Int("entries", m.Len()).
		Msg("scenario executed")

	return st.Failed == 0
}

func logLevel(s string) plog.Level {
	switch s {
	case "debug":
		return plog.DebugLevel
	case "warn":
		return plog.WarnLevel
	case "error":
		return plog.ErrorLevel
	}
	return plog.InfoLevel
}
