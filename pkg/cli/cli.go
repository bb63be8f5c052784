package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const EnvLogLevel = "EMPLACE_LOG_LEVEL"

const (
	ContainerLinear = "linear"
	ContainerGomap  = "gomap"
	ContainerHamap  = "hamap"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Command can be any of:
//
//	CommandRun
type Command any

type CommandRun struct {
	ScenarioPath string
	Container    string
	LogLevel     string
}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "emplace"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("emplace", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" run - executes the operations of a scenario file",
			" help - prints help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "run":
		c := CommandRun{}
		c.LogLevel = os.Getenv(EnvLogLevel)
		if c.LogLevel == "" {
			c.LogLevel = "info"
		}

		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s run [-container <name>] [-verbose] <scenario>",
					executableName),
				"",
				"flags:",
				"-container <name>: defines the container the scenario "+
					"is executed against, any of: linear, gomap, hamap "+
					"(default: linear)",
				"-verbose: logs every operation",
				"",
				"environment variables:",
				fm("%s: log level, any of: debug, info, warn, error "+
					"(default: info)", EnvLogLevel),
			)
		}

		var verbose bool
		flags.StringVar(&c.Container, "container", ContainerLinear, "")
		flags.BoolVar(&verbose, "verbose", false, "")
		if !parseFlags() {
			return nil
		}
		if verbose {
			c.LogLevel = "debug"
		}

		switch c.Container {
		case ContainerLinear, ContainerGomap, ContainerHamap:
		default:
			writeLines(w, fm("unknown container: %q", c.Container))
			flags.Usage()
			return nil
		}

		if !isLogLevel(c.LogLevel) {
			writeLines(w, fm("%s contains an invalid log level: %q",
				EnvLogLevel, c.LogLevel))
			flags.Usage()
			return nil
		}

		if flags.NArg() != 1 {
			writeLines(w, "expected exactly one scenario file path")
			flags.Usage()
			return nil
		}
		c.ScenarioPath = flags.Arg(0)

		cmd = c

	case "help":
		PrintHelp(w, executableName)
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func isLogLevel(s string) bool {
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return false
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}

func PrintHelp(w io.Writer, executableName string) {
	writeLines(w,
		executableName+" executes emplace scenarios.",
		"",
		"A scenario is a YAML file defining the initial map entries",
		"and a list of operations. Each operation names a key and",
		"optionally a value to insert if the key is absent and an",
		"update (add, sub, mul, div or set followed by an integer)",
		"to apply if the key is present:",
		"",
		"  entries:",
		"    foo: 9",
		"  operations:",
		"    - key: foo",
		"      insert: 7",
		"      update: mul 3",
		"",
		fmt.Sprintf("run '%s' without arguments to list commands.",
			executableName),
	)
}
