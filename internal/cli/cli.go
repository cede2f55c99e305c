package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/minipack/internal/app"
	"github.com/specialistvlad/minipack/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Build settings left at their zero value are filled from the configuration
// file, if any, and then from defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("minipack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
minipack - bundles a CommonJS module graph into a single self-running file.

Usage:
  minipack [options] [ENTRY]

Arguments:
  ENTRY
    Path to the entry module. Its require('./...') calls are followed
    transitively and every reached module is embedded in the bundle.

Options:
`)
		flagSet.PrintDefaults()
	}

	entryFlag := flagSet.String("entry", "", "Path to the entry module.")
	eFlag := flagSet.String("e", "", "Path to the entry module (shorthand).")
	outputFlag := flagSet.String("output", "", "Path of the bundle to write. (default \""+config.DefaultOutput+"\")")
	oFlag := flagSet.String("o", "", "Path of the bundle to write (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to an HCL configuration file or directory (shorthand).")
	baseDirFlag := flagSet.String("base-dir", "", "Project root for root resolution and module names. Defaults to the entry's directory.")
	resolveFlag := flagSet.String("resolve", "", "Specifier resolution. Options: 'importer' or 'root'. (default \"importer\")")
	instancingFlag := flagSet.String("instancing", "", "Module instancing. Options: 'cached' or 'reexecute'. (default \"cached\")")
	cyclesFlag := flagSet.String("cycles", "", "Cycle handling. Options: 'reject' or 'allow'. (default \"reject\")")
	scannerFlag := flagSet.String("scanner", "", "Dependency scanner. Options: 'lexical' or 'pattern'. (default \"lexical\")")
	verifyFlag := flagSet.Bool("verify", false, "Execute the bundle in an embedded JavaScript runtime before writing it.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Verify is only set when given, so a configuration file value survives
	// an absent flag and -verify=false can still turn it off.
	var verify *bool
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "verify" {
			verify = config.Bool(*verifyFlag)
		}
	})

	entry := firstNonEmpty(*entryFlag, *eFlag)
	if entry == "" && flagSet.NArg() > 0 {
		entry = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "only one entry module can be bundled; options must precede ENTRY"}
	}
	configPath := firstNonEmpty(*configFlag, *cFlag)
	slog.Debug("Entry determined.", "entry", entry, "config", configPath)

	if entry == "" && configPath == "" {
		slog.Debug("No entry provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: configPath,
		Build: config.Model{
			Entry:      entry,
			Output:     firstNonEmpty(*outputFlag, *oFlag),
			BaseDir:    *baseDirFlag,
			Resolution: strings.ToLower(*resolveFlag),
			Instancing: strings.ToLower(*instancingFlag),
			Cycles:     strings.ToLower(*cyclesFlag),
			Scanner:    strings.ToLower(*scannerFlag),
			Verify:     verify,
		},
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
