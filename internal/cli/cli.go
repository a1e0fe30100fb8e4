package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/netcli/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("netcli", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
netcli - parse network-device CLI output into structured JSON records.

Usage:
  netcli -platform PLATFORM -key COMMAND_KEY [-input FILE] [options]
  netcli -platform VENDOR -key COMMAND_KEY -template FILE [-input FILE]
  netcli -list | -check | -serve ADDR

The parse modes read device output from -input (or stdin when the path is
"-") and print a JSON envelope on stdout. A failed parse still prints an
envelope and exits 0; the envelope carries the error.

Options:
`)
		flagSet.PrintDefaults()
	}

	platformFlag := flagSet.String("platform", "", "Platform slug or alias, e.g. 'cisco_ios' or 'ios'.")
	keyFlag := flagSet.String("key", "", "Command key, e.g. 'show_version'.")
	commandFlag := flagSet.String("command", "", "Raw command string, e.g. 'show version'. Alternative to -key.")
	inputFlag := flagSet.String("input", "-", "Path to the device output file. '-' reads stdin.")
	templateFlag := flagSet.String("template", "", "Path to a template file, bypassing the registry. -platform names the vendor.")
	canonicalFlag := flagSet.Bool("canonical", false, "Rename well-known fields to canonical snake_case names.")
	listFlag := flagSet.Bool("list", false, "List registered platforms and templates, then exit.")
	checkFlag := flagSet.Bool("check", false, "Compile every registered template and report failures.")
	serveFlag := flagSet.String("serve", "", "Run the HTTP facade on this address, e.g. ':8455'.")
	templatesPathFlag := flagSet.String("templates-path", "", "Directory with extra template packs, loaded after the embedded ones.")
	configFlag := flagSet.String("config", "", "Path to a YAML config file. Defaults to ./netcli.yaml when present.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		Platform:      *platformFlag,
		Key:           *keyFlag,
		Command:       *commandFlag,
		InputPath:     *inputFlag,
		TemplatePath:  *templateFlag,
		Canonical:     *canonicalFlag,
		List:          *listFlag,
		Check:         *checkFlag,
		ListenAddr:    *serveFlag,
		TemplatesPath: *templatesPathFlag,
		ConfigPath:    *configFlag,
		LogFormat:     *logFormatFlag,
		LogLevel:      *logLevelFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
