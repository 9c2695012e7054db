// cmd/esign-cli/main.go
package main

import (
	"bufio"
	"os"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"esign-workers/internal/common/logger"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args, &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}))
}

// run executes the CLI with args and returns the exit code.
func run(args []string, ui cli.Ui) int {
	cliName := args[0]

	if len(args) == 2 && (args[1] == "-version" || args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	base := &baseCommand{
		UI:     ui,
		Log:    logger.NewStructured("warn", "console"),
		Fs:     afero.NewOsFs(),
		Getenv: os.Getenv,
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version,
		Commands: commands(base),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}

func commands(base *baseCommand) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"schedule": func() (cli.Command, error) {
			return &ScheduleCommand{baseCommand: base}, nil
		},
		"status": func() (cli.Command, error) {
			return &StatusCommand{baseCommand: base}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: base.UI}, nil
		},
	}
}

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Synopsis() string { return "Print the CLI version" }

func (c *versionCommand) Help() string { return "Usage: esign-cli version" }

func (c *versionCommand) Run([]string) int {
	c.ui.Output(version)
	return 0
}
