// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"fmt"
	"os"

	"github.com/fionatony/aikey/internal/ctxlog"
	"github.com/fionatony/aikey/internal/procrun"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/c"         // Command switch for Windows cmd.exe
	setxCommand          = "setx"       // Persists a user environment variable.
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	winSystemRootDefault = `C:\Windows`
)

// EnvSetter persistently sets an environment variable for processes started later.
// The current process environment is never changed.
type EnvSetter interface {
	SetEnvVar(ctx context.Context, name, value string) (string, error)
}

var (
	_ EnvSetter = Unsupported{}
	_ EnvSetter = (*Supported)(nil)
)

// Unsupported is the EnvSetter for platforms without a persistent environment store.
type Unsupported struct{}

// SetEnvVar always fails with KindUnsupportedPlatform and does nothing else.
func (Unsupported) SetEnvVar(_ context.Context, _, _ string) (string, error) {
	return "", newUnsupportedPlatformError()
}

// Supported sets variables with `cmd /c setx NAME VALUE`.
type Supported struct {
	Runner procrun.Runner // Runs the shell, defaults to procrun.NewOSRunner().
	Shell  string         // Path to cmd.exe, defaults to %SystemRoot%\System32\cmd.exe.
}

// SetEnvVar runs setx and returns its standard output.
// A non-zero exit fails with the captured standard error text, a launch failure
// fails with the launch error text. Both are KindIo.
func (s *Supported) SetEnvVar(ctx context.Context, name, value string) (string, error) {
	runner := s.Runner
	if runner == nil {
		runner = procrun.NewOSRunner()
	}

	shell := s.Shell
	if shell == "" {
		shell = defaultShell()
	}

	ctxlog.Debug(ctx, "setting persistent environment variable", "name", name, "shell", shell)

	res, err := runner.Run(ctx, shell, s.Args(name, value)...)
	if err != nil {
		return "", newIoError(err)
	}

	if res.ExitCode != 0 {
		return "", newIoErrorText(res.StdErr)
	}

	return lossyString(res.StdOut), nil
}

// Args returns the argument list passed to the shell for name and value.
func (s *Supported) Args(name, value string) []string {
	return []string{commandSwitchWindows, setxCommand, name, value}
}

// ForPlatform selects the EnvSetter for goos. Only windows is supported.
func ForPlatform(goos string, runner procrun.Runner) EnvSetter {
	if goos == GOOSWindows {
		return &Supported{Runner: runner}
	}

	return Unsupported{}
}

func defaultShell() string {
	systemRoot := os.Getenv(winSystemRootEnv)
	if systemRoot == "" {
		systemRoot = winSystemRootDefault
	}

	return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
}
