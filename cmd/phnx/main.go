// Command phnx encrypts files with a password, protecting the
// ciphertext with a forward error-correcting code and scattering it
// across eight slice files so that losing any one of them still
// leaves the original recoverable.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/notatuta/phnx"
	"github.com/notatuta/phnx/internal/selftest"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) <= 1 {
		return runSelfTestAndUsage(args[0])
	}

	password, err := resolvePassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, phnx.ErrWrongPassword) {
			return phnx.ExitWrongPassword
		}
		return phnx.ExitCode(err)
	}

	if warning, err := (&phnx.Config{Password: password}).Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return phnx.ExitFormatError
	} else if warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	schedule := phnx.DeriveKeySchedule(password)

	runID := uuid.New()
	fmt.Fprintf(os.Stderr, "run %s\n", runID)

	var okCount, failCount int
	lastCode := phnx.ExitOK
	compatibility := false

	for _, arg := range args[1:] {
		switch arg {
		case "-c":
			compatibility = true
			continue
		case "-g":
			compatibility = false
			continue
		}

		cfg := phnx.Config{Compatibility: compatibility, Password: password}
		err := phnx.ProcessFile(arg, schedule, cfg)
		code := phnx.ExitCode(err)
		if code != phnx.ExitOK {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			lastCode = code
			failCount++
		} else {
			okCount++
		}
	}

	if okCount+failCount > 1 {
		fmt.Fprintf(os.Stderr, "%d files, %d errors\n", okCount+failCount, failCount)
	}
	return lastCode
}

func runSelfTestAndUsage(prog string) int {
	if err := selftest.All(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return phnx.ExitSelfTestFailed
	}

	fmt.Fprintf(os.Stderr, `phnx version %s

Usage:

	%s [-c] file1 [-g] [file2] [...]

Encrypt a given file or files, add error correction bits, split into eight slices.
When given a slice, read all eight slices, correct errors if possible, then decrypt the original file.
Option -c turns on compatibility mode (encryption only, no error correction) for the files that follow,
option -g turns it off. Password can be passed via environment variable PHNX_PASSWORD.
`, version, prog)
	return phnx.ExitOK
}

func resolvePassword() ([]byte, error) {
	if pw, ok := os.LookupEnv("PHNX_PASSWORD"); ok {
		fmt.Fprintln(os.Stderr, "Using password from environment variable")
		return []byte(pw), nil
	}

	source := phnx.PromptPasswordSource{In: os.Stdin, Out: os.Stderr}
	pw, err := source.Password()
	if err != nil {
		if errors.Is(err, phnx.ErrWrongPassword) {
			return nil, fmt.Errorf("keys don't match: %w", phnx.ErrWrongPassword)
		}
		return nil, err
	}
	return pw, nil
}
