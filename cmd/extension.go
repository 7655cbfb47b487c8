package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment passed to extensions, with the values of the global flags.
const (
	EnvConfigFile = "MYCARBS_CONFIG_FILE"
	EnvStore      = "MYCARBS_STORE"
	EnvDataDir    = "MYCARBS_DATA_DIR"
	EnvVerbose    = "MYCARBS_VERBOSE"
)

// RunExtension attempts to find and execute an external mycarbs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	return runExtension(subcommand, args, os.Stdin, os.Stdout, os.Stderr)
}

func runExtension(subcommand string, args []string, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	externalCmdName := "mycarbs-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Pass global flags as environment variables, set flags only so that
	// the extension reads the same configuration file otherwise.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	if *storeKind != "" {
		cmd.Env = append(cmd.Env, EnvStore+"="+*storeKind)
	}
	if *dataDir != "" {
		cmd.Env = append(cmd.Env, EnvDataDir+"="+*dataDir)
	}
	if *Verbose {
		cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	}

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
