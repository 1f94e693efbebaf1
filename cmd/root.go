// =============================================================================
// steam2xml - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself:
//
//   steam2xml <input-file> <output-file>
//
// The direction is chosen from the file extensions:
//   steam2xml loc_english.xml loc_english.vdf   (XML -> VDF)
//   steam2xml loc_english.vdf loc_english.xml   (VDF -> XML)
//
// COBRA CLI STRUCTURE:
//   rootCmd (steam2xml <input> <output>)
//   └── versionCmd (steam2xml version)
//
// EXIT STATUS:
//   0 on success, 1 on any usage, parse or I/O error. Error descriptions are
//   printed to standard output; logs go to standard error.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/steam2xml/internal/config"
	"github.com/ginjaninja78/steam2xml/internal/converter"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// When empty, steam2xml.yaml is read if it exists.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// errWrongArgCount is returned when the command does not get two files.
var errWrongArgCount = errors.New("expected an input and an output file")

const (
	wrongArgCountMessage = "Need an input and an output file!"
	usageExample         = "Example: steam2xml loc_eng.vdf loc_eng.xml"
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts between the achievements XML and Steam VDF formats.
var rootCmd = &cobra.Command{
	Use:   "steam2xml <input-file> <output-file>",
	Short: "Convert Steam achievement localization between XML and VDF",
	Long: `steam2xml converts achievement localization files between an XML
document and the VDF token file used by the Steam client.

  <achievements language="english">          "lang"
    <achievement key="ACH_1">                {
      <name>Win</name>               <->       "Language"  "english"
      <description>Win a game</description>    "Tokens"
    </achievement>                             {
  </achievements>                                "ACH_1_NAME"  "Win"
                                                 "ACH_1_DESC"  "Win a game"
                                               }
                                             }

The conversion direction follows the file extensions (.xml and .vdf).

Example Usage:
  steam2xml loc_english.xml loc_english.vdf
  steam2xml loc_english.vdf loc_english.xml
  steam2xml --config steam2xml.yaml loc_english.vdf loc_english.xml`,

	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errWrongArgCount
		}
		return nil
	},

	// Errors are printed by execute so the output matches the exit status
	// contract; cobra's own "Error:" line and usage dump are disabled.
	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args[0], args[1])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI with the process arguments and returns the exit status.
// This is called by main.main().
func Execute() int {
	return execute(os.Args[1:], os.Stdout)
}

// execute runs the CLI with args and writes user-facing messages to stdout.
func execute(args []string, stdout io.Writer) int {
	cfgFile = ""
	verbose = false

	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)

	if err := rootCmd.Execute(); err != nil {
		reportError(stdout, err)
		return 1
	}
	return 0
}

// reportError prints err the way the user expects to see it.
func reportError(w io.Writer, err error) {
	var usageErr *converter.UsageError

	switch {
	case errors.Is(err, errWrongArgCount):
		fmt.Fprintln(w, wrongArgCountMessage)
		fmt.Fprintln(w, usageExample)
	case errors.As(err, &usageErr):
		fmt.Fprintln(w, usageErr.Reason)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert loads the configuration, sets up logging and runs one conversion.
func runConvert(inputPath, outputPath string) error {
	// Reject bad extension pairs before touching any file.
	if _, err := converter.DetectDirection(inputPath, outputPath); err != nil {
		return err
	}

	path, required := cfgFile, true
	if path == "" {
		path, required = config.DefaultPath, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setupLogging(cfg); err != nil {
		return err
	}

	_, err = converter.Convert(inputPath, outputPath, cfg)
	return err
}

// setupLogging applies the configured log level, or debug with --verbose.
func setupLogging(cfg *config.Config) error {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logging.SetAllLoggers(lvl)
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Path to a YAML configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultPath+" if present)",
	)

	// --verbose flag: Enables debug logging on stderr.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
