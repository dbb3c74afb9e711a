package flagparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
)

// usageOutput receives help and usage text. Tests swap it out.
var usageOutput io.Writer = os.Stderr

// cliFlags holds pointers to all possible command-line flags.
// Fields are pointers so we can distinguish between "not registered for this command" (nil)
// and "registered but not set by user" (non-nil pointer to zero value).
type cliFlags struct {
	// Global
	LogLevel     *string
	Quiet        *bool
	DryRun       *bool
	Metrics      *bool
	ConfigPath   *string
	BufferSizeKB *int

	// Shared: Chunks / Extract / Join
	Overwrite *bool

	// Shared: Chunks / Extract
	CompressionFormat *string
	CompressionLevel  *string
}

// positional describes one positional argument of a command.
type positional struct {
	name     string
	optional bool
	parse    func(string) (any, error)
}

func parsePath(s string) (any, error)     { return ParseAbsolutePath(s) }
func parseNumber(s string) (any, error)   { return ParseNumber(s) }
func parseTerminus(s string) (any, error) { return ParseEndOrLen(s) }

var commandPositionals = map[Command][]positional{
	Chunks: {
		{name: "path", parse: parsePath},
		{name: "chunk-size", parse: parseNumber},
	},
	Extract: {
		{name: "path", parse: parsePath},
		{name: "output-path", parse: parsePath},
		{name: "start", parse: parseNumber},
		{name: "end-or-len", optional: true, parse: parseTerminus},
	},
	Join: {
		{name: "path", parse: parsePath},
		{name: "output-path", parse: parsePath},
	},
}

var commandDescriptions = map[Command]string{
	Chunks:  "Split a binary file into fixed-size chunks named <file>-00, <file>-01, ... next to it.",
	Extract: "Extract a section of a file. <end_or_len> is an end offset, or a length when prefixed with \"+\".\nOmit it to extract up to the end of the file. Numbers may be hexadecimal with a \"0x\" prefix.",
	Join:    "Join the chunks <file>-00, <file>-01, ... back into a single file.",
}

var commandSynopsis = map[Command]string{
	Chunks:  "<path> <chunk_size>",
	Extract: "<path> <output_path> <start> [end_or_len]",
	Join:    "<path> <output_path>",
}

func registerGlobalFlags(fs *pflag.FlagSet, f *cliFlags) {
	f.LogLevel = fs.String("log-level", "notice", "Set the logging level: 'debug', 'notice', 'info', 'warn', 'error'.")
	f.Quiet = fs.BoolP("quiet", "q", false, "Only log warnings and errors.")
	f.DryRun = fs.Bool("dry-run", false, "Show what would be written without creating any files.")
	f.Metrics = fs.Bool("metrics", false, "Log a summary of files and bytes written.")
	f.ConfigPath = fs.String("config", "", "Path to a JSON configuration file.")
	f.BufferSizeKB = fs.Int("buffer-size-kb", 0, "Size of the copy buffer in kilobytes.")
}

func registerOverwriteFlag(fs *pflag.FlagSet, f *cliFlags) {
	f.Overwrite = fs.BoolP("overwrite", "f", false, "Overwrite output file if it already exists.")
}

func registerCompressionFlags(fs *pflag.FlagSet, f *cliFlags) {
	f.CompressionFormat = fs.String("compression-format", "", "Compress written files: 'none', 'gzip', or 'zstd'.")
	f.CompressionLevel = fs.String("compression-level", "", "Compression level: 'default', 'fastest', 'better', 'best'.")
}

// Parse parses the provided arguments (usually os.Args[1:]) and returns the command and a map
// holding the explicitly set flags and the parsed positional arguments.
// A nil map together with a nil error means help was printed and there is nothing to run.
func Parse(args []string) (Command, map[string]interface{}, error) {
	if len(args) == 0 {
		printTopLevelUsage(usageOutput)
		return None, nil, nil
	}

	cmdStr := strings.ToLower(args[0])
	if cmdStr == "help" || cmdStr == "-h" || cmdStr == "-help" || cmdStr == "--help" {
		printTopLevelUsage(usageOutput)
		return None, nil, nil
	}

	command, err := ParseCommand(cmdStr)
	if err != nil {
		return None, nil, err
	}
	if command == Version {
		return Version, nil, nil
	}

	f := &cliFlags{}
	fs := pflag.NewFlagSet(command.String(), pflag.ContinueOnError)
	fs.SetOutput(usageOutput)
	fs.SortFlags = false

	registerOverwriteFlag(fs, f)
	if command == Chunks || command == Extract {
		registerCompressionFlags(fs, f)
	}
	registerGlobalFlags(fs, f)

	fs.Usage = func() {
		printSubcommandUsage(usageOutput, command, fs)
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return None, nil, nil
		}
		return command, nil, &failure.Error{Kind: failure.InvalidArgument, Msg: fmt.Sprintf("invalid arguments for %s", command), Err: err}
	}

	flagMap, err := flagsToMap(fs, f)
	if err != nil {
		return command, nil, err
	}
	if err := positionalsToMap(command, fs.Args(), flagMap); err != nil {
		return command, nil, err
	}
	return command, flagMap, nil
}

func positionalsToMap(c Command, args []string, flagMap map[string]interface{}) error {
	want := commandPositionals[c]

	required := 0
	for _, p := range want {
		if !p.optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(want) {
		return failure.New(failure.InvalidArgument,
			"%s expects %s, got %d argument(s)", c, commandSynopsis[c], len(args))
	}

	for i, raw := range args {
		v, err := want[i].parse(raw)
		if err != nil {
			return fmt.Errorf("argument <%s>: %w", want[i].name, err)
		}
		flagMap[want[i].name] = v
	}
	return nil
}

func flagsToMap(fs *pflag.FlagSet, f *cliFlags) (map[string]interface{}, error) {
	// Only flags the user explicitly set end up in the map so they can
	// selectively override the loaded configuration.
	usedFlags := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) { usedFlags[f.Name] = true })

	flagMap := make(map[string]any)

	addIfUsed(flagMap, usedFlags, "log-level", f.LogLevel)
	addIfUsed(flagMap, usedFlags, "quiet", f.Quiet)
	addIfUsed(flagMap, usedFlags, "dry-run", f.DryRun)
	addIfUsed(flagMap, usedFlags, "metrics", f.Metrics)
	addIfUsed(flagMap, usedFlags, "config", f.ConfigPath)
	addIfUsed(flagMap, usedFlags, "buffer-size-kb", f.BufferSizeKB)
	addIfUsed(flagMap, usedFlags, "overwrite", f.Overwrite)
	addIfUsed(flagMap, usedFlags, "compression-format", f.CompressionFormat)
	addIfUsed(flagMap, usedFlags, "compression-level", f.CompressionLevel)

	if path, ok := flagMap["config"].(string); ok {
		abs, err := ParseAbsolutePath(path)
		if err != nil {
			return nil, fmt.Errorf("flag --config: %w", err)
		}
		flagMap["config"] = abs
	}
	return flagMap, nil
}

// addIfUsed adds the value of ptr to flagMap if ptr is not nil and the flag was set.
func addIfUsed[T any](flagMap map[string]interface{}, usedFlags map[string]bool, name string, ptr *T) {
	if ptr != nil && usedFlags[name] {
		flagMap[name] = *ptr
	}
}

// printTopLevelUsage prints the main help message.
func printTopLevelUsage(w io.Writer) {
	execName := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "%s(%s) ", buildinfo.Name, buildinfo.Version)
	fmt.Fprintf(w, "Split binary files into chunks or cut out byte ranges.\n\n")
	fmt.Fprintf(w, "Usage: %s <command> [arguments] [flags]\n\n", execName)
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  chunks      Split binary file into chunks\n")
	fmt.Fprintf(w, "  extract     Extract section of file\n")
	fmt.Fprintf(w, "  join        Join chunks back into one file\n")
	fmt.Fprintf(w, "  version     Print the application version\n")
	fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", execName)
}

// printSubcommandUsage prints the help message for a specific subcommand.
func printSubcommandUsage(w io.Writer, command Command, fs *pflag.FlagSet) {
	execName := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "%s(%s)\n\n", buildinfo.Name, buildinfo.Version)
	fmt.Fprintf(w, "Usage: %s %s %s [flags]\n\n", execName, command, commandSynopsis[command])
	fmt.Fprintf(w, "%s\n\n", commandDescriptions[command])
	fmt.Fprintf(w, "Flags:\n")
	fmt.Fprint(w, fs.FlagUsages())
}
