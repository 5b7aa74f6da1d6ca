package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, tools, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrExitEarly is returned by [ParseArgs] after --help or --version has been
// printed. Callers should exit with status 0.
var ErrExitEarly = errors.New("exit requested")

// ParseFlags parses os.Args into cfg. See [ParseArgs].
func ParseFlags(cfg *Config, version string) error {
	return ParseArgs(cfg, version, os.Args[1:], os.Stderr)
}

// ParseArgs parses args into cfg. When --config is given, the YAML file is
// applied first for every key whose flag was not set explicitly. Help and
// version output go to out.
func ParseArgs(cfg *Config, version string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("img2mp4", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(out, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineEncodingFlags(fs, cfg)
	defineToolFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, version)
			return ErrExitEarly
		}
		return err
	}

	if negated.showHelp {
		printUsage(out, version)
		return ErrExitEarly
	}
	if negated.showVersion {
		fmt.Fprintln(out, "img2mp4 v"+version)
		return ErrExitEarly
	}

	if cfg.ConfigFile != "" {
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		if err := fc.Apply(cfg, explicit); err != nil {
			return err
		}
	}

	applyNegatedFlags(cfg, &negated)
	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineEncodingFlags registers -o/--output, -r/--fps, -q/--quality, --preset.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output MP4 path")
	fs.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "Same as --output")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second")
	fs.IntVar(&cfg.FPS, "r", cfg.FPS, "Same as --fps")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "CRF quality (18-28)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "x264 preset (e.g. fast, medium)")
}

// defineToolFlags registers --ffmpeg, --ffprobe and --config.
func defineToolFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "Path to the ffmpeg binary")
	fs.StringVar(&cfg.FFprobePath, "ffprobe", cfg.FFprobePath, "Path to the ffprobe binary")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML file with default settings")
}

// defineBehaviorFlags registers -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Scan and report only; do not encode")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input_dir (got %d arguments)", len(args))
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(out io.Writer, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "img2mp4 v" + version + " - turn a folder of images into an MP4"},
		{"", ""},
		{"  img2mp4 [OPTIONS] <input_dir>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -o, --output <path>", "Output file (default: <input_dir>/" + DefaultOutputName + ")"},
		{"  -r, --fps <n>", "Frames per second (default: 25)"},
		{"  -q, --quality <n>", fmt.Sprintf("CRF %d-%d, lower is better (default: 23)", QualityMin, QualityMax)},
		{"  --preset <name>", "x264 preset (default: fast)"},
		{"", ""},
		{"Tools", ""},
		{"  --ffmpeg <path>", "ffmpeg binary (default: $FFMPEG_PATH or ffmpeg)"},
		{"  --ffprobe <path>", "ffprobe binary (default: $FFPROBE_PATH or ffprobe)"},
		{"  --config <file>", "YAML defaults; flags take precedence"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Scan and report only; do not encode"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, libx264, ffprobe)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(out)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(out, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(out, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(out, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so ColorMode can be parsed from the YAML file with the
// same rules as the enum flags.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
