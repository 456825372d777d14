package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
	"github.com/ttrash/tt/internal/config"
	"github.com/ttrash/tt/internal/debug"
	"github.com/ttrash/tt/internal/env"
	"github.com/ttrash/tt/internal/trash"
	"github.com/ttrash/tt/internal/utils/log"
)

type Option struct {
	Config string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
	Mounts  bool   `long:"mounts" description:"List mount points, most specific first"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version    Version
	option     Option
	config     config.Config
	runID      string
	stdout     io.Writer
	mountTable trash.MountTable
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

// Run parses argv (without the program name) and executes the command
func Run(ctx context.Context, v Version, argv []string) error {
	return run(ctx, v, argv, os.Stdout)
}

func run(ctx context.Context, v Version, argv []string, stdout io.Writer) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] files..."
	args, err := parser.ParseArgs(argv)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return nil
		}
		return &FlagError{Err: err}
	}

	// nothing is logged until the config says where to
	if _, err := log.New(log.UseOutput(io.Discard), log.AsDefault()); err != nil {
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	if err := setupLogger(cfg.Logging); err != nil {
		return err
	}

	defer slog.Debug("tt finished")
	slog.Debug("tt started", "version", v.Version, "revision", v.Revision, "args", args)

	c := CLI{
		version:    v,
		option:     opt,
		config:     cfg,
		runID:      runID(),
		stdout:     stdout,
		mountTable: trash.SystemMountTable{},
	}

	if err := c.Run(ctx, args); err != nil {
		slog.Error("exit", "error", err)
		return err
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return &config.ParseError{Err: err}
	}
	formatter, err := log.ParseFormatter(cfg.Format)
	if err != nil {
		return &config.ParseError{Err: err}
	}

	_, err = log.New(
		log.UseLevel(level),
		log.UseFormatter(formatter),
		log.UseReportCaller(true),
		log.UseRotatingFile(env.TT_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles),
		log.UseAttrs("run_id", runID()),
		log.AsDefault(),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}

func (c CLI) Run(ctx context.Context, args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil

	case c.option.Meta.Mounts:
		return c.Mounts()

	case c.option.Meta.Debug != "":
		return debug.Logs(ctx, c.stdout, env.TT_LOG_PATH,
			c.config.Logging.Enabled, c.option.Meta.Debug == "live")

	default:
		return c.Put(args)
	}
}

// newManager builds the trash manager from the environment and the config
func (c CLI) newManager() (*trash.Manager, error) {
	homeTrash, err := c.config.Core.ResolveHomeTrashDir()
	if err != nil {
		return nil, err
	}
	if homeTrash == "" {
		home, err := env.HomeDir()
		if err != nil {
			return nil, err
		}
		homeTrash = env.HomeTrashPath(home)
	}

	protect := c.config.Core.Protect
	return trash.NewManager(trash.Config{
		HomeTrashDir: homeTrash,
		UID:          os.Getuid(),
		MountTable:   c.mountTable,
		Guard: trash.GuardOptions{
			Files:    protect.Files,
			Patterns: protect.Patterns,
			Globs:    protect.Globs,
		},
	})
}

func (c CLI) verbose() bool {
	return c.option.Rm.Verbose || c.config.Core.Verbose
}
