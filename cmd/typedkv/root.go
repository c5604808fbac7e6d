package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/typedkv"
	"github.com/arloliu/typedkv/config"
	"github.com/arloliu/typedkv/store"
)

// app is the state shared by the subcommands once the root command has run.
type app struct {
	cfg    *config.Config
	store  *store.FileStore
	codec  *typedkv.Codec
	logger *slog.Logger
	closer io.Closer
	out    io.Writer
}

type rootFlags struct {
	configDir   string
	file        string
	compression string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)

	cmd := &cobra.Command{
		Use:          "typedkv",
		Short:        "Inspect and edit typed values in a typedkv store",
		Long:         `Read, write and classify typed values stored in a schema-less int/float/string snapshot file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, flags)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", ".", "directory holding typedkv.yaml")
	pf.StringVarP(&flags.file, "file", "f", "", "snapshot file (overrides config)")
	pf.StringVar(&flags.compression, "compression", "", "snapshot compression: none, zstd, s2, lz4 (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(
		newSetCmd(&a),
		newGetCmd(&a),
		newScanCmd(&a),
		newDeleteCmd(&a),
		newImportCmd(&a),
	)

	return cmd
}

func (a *app) open(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(flags.configDir)
	if err != nil {
		return err
	}

	if flags.file != "" {
		cfg.File = flags.file
	}
	if flags.compression != "" {
		cfg.Compression = flags.compression
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	compression, _ := cfg.CompressionType() // validated above
	st, err := store.Open(cfg.File,
		store.WithCompression(compression),
		store.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return fmt.Errorf("open store: %w", err)
	}

	codec, err := typedkv.New(st,
		typedkv.WithLogger(logger),
		typedkv.WithQuaternionTolerance(cfg.Detect.QuaternionTolerance),
	)
	if err != nil {
		_ = closer.Close()
		return err
	}

	*a = app{
		cfg:    cfg,
		store:  st,
		codec:  codec,
		logger: logger,
		closer: closer,
		out:    cmd.OutOrStdout(),
	}

	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}

	return a.closer.Close()
}

// save flushes the store after a mutating command.
func (a *app) save() error {
	if err := a.codec.Save(); err != nil {
		return fmt.Errorf("save %s: %w", a.store.Path(), err)
	}
	a.logger.Debug("store saved", slog.String("file", a.store.Path()), slog.Int("keys", a.store.Len()))

	return nil
}
