package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"promptboard/internal/board/kv"
	"promptboard/internal/board/store"
	"promptboard/internal/config"
	"promptboard/internal/logs"
)

// TUIFunc runs the interactive board on an opened store
type TUIFunc func(st *store.Store) error

// app carries what the commands share once the store is open
type app struct {
	cfg    *config.Config
	store  *store.Store
	runTUI TUIFunc
}

// Run executes the CLI with the given arguments and returns the exit code.
// With no subcommand the TUI is launched.
func Run(args []string, runTUI TUIFunc, stdout, stderr io.Writer) int {
	a := &app{runTUI: runTUI}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := a.close(); closeErr != nil {
		fmt.Fprintf(stderr, "Error saving cards: %v\n", closeErr)
		if err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "promptboard",
		Short: "A board of prompt cards, saved locally",
		Long: `promptboard keeps a board of short text prompts.
Each card is edited, saved and removed on its own; the whole board is
written to local storage after every change.

Running promptboard without arguments launches the interactive TUI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.runTUI == nil {
				return errors.New("no interactive mode available")
			}
			logs.Logger.Info("starting app in TUI mode")
			return a.runTUI(a.store)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.listCmd(),
		a.addCmd(),
		a.setCmd(),
		a.rmCmd(),
		a.statsCmd(),
		a.exportCmd(),
		a.importCmd(),
	)

	return root
}

// open resolves config and opens the store. A backend that cannot be opened
// is replaced by an in-memory one so the board still comes up.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create config file: %v\n", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create data dir: %v\n", err)
	} else if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}

	backend, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		logs.Logger.Errorw("storage backend unavailable, using memory", "backend", cfg.Backend, "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; changes will not be kept\n", err)
		backend = kv.NewMemoryStore()
	}

	a.store = store.Open(backend, store.WithKey(cfg.StorageKey))
	return nil
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	logs.Close()
	return err
}
