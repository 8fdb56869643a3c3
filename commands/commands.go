// Package commands implements the feedpost command line.
package commands

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"feedpost/app/config"
	"feedpost/app/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the released version of the binary.
const Version = "1.0.0"

// ErrNoDatabase is returned by db commands when db_path is empty.
var ErrNoDatabase = errors.New("db_path is empty: the in-memory store has nothing to manage")

type cli struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// Execute runs the command line with args, writing to out.
func Execute(args []string, out io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

// NewRootCommand builds the feedpost command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "feedpost",
		Short: "Social feed post cards with comments",
		Long: `feedpost serves a feed of post cards. Each card shows its author,
content and publication date, and keeps a comment draft and list per
browser session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.logger == nil {
				logger, err := cfg.NewLogger()
				if err != nil {
					return err
				}
				c.logger = logger
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the YAML config file")

	root.AddCommand(
		c.serveCommand(),
		c.seedCommand(),
		c.dbCommand(),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedpost version %s\n", Version)
		},
	}
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the feed web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			timeout, err := c.cfg.GetShutdownTimeout()
			if err != nil {
				return err
			}

			app, err := NewApp(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			if c.cfg.SeedFile != "" {
				if _, err := app.Seed(c.cfg.SeedFile); err != nil {
					return err
				}
			}

			ln, err := net.Listen("tcp", c.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", c.cfg.Addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, ln, app.Router, timeout, c.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")
	return cmd
}

func (c *cli) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Store the posts of a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Seed(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts\n", n)
			return nil
		},
	}
}

func (c *cli) dbCommand() *cobra.Command {
	var yes bool
	db := &cobra.Command{
		Use:   "db",
		Short: "Manage the post database",
	}
	db.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	db.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Initialize a new empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.initDB(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Remove the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.cleanDB(cmd, yes)
			},
		},
		&cobra.Command{
			Use:   "backup [dir]",
			Short: "Create a backup of the database",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := filepath.Join(filepath.Dir(c.cfg.DBPath), "backups")
				if len(args) == 1 {
					dir = args[0]
				}
				return c.backupDB(cmd.OutOrStdout(), dir)
			},
		},
		&cobra.Command{
			Use:   "restore <file>",
			Short: "Restore the database from a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.restoreDB(cmd, args[0], yes)
			},
		},
	)
	return db
}

func (c *cli) dbPath() (string, error) {
	if c.cfg.DBPath == "" {
		return "", ErrNoDatabase
	}
	return c.cfg.DBPath, nil
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	return strings.EqualFold(response, "y")
}

func (c *cli) initDB(out io.Writer) error {
	path, err := c.dbPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(out, "Database already exists. Use 'db clean' first if you want to reinitialize.")
		return nil
	}

	db, err := repositories.OpenDB(path, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

func (c *cli) cleanDB(cmd *cobra.Command, yes bool) error {
	path, err := c.dbPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "Database is already clean (does not exist)")
		return nil
	}

	if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

func (c *cli) backupDB(out io.Writer, dir string) error {
	path, err := c.dbPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "No database exists to backup")
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := repositories.OpenDB(path, c.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}

	c.logger.Info("database backed up", zap.String("file", backupFile))
	fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
	return nil
}

func (c *cli) restoreDB(cmd *cobra.Command, backupFile string, yes bool) error {
	path, err := c.dbPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	if _, err := os.Stat(path); err == nil {
		if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(out, "Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := repositories.OpenDB(path, c.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(out, "Database restored successfully")
	return nil
}
