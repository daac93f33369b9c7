package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/mfridman/xflag"
	"github.com/pressly/settler"
	"github.com/pressly/settler/database"
	"github.com/pressly/settler/lock"
)

const (
	envKeyDriver       = "SETTLER_DRIVER"
	envKeyDBString     = "SETTLER_DBSTRING"
	envKeyMigrationDir = "SETTLER_MIGRATION_DIR"
	envKeyTable        = "SETTLER_TABLE"

	defaultMigrationDir = "migrations"
)

// version is set with -ldflags "-X main.version=..." in release builds.
var version string

func main() {
	log.SetFlags(0)
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("settler: %v", err)
	}
}

type options struct {
	dir       string
	driver    string
	dbstring  string
	table     string
	verbose   bool
	useLock   bool
	noTx      bool
	envSubst  bool
	minLength int
	json      bool
	timeout   time.Duration
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("settler", flag.ContinueOnError)
	flags.Usage = func() { usage(flags) }
	var opts options
	flags.StringVar(&opts.dir, "dir", "", "directory with migration files (default \"migrations\")")
	flags.StringVar(&opts.driver, "driver", "", "database driver or dialect")
	flags.StringVar(&opts.dbstring, "dbstring", "", "connection string")
	flags.StringVar(&opts.table, "table", "", "revision table name (default \"migration\")")
	flags.BoolVar(&opts.verbose, "v", false, "log timing for each migration")
	flags.BoolVar(&opts.useLock, "lock", false, "hold a session advisory lock while migrating (postgres only)")
	flags.BoolVar(&opts.noTx, "no-tx", false, "do not wrap each migration and its revision write in a transaction")
	flags.BoolVar(&opts.envSubst, "env-sub", false, "expand environment variables in migration SQL")
	flags.IntVar(&opts.minLength, "min-length", 0, "reject migrations with a do or undo section shorter than this")
	flags.BoolVar(&opts.json, "json", false, "log as JSON")
	flags.DurationVar(&opts.timeout, "timeout", 0, "maximum time to run the command, 0 for no limit")
	envFile := flags.String("env", ".env", "load environment variables from file, \"none\" to disable")
	versionFlag := flags.Bool("version", false, "print version")

	if err := xflag.ParseToEnd(flags, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse args: %w", err)
	}
	if *versionFlag {
		fmt.Fprintln(stdout, buildVersion())
		return nil
	}
	if *envFile != "none" {
		if _, err := os.Stat(*envFile); err == nil {
			if err := godotenv.Load(*envFile); err != nil {
				return fmt.Errorf("failed to load env file: %w", err)
			}
		}
	}
	opts.dir = firstNonEmpty(opts.dir, os.Getenv(envKeyMigrationDir), defaultMigrationDir)
	opts.driver = firstNonEmpty(opts.driver, os.Getenv(envKeyDriver))
	opts.dbstring = firstNonEmpty(opts.dbstring, os.Getenv(envKeyDBString))
	opts.table = firstNonEmpty(opts.table, os.Getenv(envKeyTable), settler.DefaultTablename)

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errors.New("missing command")
	}
	command, cmdArgs := rest[0], rest[1:]

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	// Commands that only touch the migrations directory.
	switch command {
	case "version":
		fmt.Fprintln(stdout, buildVersion())
		return nil
	case "env":
		printEnv(stdout, opts)
		return nil
	case "new":
		if len(cmdArgs) != 1 {
			return errors.New("new requires exactly one argument: NAME")
		}
		path, err := settler.CreateMigration(opts.dir, cmdArgs[0])
		if err != nil {
			return err
		}
		newLogger(opts).Printf("Created %s", path)
		return nil
	case "validate":
		set, err := settler.LoadMigrationSet(nil, opts.dir, parserOptions(opts))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d migrations in %s, highest revision %d\n", set.Len(), opts.dir, set.HighestRevision())
		return nil
	case "check", "update", "undo", "status":
	default:
		flags.Usage()
		return fmt.Errorf("unknown command: %q", command)
	}

	if opts.driver == "" || opts.dbstring == "" {
		return fmt.Errorf("%s requires -driver and -dbstring, or %s and %s", command, envKeyDriver, envKeyDBString)
	}
	dialect, err := database.ParseDialect(opts.driver)
	if err != nil {
		return fmt.Errorf("%w: %q", err, opts.driver)
	}
	db, err := openDB(ctx, opts.driver, dialect, opts.dbstring)
	if err != nil {
		return err
	}
	defer db.Close()

	switch dialect {
	case database.DialectSpanner, database.DialectClickHouse, database.DialectYdB:
		// DDL cannot run inside a transaction on these databases.
		opts.noTx = true
	}
	mgr, err := settler.NewManager(dialect, db, opts.dir,
		settler.WithLogger(newLogger(opts)),
		settler.WithVerbose(opts.verbose),
		settler.WithTableName(opts.table),
		settler.WithTransactions(!opts.noTx),
		settler.WithEnvSubstitution(opts.envSubst),
		settler.WithMinSectionLength(opts.minLength),
	)
	if err != nil {
		return err
	}

	if opts.useLock && command != "check" && command != "status" {
		if dialect != database.DialectPostgres {
			return fmt.Errorf("-lock is only supported with postgres, got %s", dialect)
		}
		unlock, err := acquireLock(ctx, db)
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(); err != nil {
				log.Printf("failed to release lock: %v", err)
			}
		}()
	}

	switch command {
	case "check":
		_, err = mgr.Check(ctx)
	case "update":
		_, err = mgr.Update(ctx)
	case "undo":
		_, err = mgr.Undo(ctx)
	case "status":
		err = printStatus(ctx, stdout, mgr)
	}
	return err
}

func acquireLock(ctx context.Context, db *sql.DB) (func() error, error) {
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection for lock: %w", err)
	}
	if err := locker.SessionLock(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return func() error {
		// The lock is dropped with the session if unlocking fails.
		return errors.Join(locker.SessionUnlock(context.Background(), conn), conn.Close())
	}, nil
}

func newLogger(opts options) settler.Logger {
	if opts.json {
		return settler.SlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	return log.Default()
}

func parserOptions(opts options) settler.ParserOptions {
	return settler.ParserOptions{
		MinSectionLength: opts.minLength,
		EnvSubstitution:  opts.envSubst,
	}
}

func printStatus(ctx context.Context, w io.Writer, mgr *settler.Manager) error {
	status, err := mgr.Status(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "    State\tMigration")
	fmt.Fprintln(tw, "    =====\t=========")
	for _, s := range status {
		fmt.Fprintf(tw, "    %s\t%s\n", s.State, s.Migration.Filename)
	}
	return tw.Flush()
}

func printEnv(w io.Writer, opts options) {
	for _, kv := range [][2]string{
		{envKeyDriver, opts.driver},
		{envKeyDBString, opts.dbstring},
		{envKeyMigrationDir, opts.dir},
		{envKeyTable, opts.table},
	} {
		fmt.Fprintf(w, "%s=%q\n", kv[0], kv[1])
	}
}

func buildVersion() string {
	if version != "" {
		return "settler version: " + version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return "settler version: " + info.Main.Version
	}
	return "settler version: (devel)"
}

// firstNonEmpty returns the first non-empty string from the provided input or an empty string if
// all are empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func usage(flags *flag.FlagSet) {
	fmt.Fprint(flags.Output(), usagePrefix)
	flags.PrintDefaults()
	fmt.Fprint(flags.Output(), strings.TrimPrefix(usageCommands, "\n"))
}

var (
	usagePrefix = `Usage: settler [OPTIONS] COMMAND

Connection settings come from flags or the environment (flags win):
    SETTLER_DRIVER, SETTLER_DBSTRING, SETTLER_MIGRATION_DIR, SETTLER_TABLE

Drivers:
    postgres (pgx), redshift, mysql, mymysql, tidb, sqlite3 (sqlite), mssql (sqlserver),
    clickhouse, vertica, ydb, turso (libsql), spanner

Examples:
    settler -driver sqlite3 -dbstring ./foo.db check
    settler -driver sqlite3 -dbstring ./foo.db update
    settler new add_users
    SETTLER_DRIVER=postgres SETTLER_DBSTRING="user=postgres dbname=postgres sslmode=disable" settler undo -lock

Options:
`

	usageCommands = `
Commands:
    check        Print the database revision and the highest migration revision
    update       Apply all migrations above the database revision
    undo         Revert the migration at the database revision
    new NAME     Create an empty migration after the highest revision
    status       List every migration as applied or pending
    validate     Parse the migrations directory without connecting
    version      Print the settler version
    env          Print the resolved environment settings
`
)
