package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/kdimtricp/specpair/internal/database"
	"github.com/kdimtricp/specpair/internal/logging"
)

func main() {
	var (
		dbPath         = flag.String("db", "./specpair.db", "Path to the SQLite catalog")
		migrationsPath = flag.String("migrations", "", "Path to migrations directory (default: built-in schema)")
		status         = flag.Bool("status", false, "Show migration status only")
	)
	flag.Parse()

	logger := logging.NewLogger("specpair-migrate", logging.GetLogLevel(), os.Stderr)

	if env := os.Getenv("DB_PATH"); env != "" {
		*dbPath = env
	}

	db, err := database.NewDB(database.Config{SQLitePath: *dbPath})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var fsys fs.FS
	if *migrationsPath != "" {
		fsys = os.DirFS(*migrationsPath)
	}
	migrator := database.NewMigrator(db.Conn(), fsys, logger)

	if *status {
		if err := printStatus(migrator); err != nil {
			logger.Error("failed to read migration status", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := migrator.Run(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	fmt.Println("Migrations completed successfully!")
}

func printStatus(migrator *database.Migrator) error {
	if err := migrator.Initialize(); err != nil {
		return err
	}

	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		return err
	}

	migrations, err := migrator.LoadMigrations()
	if err != nil {
		return err
	}

	fmt.Println("Migration Status:")
	fmt.Println("=================")
	for _, m := range migrations {
		status := "pending"
		if applied[m.Version] {
			status = "applied"
		}
		fmt.Printf("%s - %s [%s]\n", m.Version, m.Name, status)
	}
	return nil
}
