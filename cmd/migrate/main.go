package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
)

// Usage:
//
//	migrate              apply pending migrations
//	migrate down         roll back one migration
//	migrate force <ver>  mark a dirty schema as clean at version ver
//	migrate version      print the current version
func main() {
	cfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	m, err := db.OpenMigrator(cfg.BuildDSN())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _, _ = m.Close() }()

	cmd := ""
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("force version: %v", err)
		}
		fmt.Printf("forced version to %d\n", version)
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate down: %v", err)
		}
		fmt.Println("rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("version: %v", err)
		}
		fmt.Printf("version %d (dirty=%t)\n", version, dirty)
	case "", "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate up: %v", err)
		}
		fmt.Println("migrations complete")
	default:
		log.Fatalf("unknown command %q", cmd)
	}
}
