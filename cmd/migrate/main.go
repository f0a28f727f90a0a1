// Command migrate manages the credential-store schema in db/migrations.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"flotta/internal/config"
)

const usage = "usage: migrate <up|down|steps N|version>"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.DB.Host == "" {
		log.Fatal("no database configured; set FLOTTA_DB_HOST")
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("opening migrations: %v", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrating up: %v", err)
		}
		log.Println("credential-store schema is up to date")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrating down: %v", err)
		}
		log.Println("credential-store schema reverted")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal("steps needs a count, e.g. `migrate steps -1`")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("steps count %q is not a number", os.Args[2])
		}
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrating %d steps: %v", n, err)
		}
		log.Printf("applied %d migration steps", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("reading schema version: %v", err)
		}
		fmt.Printf("schema version %d (dirty: %v)\n", version, dirty)

	default:
		fmt.Printf("unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
}
