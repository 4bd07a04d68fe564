package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/Sohelnm1/HCS-BookingService/internal/config"
	"github.com/Sohelnm1/HCS-BookingService/migrations"
)

// Применяет встроенные миграции к базе из config.toml.
// Использование: migrate [up|down]
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		fmt.Printf("Failed to load migrations: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.DBName, cfg.Database.SSLMode)

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		fmt.Printf("Failed to initialize migrate: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		fmt.Printf("Unknown direction %q, expected up or down\n", direction)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Migrations %s applied successfully\n", direction)
}
