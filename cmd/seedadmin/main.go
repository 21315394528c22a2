// Command seedadmin creates the first admin account against the configured
// database. The public signup endpoint never grants the admin role, so a
// fresh deployment runs this once before anything else.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/server/config"
	"github.com/mbenali/campushub/internal/server/repositories/repomanager"
	"github.com/mbenali/campushub/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Admin email:")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	fmt.Println("Admin name:")
	name, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	fmt.Println("Password:")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	svc := services.NewAuthService(db, m, cfg)

	user, err := svc.SignUp(ctx, services.SignUpParams{
		Name:     name,
		Email:    email,
		Password: string(password),
		Role:     "admin",
	})
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}

	fmt.Printf("Created admin %s (id=%s)\n", user.Email, user.ID)
	return nil
}
