// Command admin-user manages admin panel accounts.
//
//	admin-user create -email a@b.es -name "Ana" -password secret [-role admin|editor]
//	admin-user passwd -email a@b.es -password secret
//	admin-user deactivate -email a@b.es
//	admin-user activate -email a@b.es
//	admin-user hash -password secret
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/config"
	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/util"
)

const minPasswordLength = 12

var errUsage = errors.New("usage: admin-user <create|passwd|deactivate|activate|hash> [flags]")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(context.Background(), os.Args[1:], os.Stdout, openUsers); err != nil {
		log.Fatal().Err(err).Msg("admin-user failed")
	}
}

// openUsers connects to DATABASE_URL and returns the repository plus a closer.
func openUsers() (repository.AdminUserRepository, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return repository.NewAdminUserRepository(db.DB), db.Close, nil
}

type usersOpener func() (repository.AdminUserRepository, func() error, error)

func run(ctx context.Context, args []string, out io.Writer, open usersOpener) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd := args[0]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "plain-text password")
	role := fs.String("role", string(model.RoleAdmin), "admin or editor")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch cmd {
	case "hash":
		hash, err := hashPassword(*password)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hash)
		return nil
	case "create", "passwd", "deactivate", "activate":
	default:
		return errUsage
	}

	if strings.TrimSpace(*email) == "" {
		return errors.New("-email is required")
	}
	addr := strings.ToLower(strings.TrimSpace(*email))

	users, closeDB, err := open()
	if err != nil {
		return err
	}
	defer closeDB()

	switch cmd {
	case "create":
		r := model.Role(*role)
		if !r.Valid() {
			return fmt.Errorf("invalid role %q", *role)
		}
		if strings.TrimSpace(*name) == "" {
			return errors.New("-name is required")
		}
		hash, err := hashPassword(*password)
		if err != nil {
			return err
		}
		user, err := users.Create(ctx, model.CreateAdminUserParams{
			Email:        addr,
			PasswordHash: hash,
			Name:         strings.TrimSpace(*name),
			Role:         r,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(out, "created %s (%s) %s\n", user.Email, user.Role, user.ID)

	case "passwd":
		hash, err := hashPassword(*password)
		if err != nil {
			return err
		}
		return report(out, addr, "password updated")(users.UpdatePassword(ctx, addr, hash))

	case "deactivate":
		return report(out, addr, "deactivated")(users.SetActive(ctx, addr, false))

	case "activate":
		return report(out, addr, "activated")(users.SetActive(ctx, addr, true))
	}
	return nil
}

func report(out io.Writer, email, done string) func(bool, error) error {
	return func(found bool, err error) error {
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no account for %s", email)
		}
		fmt.Fprintf(out, "%s: %s\n", email, done)
		return nil
	}
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("-password must be at least %d characters", minPasswordLength)
	}
	return util.HashPassword(password)
}
