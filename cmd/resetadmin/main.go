package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"gitlab.com/thinkfirst.net/internal/adapter/crypto"
	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/adapter/postgres"
	"gitlab.com/thinkfirst.net/internal/adapter/postgres/adminrepository"
	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/core/services/auth"
	"gitlab.com/thinkfirst.net/internal/static/errs"
)

const (
	exitUsage        = 1
	exitMissingAdmin = 2
	exitFailure      = 3
)

func main() {
	cmd := &cli.Command{
		Name:  "resetadmin",
		Usage: "reset an admin password, optionally creating the admin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "admin email"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "new password, prompted for when omitted"},
			&cli.BoolFlag{Name: "create", Aliases: []string{"c"}, Usage: "create a superadmin when none exists"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "env file to load before reading config"},
		},
		Action: run,

		// exit codes are handled below
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			color.New(color.FgRed).Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.ExitCode())
		}
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	email, password := cmd.String("email"), cmd.String("password")
	if email != "" && password == "" {
		password = promptPassword()
	}
	if email == "" || password == "" {
		return cli.Exit("usage: resetadmin --email <email> --password <password> [--create]", exitUsage)
	}
	_ = godotenv.Load(cmd.String("env-file"))

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(true)
	defer logger.Sync()

	db, err := postgres.Open(ctx, sysCfg.DatabaseConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("database: %v", err), exitFailure)
	}
	defer db.Close()

	adminPort := adminrepository.New(db, logger, sysCfg.DatabaseConfig.Schema)
	authSvc := auth.NewOTPAuthService(adminPort, nil, nil, crypto.NewJWTService(sysCfg.JwtConfig), logger,
		sysCfg.OTPConfig, sysCfg.ServerConfig)

	created, err := authSvc.ResetPassword(ctx, email, password, cmd.Bool("create"))
	switch {
	case errors.Is(err, errs.AdminNotFound):
		return cli.Exit(fmt.Sprintf("no admin with email %s, pass --create to add one", email), exitMissingAdmin)
	case err != nil:
		return cli.Exit(fmt.Sprintf("reset failed: %v", err), exitFailure)
	case created:
		color.Green("Created superadmin %s", email)
	default:
		color.Green("Password updated for %s", email)
	}
	return nil
}

// promptPassword reads a password without echo. It returns "" when no terminal is attached.
func promptPassword() string {
	rl, err := readline.New("")
	if err != nil {
		return ""
	}
	defer rl.Close()
	pwd, err := rl.ReadPassword("New password: ")
	if err != nil {
		return ""
	}
	return string(pwd)
}
