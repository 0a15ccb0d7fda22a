// Command nstrack-admin runs operator tasks against the NSTrack database.
//
//	nstrack-admin -list-users
//	nstrack-admin -reset-token user@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
	"github.com/Xaan1506/NSTrack-Backend/internal/util"
)

type options struct {
	listUsers  bool
	resetEmail string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("nstrack-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.BoolVar(&opts.listUsers, "list-users", false, "print every user as \"name | email\"")
	fs.StringVar(&opts.resetEmail, "reset-token", "", "mint a password reset token for `email`")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.listUsers == (opts.resetEmail != "") {
		fs.Usage()
		return nil, fmt.Errorf("exactly one of -list-users or -reset-token is required")
	}

	return opts, nil
}

func run(ctx context.Context, svcs *service.Services, opts *options, stdout io.Writer) error {
	if opts.listUsers {
		users, err := svcs.Users.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Fprintf(stdout, "%s | %s\n", u.Name, u.Email)
		}
		return nil
	}

	reset, err := svcs.Resets.IssueResetToken(ctx, opts.resetEmail)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "token: %s\nexpires: %s\n", reset.Token, reset.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintln(stderr, "invalid configuration:", err)
		return 1
	}

	logger := util.GetLogger(cfg.SlogLevel(), cfg.GinMode)

	dep, err := dependency.InitDependency(cfg, logger)
	if err != nil {
		logger.Error("failed to init dependency", "err", err)
		return 1
	}
	defer dependency.CloseDependency(dep)

	svcs, err := service.NewServices(dep)
	if err != nil {
		logger.Error("failed to init services", "err", err)
		return 1
	}

	if err := run(context.Background(), svcs, opts, stdout); err != nil {
		logger.Error("command failed", "err", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
