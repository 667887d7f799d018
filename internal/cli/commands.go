package cli

import (
	"context"
	"fmt"
	"os"
)

func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error
	switch command {
	case "today":
		err = c.runToday()
	case "apps":
		err = c.runApps(args)
	case "search":
		err = c.runSearch(args)
	case "top":
		err = c.runTop(args)
	case "badge":
		err = c.runBadge(args)
	case "download":
		err = c.runDownload(args)
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "reset-password":
		err = c.runResetPassword(ctx)
	case "theme":
		err = c.runTheme(ctx, args)
	case "admin":
		err = c.runAdmin(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
