package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/overtime-backend-go/internal/cli"
	"github.com/cmlabs-hris/overtime-backend-go/internal/config"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	overtimeService "github.com/cmlabs-hris/overtime-backend-go/internal/service/overtime"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadOvertime()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolver := overtime.NewBranchResolver(cfg.BranchAliases)
	app := cli.NewApp(overtimeService.NewCalculator(resolver, overtime.DefaultPolicyBook()))
	return app.Execute()
}
