// rds-inventory enumerates RDS databases across every account of an AWS
// Organization and every enabled region.
//
// The base identity must be able to discover regions and list the
// organization's accounts; a read-only role of the configured name is then
// assumed in each member account to list its databases.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	awsclient "github.com/crossfleet/rds-inventory/internal/aws"
	"github.com/crossfleet/rds-inventory/internal/config"
	"github.com/crossfleet/rds-inventory/internal/report"
	"github.com/crossfleet/rds-inventory/internal/scanner"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	flagConfig       string
	flagRoleName     string
	flagProfile      string
	flagAccountsFile string
	flagRegions      []string
	flagLogLevel     string
	flagLogFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "rds-inventory",
	Short: "Enumerate RDS databases across an AWS Organization",
	Long: `rds-inventory walks every account of an AWS Organization (or a CSV
account list) and every enabled region, assuming a read-only role in each
account and listing its RDS instances and clusters. Listings rejected with a
credential-endpoint mismatch are retried once with regionally issued
credentials; all other failures are reported and skipped.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "path to a YAML config file")
	f.StringVar(&flagRoleName, "role-name", "", "IAM role to assume in each account")
	f.StringVar(&flagProfile, "profile", "", "shared-config profile for the base identity")
	f.StringVar(&flagAccountsFile, "accounts-file", "", "CSV account list instead of the organization directory")
	f.StringSliceVar(&flagRegions, "region", nil, "region to scan (repeatable, bypasses discovery)")
	f.StringVar(&flagLogLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	f.StringVar(&flagLogFormat, "log-format", "", "log format: text or json")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx := cmd.Context()
	client, err := awsclient.NewClient(ctx, cfg.Profile, cfg.DefaultRegion)
	if err != nil {
		return err
	}

	var source scanner.AccountSource
	if cfg.AccountsFile != "" {
		source = scanner.NewFileSource(cfg.AccountsFile)
	} else {
		source = scanner.NewOrgSource(client)
	}

	s, err := scanner.New(client, scanner.Config{
		RoleName:        cfg.RoleName,
		SessionDuration: cfg.SessionDuration,
		Regions:         cfg.Regions,
		Source:          source,
		Reporter:        report.NewConsole(os.Stdout),
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	return s.Run(ctx)
}

// loadConfig merges the config file, environment, and flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagRoleName != "" {
		cfg.RoleName = flagRoleName
	}
	if flagProfile != "" {
		cfg.Profile = flagProfile
	}
	if flagAccountsFile != "" {
		cfg.AccountsFile = flagAccountsFile
	}
	if len(flagRegions) > 0 {
		cfg.Regions = flagRegions
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
