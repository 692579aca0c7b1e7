package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/config"
	"github.com/JonasZeihe/NoctuaLight/internal/daemon"
	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
	"github.com/JonasZeihe/NoctuaLight/internal/report"
	"github.com/JonasZeihe/NoctuaLight/internal/sender"
	"github.com/JonasZeihe/NoctuaLight/internal/server"
	"github.com/JonasZeihe/NoctuaLight/internal/store"
	"github.com/JonasZeihe/NoctuaLight/internal/winsvc"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

const serviceName = "NoctuaLight"

var (
	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "noctualight",
	Short: "NoctuaLight - hardware report generator",
	Long: `NoctuaLight inspects the local machine and compiles a Markdown
hardware report covering system, CPU, GPU, RAM, disk, network,
motherboard and BIOS information.

Run without a subcommand to generate a report (equivalent to 'generate').`,
	RunE: runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a hardware report and write it to disk",
	RunE:  runGenerate,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports and history over HTTP",
	RunE:  runServe,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate a full report on a fixed interval",
	RunE:  runWatch,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Generate a report and submit it to a remote NoctuaLight",
	RunE:  runPush,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored reports, newest first",
	RunE:  runHistory,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("noctualight %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the Windows service",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the watch loop as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE: func(*cobra.Command, []string) error {
		if err := winsvc.Uninstall(serviceName); err != nil {
			return err
		}
		fmt.Printf("Service %s uninstalled\n", serviceName)
		return nil
	},
}

var serviceStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Windows service",
	RunE: func(*cobra.Command, []string) error {
		if err := winsvc.Start(serviceName); err != nil {
			return err
		}
		fmt.Printf("Service %s started\n", serviceName)
		return nil
	},
}

var serviceStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Windows service",
	RunE: func(*cobra.Command, []string) error {
		if err := winsvc.Stop(serviceName); err != nil {
			return err
		}
		fmt.Printf("Service %s stopped\n", serviceName)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./noctualight.yaml)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	pf.String("output-dir", "", "report output directory (default result)")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.Duration("timeout", 0, "per-report collection timeout (default 30s)")

	for _, c := range []*cobra.Command{rootCmd, generateCmd, watchCmd, pushCmd} {
		c.Flags().String("name", "", "machine label printed in the report header")
		c.Flags().BoolP("all", "a", false, "include the overview with every domain summary")
		c.Flags().BoolP("detailed", "d", false, "include detailed sections for every domain")
		c.Flags().StringSliceP("select", "s", nil, "domains whose details to include (comma list, repeatable)")
	}

	serveCmd.Flags().String("listen", "", "HTTP listen address (default :9650)")
	watchCmd.Flags().Duration("interval", 0, "regeneration interval (default 1h)")
	watchCmd.Flags().Bool("push", false, "push each report to the configured remote")
	pushCmd.Flags().String("url", "", "remote NoctuaLight base URL")
	historyCmd.Flags().Int("limit", 20, "maximum rows to print")
	historyCmd.Flags().String("hostname", "", "filter by hostname")

	serviceCmd.AddCommand(serviceInstallCmd, serviceUninstallCmd, serviceStartCmd, serviceStopCmd)
	rootCmd.AddCommand(generateCmd, serveCmd, watchCmd, pushCmd, historyCmd, versionCmd, serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies CLI overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("output-dir"); v != "" {
		cfg.Output.Directory = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.Collect.Timeout = v
	}
	if flags.Lookup("listen") != nil {
		if v, _ := flags.GetString("listen"); v != "" {
			cfg.Server.Listen = v
		}
	}
	if flags.Lookup("url") != nil {
		if v, _ := flags.GetString("url"); v != "" {
			cfg.Push.URL = v
		}
	}
	if flags.Lookup("interval") != nil {
		if v, _ := flags.GetDuration("interval"); v > 0 {
			cfg.Watch.Interval = v
		}
	}
	if flags.Lookup("push") != nil && flags.Changed("push") {
		cfg.Watch.Push, _ = flags.GetBool("push")
	}

	return cfg, nil
}

// reportRequest is the resolved shape of one generate invocation.
type reportRequest struct {
	name string
	sel  report.Selection
	opts report.Options
}

func parseReportFlags(cmd *cobra.Command) (reportRequest, error) {
	flags := cmd.Flags()
	req := reportRequest{}
	req.name, _ = flags.GetString("name")
	req.opts.IncludeAll, _ = flags.GetBool("all")
	req.opts.Detailed, _ = flags.GetBool("detailed")

	selected, _ := flags.GetStringSlice("select")
	if len(selected) > 0 {
		req.sel = report.Selection{}
		for _, raw := range selected {
			d, err := hardware.ParseDomain(raw)
			if err != nil {
				return req, err
			}
			req.sel[d] = true
		}
	}
	return req, nil
}

// generateAndWrite compiles one report, writes it to disk, and records
// it in history when enabled.
func generateAndWrite(ctx context.Context, cfg *config.Config, log *zap.Logger, req reportRequest) (*report.Report, string, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Collect.Timeout)
	defer cancel()

	collectors := hardware.NewCollectors(log)
	compiler := report.NewCompiler(log, cfg.Collect.Parallel)

	rep, err := compiler.Compile(ctx, collectors, req.sel, req.opts, req.name)
	if err != nil {
		return nil, "", err
	}

	path, err := report.Write(rep, cfg.Output.Directory)
	if err != nil {
		return nil, "", err
	}

	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg, rep, path, req.opts); err != nil {
			log.Warn("record history", zap.Error(err))
		}
	}

	return rep, path, nil
}

func recordHistory(ctx context.Context, cfg *config.Config, rep *report.Report, path string, opts report.Options) error {
	dbPath := cfg.DatabasePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	hostname, _ := os.Hostname()
	domains := make([]string, len(rep.Domains))
	for i, d := range rep.Domains {
		domains[i] = string(d)
	}
	return db.SaveReport(ctx, &store.ReportRecord{
		ID:           rep.ID,
		MachineLabel: rep.MachineLabel,
		Hostname:     hostname,
		GeneratedAt:  rep.GeneratedAt,
		Path:         path,
		Domains:      domains,
		IncludeAll:   opts.IncludeAll,
		Detailed:     opts.Detailed,
		SizeBytes:    int64(len(rep.Body)),
		Body:         rep.Body,
	})
}

func progress(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	req, err := parseReportFlags(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	progress("Generating hardware report...")
	_, path, err := generateAndWrite(ctx, cfg, log, req)
	if err != nil {
		return err
	}
	progress("Report successfully saved at: %s", path)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, log)
}

// watchCycle builds the daemon cycle: generate a full report, then
// push it when configured.
func watchCycle(cfg *config.Config, log *zap.Logger, req reportRequest) daemon.Cycle {
	return func(ctx context.Context) error {
		rep, path, err := generateAndWrite(ctx, cfg, log, req)
		if err != nil {
			return err
		}
		log.Info("report generated", zap.String("path", path))

		if cfg.Watch.Push && cfg.Push.URL != "" {
			s := sender.New(log, cfg.Push.URL, cfg.Push.APISecret)
			if err := s.Push(ctx, rep); err != nil {
				return err
			}
		}
		return nil
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	req, err := parseReportFlags(cmd)
	if err != nil {
		return err
	}
	// Watch mode always produces the full document.
	req.opts = report.Options{IncludeAll: true, Detailed: true}

	cycle := watchCycle(cfg, log, req)

	// Windows service mode: the SCM drives the lifecycle and logs go
	// to the event log.
	if winsvc.IsWindowsService() {
		if elog, err := winsvc.NewEventLogLogger(serviceName); err == nil {
			log = elog
			cycle = watchCycle(cfg, log, req)
		}
		return winsvc.RunService(serviceName, log, func(ctx context.Context) error {
			return daemon.Run(ctx, log, cfg.Watch.Interval, cycle)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = daemon.Run(ctx, log, cfg.Watch.Interval, cycle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runPush(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Push.URL == "" {
		return fmt.Errorf("push url is required (--url or push.url)")
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	req, err := parseReportFlags(cmd)
	if err != nil {
		return err
	}
	if !req.opts.IncludeAll && !req.opts.Detailed && req.sel == nil {
		// A push with no shape flags still sends a useful document.
		req.opts = report.Options{IncludeAll: true, Detailed: true}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	progress("Generating hardware report...")
	rep, path, err := generateAndWrite(ctx, cfg, log, req)
	if err != nil {
		return err
	}
	progress("Report successfully saved at: %s", path)

	if err := sender.New(log, cfg.Push.URL, cfg.Push.APISecret).Push(ctx, rep); err != nil {
		return err
	}
	progress("Report %s pushed to %s", rep.ID, cfg.Push.URL)
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration")
	}

	db, err := store.New(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	hostname, _ := cmd.Flags().GetString("hostname")

	records, err := db.ListReports(context.Background(), store.Filter{
		Hostname: hostname,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No reports recorded.")
		return nil
	}

	for _, rec := range records {
		label := rec.MachineLabel
		if label == "" {
			label = rec.Hostname
		}
		fmt.Printf("%s  %s  %-20s  %6d bytes  %s\n",
			rec.ID,
			rec.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			label,
			rec.SizeBytes,
			rec.Path)
	}
	return nil
}

func runServiceInstall(_ *cobra.Command, _ []string) error {
	exePath, err := winsvc.ExePath()
	if err != nil {
		return err
	}

	svcArgs := []string{"watch"}
	if cfgFile != "" {
		svcArgs = append(svcArgs, "--config", cfgFile)
	}

	if err := winsvc.Install(
		serviceName,
		"NoctuaLight",
		"Generates periodic hardware reports for this machine.",
		exePath,
		svcArgs,
	); err != nil {
		return err
	}

	fmt.Printf("Service %s installed\n", serviceName)
	return nil
}
