package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pfcp-core/internal/config"
	"pfcp-core/internal/pcapreplay"
	"pfcp-core/internal/pfcpconn"
	"pfcp-core/internal/sessionsim"
	"pfcp-core/internal/stats"
)

var (
	version   = "1.0.0"
	cfgFile   string
	dryRun    bool
	statsOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pfcp-generator",
		Short: "PFCP session simulator - replays captured PFCP traffic against a UPF",
		Long: `A Go-based tool that acts as an SMF node, reading PFCP messages from a pcap
file, modifying session-specific identifiers, and replaying them to a target UPF.`,
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Configuration file path (default: config.yaml)")

	rootCmd.Flags().String("pcap", "", "Input PCAP file path")
	rootCmd.Flags().String("smf-ip", "", "Local endpoint IP address")
	rootCmd.Flags().String("upf-ip", "", "Remote peer IP address")
	rootCmd.Flags().Int("upf-port", 0, "Remote peer port")
	rootCmd.Flags().String("node-id", "", "NodeID IE value this endpoint advertises (IPv4, IPv6, or FQDN)")
	rootCmd.Flags().String("ue-pool", "", "UE IPv4 address pool (CIDR)")
	rootCmd.Flags().Uint64("seid-start", 0, "Starting SEID value")
	rootCmd.Flags().String("seid-strategy", "", "SEID allocation strategy (sequential|random)")
	rootCmd.Flags().Int("message-interval", -1, "Delay between messages in ms")
	rootCmd.Flags().Int("timeout", 0, "Response timeout in ms")
	rootCmd.Flags().Int("max-retries", -1, "Max retransmission attempts")
	rootCmd.Flags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and modify only, do not send to UPF")
	rootCmd.Flags().BoolVar(&statsOnly, "stats-only", false, "Show pcap statistics only, do not replay")
	rootCmd.Flags().Bool("cleanup", false, "Delete all sessions on exit")
	rootCmd.Flags().Bool("no-association", false, "Disable PFCP Association Setup")
	rootCmd.Flags().Bool("strip-ipv6", true, "Strip IPv6 from UE IP Address IEs")

	v := viper.New()
	bindFlag(v, rootCmd, "pcap", "input.pcap_file")
	bindFlag(v, rootCmd, "smf-ip", "local.address")
	bindFlag(v, rootCmd, "upf-ip", "remote.address")
	bindFlag(v, rootCmd, "upf-port", "remote.port")
	bindFlag(v, rootCmd, "ue-pool", "session.ue_ip_pool")
	bindFlag(v, rootCmd, "seid-start", "session.seid_start")
	bindFlag(v, rootCmd, "seid-strategy", "session.seid_strategy")
	bindFlag(v, rootCmd, "message-interval", "timing.message_interval_ms")
	bindFlag(v, rootCmd, "timeout", "timing.response_timeout_ms")
	bindFlag(v, rootCmd, "max-retries", "timing.max_retries")
	bindFlag(v, rootCmd, "log-level", "logging.level")
	bindFlag(v, rootCmd, "cleanup", "session.cleanup_on_exit")
	bindFlag(v, rootCmd, "strip-ipv6", "session.strip_ipv6")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, flagName, configKey string) {
	_ = v.BindPFlag(configKey, cmd.Flags().Lookup(flagName))
}

func run(cmd *cobra.Command, args []string) error {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults and CLI flags")
	}

	bindViperFlags(v, cmd)

	if noAssoc, _ := cmd.Flags().GetBool("no-association"); noAssoc {
		v.Set("association.enabled", false)
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg)

	fmt.Printf("PFCP Session Simulator v%s\n", version)
	fmt.Println("==============================")
	fmt.Print(cfg.Summary())
	fmt.Println()

	if statsOnly {
		return showStats(cfg)
	}

	if !dryRun {
		if err := cfg.Validate(); err != nil {
			return err
		}
	} else if cfg.Input.PcapFile == "" {
		return fmt.Errorf("input.pcap_file must be specified")
	}

	parser := pcapreplay.NewParser()
	parseResult, err := parser.ParseWithMappings(cfg.Input.PcapFile)
	if err != nil {
		return fmt.Errorf("failed to parse pcap: %w", err)
	}

	messages := parseResult.Messages
	if len(messages) == 0 {
		return fmt.Errorf("no PFCP request messages found in pcap file")
	}
	if err := parser.ValidateHasEstablishment(messages); err != nil {
		return err
	}

	fmt.Printf("Found %d PFCP request messages\n\n", len(messages))

	if dryRun {
		fmt.Println("Dry-run mode: skipping network transmission")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("received shutdown signal")
		cancel()
	}()

	localAddr := fmt.Sprintf("%s:0", cfg.Local.Address)
	remoteAddr := fmt.Sprintf("%s:%d", cfg.Remote.Address, cfg.Remote.Port)
	conn, err := pfcpconn.Dial(localAddr, remoteAddr, cfg.Timing.ConnConfig(), nil)
	if err != nil {
		return fmt.Errorf("failed to dial UPF: %w", err)
	}
	defer conn.Close()
	conn.ReceiveDispatch(ctx)

	log.WithField("local_addr", conn.LocalAddr()).Info("PFCP connection established")

	statsCollector := stats.NewCollector()
	reporter := stats.NewReporter(statsCollector, cfg.Stats.ReportIntervalSec, cfg.Stats.ExportFile)
	if cfg.Stats.Enabled {
		reporter.StartPeriodicReport(ctx)
	}

	mgr, err := sessionsim.NewManager(cfg, conn, statsCollector)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	if len(parseResult.SEIDMappings) > 0 {
		mgr.SetSEIDMappings(parseResult.SEIDMappings)
	}

	fmt.Println("Sending messages to UPF...")
	if err := mgr.Replay(ctx, messages); err != nil {
		if ctx.Err() != nil {
			log.Info("replay interrupted by shutdown")
		} else {
			log.WithError(err).Error("replay failed")
		}
	}

	if cfg.Session.CleanupOnExit {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		mgr.CleanupSessions(cleanupCtx)
		cleanupCancel()
	}

	if cfg.Stats.Enabled {
		reporter.PrintFinalReport()
		if err := reporter.ExportJSON(); err != nil {
			log.WithError(err).Warn("failed to export statistics")
		}
	}

	return nil
}

func showStats(cfg *config.Config) error {
	parser := pcapreplay.NewParser()
	counts, err := parser.CountMessages(cfg.Input.PcapFile)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}

	fmt.Println("PCAP Message Statistics:")
	total := 0
	for msgType, count := range counts {
		fmt.Printf("  %-40s %d\n", msgType, count)
		total += count
	}
	fmt.Printf("  %-40s %d\n", "Total:", total)
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.WithError(err).Warn("failed to open log file, using console only")
		} else {
			log.SetOutput(f)
		}
	}
}

func bindViperFlags(v *viper.Viper, cmd *cobra.Command) {
	if cmd.Flags().Changed("pcap") {
		val, _ := cmd.Flags().GetString("pcap")
		v.Set("input.pcap_file", val)
	}
	if cmd.Flags().Changed("smf-ip") {
		val, _ := cmd.Flags().GetString("smf-ip")
		v.Set("local.address", val)
		if !cmd.Flags().Changed("node-id") {
			v.Set("node_id.ipv4", val)
		}
	}
	if cmd.Flags().Changed("upf-ip") {
		val, _ := cmd.Flags().GetString("upf-ip")
		v.Set("remote.address", val)
	}
	if cmd.Flags().Changed("upf-port") {
		val, _ := cmd.Flags().GetInt("upf-port")
		v.Set("remote.port", val)
	}
	if cmd.Flags().Changed("node-id") {
		val, _ := cmd.Flags().GetString("node-id")
		v.Set("node_id.ipv4", "")
		v.Set("node_id.ipv6", "")
		v.Set("node_id.fqdn", "")
		switch {
		case net.ParseIP(val) == nil:
			v.Set("node_id.fqdn", val)
		case net.ParseIP(val).To4() != nil:
			v.Set("node_id.ipv4", val)
		default:
			v.Set("node_id.ipv6", val)
		}
	}
	if cmd.Flags().Changed("ue-pool") {
		val, _ := cmd.Flags().GetString("ue-pool")
		v.Set("session.ue_ip_pool", val)
	}
	if cmd.Flags().Changed("seid-start") {
		val, _ := cmd.Flags().GetUint64("seid-start")
		v.Set("session.seid_start", val)
	}
	if cmd.Flags().Changed("seid-strategy") {
		val, _ := cmd.Flags().GetString("seid-strategy")
		v.Set("session.seid_strategy", val)
	}
	if cmd.Flags().Changed("message-interval") {
		val, _ := cmd.Flags().GetInt("message-interval")
		v.Set("timing.message_interval_ms", val)
	}
	if cmd.Flags().Changed("timeout") {
		val, _ := cmd.Flags().GetInt("timeout")
		v.Set("timing.response_timeout_ms", val)
	}
	if cmd.Flags().Changed("max-retries") {
		val, _ := cmd.Flags().GetInt("max-retries")
		v.Set("timing.max_retries", val)
	}
	if cmd.Flags().Changed("log-level") {
		val, _ := cmd.Flags().GetString("log-level")
		v.Set("logging.level", val)
	}
	if cmd.Flags().Changed("cleanup") {
		val, _ := cmd.Flags().GetBool("cleanup")
		v.Set("session.cleanup_on_exit", val)
	}
	if cmd.Flags().Changed("strip-ipv6") {
		val, _ := cmd.Flags().GetBool("strip-ipv6")
		v.Set("session.strip_ipv6", val)
	}
}
