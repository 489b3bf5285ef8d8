package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/tomb.v2"

	"github.com/crowdsecurity/tailf/pkg/logging"
	"github.com/crowdsecurity/tailf/pkg/tailf"
	"github.com/crowdsecurity/tailf/pkg/tfconfig"
)

type cliRoot struct {
	configFile    string
	lines         int
	filter        string
	levelRegex    string
	defaultLevel  string
	pollInterval  time.Duration
	regexEngine   string
	noColor       bool
	metricsListen string

	logTrace, logDebug, logInfo, logWarn, logErr bool
}

func newCLIRoot() *cliRoot {
	return &cliRoot{}
}

func (cli *cliRoot) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tailf [flags] FILE",
		Short: "tailf follows a growing file and prints the lines appended to it",
		Long: `tailf prints the last lines of FILE, then keeps polling it and prints every
line appended to it. A shrinking file is read again from the start.
Lines can be filtered with a regular expression, and a second regular expression
with a named group "level" keeps track of the severity of the output.`,
		Example: `tailf -n 20 /var/log/app.log
tailf --filter 'ERROR|WARN' --level-regex '^\[(?P<level>[A-Z]+)\]' /var/log/app.log
tailf -c /etc/tailf/config.yaml /var/log/app.log`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		SilenceErrors:     true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.run(cmd.Context(), cmd, args[0])
		},
	}

	cc.Init(&cc.Config{
		RootCmd:       cmd,
		Headings:      cc.Yellow,
		Commands:      cc.Green + cc.Bold,
		CmdShortDescr: cc.Cyan,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Aliases:       cc.Bold + cc.Italic,
		FlagsDataType: cc.White,
		Flags:         cc.Green,
		FlagsDescr:    cc.Cyan,
	})
	cmd.SetOut(color.Output)

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&cli.configFile, "config", "c", "", "path to an optional configuration file")
	flags.IntVarP(&cli.lines, "lines", "n", tailf.DefaultSeedLines, "number of lines to print before following")
	flags.StringVar(&cli.filter, "filter", "", "only print lines matching this regular expression")
	flags.StringVar(&cli.levelRegex, "level-regex", "", "regular expression with a named group 'level'")
	flags.StringVar(&cli.defaultLevel, "default-level", tailf.DefaultLevel, "level used until the level regex matches")
	flags.DurationVar(&cli.pollInterval, "poll-interval", tailf.DefaultPollInterval, "how often the file size is checked")
	flags.StringVar(&cli.regexEngine, "regex-engine", tailf.RegexEngineGo, "regular expression engine: go or re2")
	flags.BoolVar(&cli.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&cli.metricsListen, "metrics-listen", "", "serve prometheus metrics on this address (host:port)")
	flags.BoolVar(&cli.logTrace, "trace", false, "set logging to trace")
	flags.BoolVar(&cli.logDebug, "debug", false, "set logging to debug")
	flags.BoolVar(&cli.logInfo, "info", false, "set logging to info")
	flags.BoolVar(&cli.logWarn, "warning", false, "set logging to warning")
	flags.BoolVar(&cli.logErr, "error", false, "set logging to error")

	cmd.AddCommand(NewCLIVersion().NewCommand())

	return cmd
}

// logLevel returns the level selected on the command line, giving precedence
// to the most verbose flag. 0 means no flag was given.
func (cli *cliRoot) logLevel() log.Level {
	switch {
	case cli.logTrace:
		return log.TraceLevel
	case cli.logDebug:
		return log.DebugLevel
	case cli.logInfo:
		return log.InfoLevel
	case cli.logWarn:
		return log.WarnLevel
	case cli.logErr:
		return log.ErrorLevel
	default:
		return 0
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were explicitly set on top of it.
func (cli *cliRoot) loadConfig(cmd *cobra.Command, filename string) (*tfconfig.Config, error) {
	cfg, err := tfconfig.NewConfig(cli.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("lines") {
		cfg.Tail.SeedLines = cli.lines
	}

	if flags.Changed("filter") {
		cfg.Tail.LineFilter = cli.filter
	}

	if flags.Changed("level-regex") {
		cfg.Tail.LevelPattern = cli.levelRegex
	}

	if flags.Changed("default-level") {
		cfg.Tail.DefaultLevel = cli.defaultLevel
	}

	if flags.Changed("poll-interval") {
		cfg.Tail.PollInterval = cli.pollInterval
	}

	if flags.Changed("regex-engine") {
		cfg.Tail.RegexEngine = cli.regexEngine
	}

	cfg.Tail.Filename = filename

	return cfg, nil
}

func (cli *cliRoot) useColor() bool {
	if cli.noColor {
		return false
	}

	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func (cli *cliRoot) run(ctx context.Context, cmd *cobra.Command, filename string) error {
	cfg, err := cli.loadConfig(cmd, filename)
	if err != nil {
		return err
	}

	level, err := cfg.Common.Level()
	if err != nil {
		return err
	}

	if lvl := cli.logLevel(); lvl != 0 {
		level = lvl
	}

	if err = logging.SetupStandardLogger(cfg.Common, level, cfg.Common.ForceColors, filename); err != nil {
		return err
	}

	tailLevel, err := cfg.Tail.Level()
	if err != nil {
		return err
	}

	session, err := tailf.New(cfg.Tail.Config, logging.SubLogger(log.StandardLogger(), tailLevel, filename))
	if err != nil {
		return err
	}

	session.Subscribe(newPrinter(cmd.OutOrStdout(), cli.useColor()))

	var serverTomb *tomb.Tomb

	listen := cli.metricsListen
	if listen == "" && cfg.Prometheus.Enabled {
		listen = cfg.Prometheus.ListenURI()
	}

	if listen != "" {
		serverTomb = &tomb.Tomb{}
		serverTomb.Go(func() error {
			return serveMetrics(serverTomb, listen, session.GetMetrics()...)
		})
	}

	if err := session.Start(); err != nil {
		_ = stopServer(serverTomb)
		return err
	}

	var serverDying <-chan struct{}
	if serverTomb != nil {
		serverDying = serverTomb.Dying()
	}

	select {
	case <-ctx.Done():
		log.Debug("interrupted, stopping")
	case <-serverDying:
	}

	if err := session.Stop(); err != nil {
		return fmt.Errorf("while stopping: %w", err)
	}

	return stopServer(serverTomb)
}

// stopServer shuts the metrics server down, if one was started.
func stopServer(t *tomb.Tomb) error {
	if t == nil {
		return nil
	}

	t.Kill(nil)

	return t.Wait()
}
