package main

import (
	"fmt"
	"os"

	"qwiic-go/config"
	"qwiic-go/i2cbus"
	"qwiic-go/qwiic"
	"qwiic-go/registry"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cli     = &app{out: os.Stdout}
	bus     *i2cbus.Bus
)

var rootCmd = &cobra.Command{
	Use:   "qwiic",
	Short: "Discover and drive Qwiic I²C devices",
	Long: `Scans the I²C bus, matches every responding address against the
registered Qwiic driver types and creates drivers on request.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if bus != nil {
			if err := bus.Close(); err != nil {
				log.WithError(err).Warn("closing bus")
			}
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file path (YAML)")
	pf.String("bus", "", "bus name or number; empty selects the platform default")
	pf.Uint32("frequency", 0, "bus clock in Hz; 0 keeps the platform default")
	pf.String("log-level", "info", "log level: panic, fatal, error, warn, info, debug, trace")
	pf.StringP("output", "o", config.OutputTable, "output format: table, json or yaml")

	bind := func(key, flag string) {
		cobra.CheckErr(v.BindPFlag(key, pf.Lookup(flag)))
	}
	bind(config.KeyBusName, "bus")
	bind(config.KeyBusFrequency, "frequency")
	bind(config.KeyLogLevel, "log-level")
	bind(config.KeyOutput, "output")

	rootCmd.AddCommand(scanCmd, listCmd, availableCmd, createCmd, probeCmd, shellCmd)
}

// setup loads config, sets the log level and opens the transport. A
// missing transport is not fatal: the engine runs with an empty bus.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	cli.format = cfg.Output

	b, err := i2cbus.Open(cfg.Transport())
	if err != nil {
		log.WithError(err).Warn("no I2C transport; scans will be empty")
		cli.eng = qwiic.New(registry.Default(), nil)
		return nil
	}
	bus = b
	cli.eng = qwiic.New(registry.Default(), b)
	log.WithField("bus", b.Name()).Debug("transport open")
	return nil
}

func newCommand(use, short string, args cobra.PositionalArgs, run func([]string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE:  func(_ *cobra.Command, a []string) error { return run(a) },
	}
}

var (
	scanCmd      = newCommand("scan", "List addresses that acknowledge", cobra.NoArgs, func(a []string) error { return cli.scan(a) })
	listCmd      = newCommand("list", "Resolve connected addresses to driver types", cobra.NoArgs, func(a []string) error { return cli.list(a) })
	availableCmd = newCommand("available [addr...]", "Show driver types registered at addresses", cobra.ArbitraryArgs, func(a []string) error { return cli.available(a) })
	probeCmd     = newCommand("probe <addr>", "Check whether one address acknowledges", cobra.ExactArgs(1), func(a []string) error { return cli.probe(a) })
	createCmd    = newCommand("create <selector>", "Create the single driver a selector resolves to", cobra.ExactArgs(1), func(a []string) error { return cli.create(a, readFlag) })
	shellCmd     = newCommand("shell", "Interactive prompt", cobra.NoArgs, func([]string) error { return cli.shell() })

	readFlag bool
)

func init() {
	createCmd.Flags().BoolVar(&readFlag, "read", false, "begin the device and print one sample")
	createCmd.Long = `Selectors:
  0x60             address
  proximity        driver name or type
  0x60:proximity   address and driver name or type`
}
