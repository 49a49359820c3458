package main

import (
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli"
	. "github.com/streamingfast/cli"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

// Injected at build time
var version = "<missing>"

var logger, tracer = logging.PackageLogger("symbolmap", "github.com/symbol-commons/symbolmap")

func main() {
	logging.InstantiateLoggers(logging.WithDefaultLevel(zap.InfoLevel))

	Run(
		"symbolmap",
		"Symbol transaction normalization and serialization tooling",
		Description(`
			symbolmap converts Symbol transactions between the node REST wire
			format and a canonical, human-readable record, in both directions.

			Wire records are decoded with 'symbolmap decode <file>' and canonical
			records are built back into wire form with 'symbolmap encode <file>'.
			Namespace aliases and mosaic divisibilities are resolved from a
			context file (--context) or fetched from a node (--endpoint).

			Network parameters default to the built-in mainnet and testnet
			presets and can be overridden with a TOML profile file
			(--network-config).

			Symbol Endpoints:
			  Mainnet: https://symbol-mainnet.nemtus.com:3001
			  Testnet: https://sym-test-01.opening-line.jp:3001
		`),

		ConfigureVersion(version),
		ConfigureViper("SYMBOLMAP"),

		CobraCmd(NewDecodeCmd(logger)),
		CobraCmd(NewEncodeCmd(logger)),

		Group("fetch", "Fetch transactions from a node REST endpoint",
			CobraCmd(NewFetchCmd(logger, tracer)),
		),

		CobraCmd(NewToolAmountCmd()),
		CobraCmd(NewToolFeeCmd(logger)),

		OnCommandErrorLogAndExit(logger),
	)
}

func CobraCmd(cmd *cobra.Command) cli.CommandOption {
	return cli.CommandOptionFunc(func(parent *cobra.Command) {
		parent.AddCommand(cmd)
	})
}
