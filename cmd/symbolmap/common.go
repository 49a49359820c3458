package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/resolver"
	"github.com/symbol-commons/symbolmap/rpc"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
)

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().String("network", "mainnet", "Network profile name (mainnet, testnet or a profile of --network-config)")
	cmd.Flags().String("network-config", "", "TOML file with network profiles")
	cmd.Flags().String("endpoint", "", "Node REST endpoint, used to complete network parameters and resolve aliases")
}

func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().String("context", "", "JSON file with resolved aliases and mosaic information")
	cmd.Flags().String("account", "", "Address of the account the records are viewed from, enables aggregate net amounts")
	cmd.Flags().Int("concurrency", 0, "Number of records converted concurrently (0 = number of CPUs)")
}

// loadNetwork returns the selected network parameters, completed with the
// node properties when an endpoint is given
func loadNetwork(cmd *cobra.Command, logger *zap.Logger) (network.Parameters, *rpc.Client, error) {
	name := sflags.MustGetString(cmd, "network")
	configPath := sflags.MustGetString(cmd, "network-config")
	endpoint := sflags.MustGetString(cmd, "endpoint")

	var params network.Parameters
	if configPath != "" {
		profiles, err := network.Load(configPath)
		if err != nil {
			return params, nil, err
		}
		if params, err = profiles.Lookup(name); err != nil {
			return params, nil, err
		}
	} else {
		var ok bool
		if params, ok = network.Builtin(name); !ok {
			return params, nil, fmt.Errorf("unknown network %q, use --network-config to define it", name)
		}
	}

	if endpoint == "" && params.NodeURL != "" {
		endpoint = params.NodeURL
	}
	if endpoint == "" {
		return params, nil, nil
	}

	client, err := rpc.NewClient(endpoint, logger)
	if err != nil {
		return params, nil, err
	}
	params, err = client.GetNetworkParameters(cmd.Context(), params)
	if err != nil {
		return params, nil, err
	}

	logger.Info("loaded network parameters",
		zap.String("network", params.Name),
		zap.String("endpoint", endpoint),
		zap.String("currency_mosaic_id", params.CurrencyMosaicID))

	return params, client, nil
}

func loadContext(path string) (*resolver.Context, error) {
	if path == "" {
		return resolver.New(nil, nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}
	var snapshot resolver.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing context file %q: %w", path, err)
	}
	return resolver.FromSnapshot(snapshot), nil
}

// readInput reads a file, or stdin when path is "-"
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// readRecords accepts a single record, an array of records or a transaction page
func readRecords(data []byte) ([]*types.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	if data[0] == '[' {
		var records []*types.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing records: %w", err)
		}
		return records, nil
	}

	var page types.Page
	if err := json.Unmarshal(data, &page); err == nil && page.Data != nil {
		return page.Data, nil
	}

	var rec types.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	return []*types.Record{&rec}, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
