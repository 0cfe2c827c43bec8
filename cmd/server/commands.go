package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huzzai/rizz-coach/internal/store"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send a test prompt to Gemini and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		defer a.Close()

		res := a.client.Probe(cmd.Context())
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("probe failed: %s", res.Error)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored pickup-line history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		defer a.Close()

		kv, err := store.Open(a.cfg.DatabaseDriver, a.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer kv.Close()

		entries, err := store.NewHistory(kv, a.logger).Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		return printJSON(entries)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
