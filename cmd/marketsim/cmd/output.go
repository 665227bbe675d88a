package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rustyeddy/marketsim/market"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

// writeCandles renders candles in one of json, yaml or csv.
func writeCandles(w io.Writer, format string, candles []market.Candle) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(candles)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(candles); err != nil {
			return err
		}
		return enc.Close()
	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
			return err
		}
		for _, c := range candles {
			if err := cw.Write([]string{
				strconv.FormatInt(c.Time, 10),
				strconv.FormatFloat(c.Open, 'f', -1, 64),
				strconv.FormatFloat(c.High, 'f', -1, 64),
				strconv.FormatFloat(c.Low, 'f', -1, 64),
				strconv.FormatFloat(c.Close, 'f', -1, 64),
				strconv.FormatInt(c.Volume, 10),
			}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or csv)", format)
	}
}

// openOutput returns stdout of cmd for "" or "-", else a new file.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
