// Command logreport summarizes the API access log.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/accesslog"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "logreport",
		Usage: "Summarize the API access log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   "logs_api.json",
				Sources: cli.EnvVars("ACCESS_LOG_PATH"),
				Usage:   "Path to the newline-delimited access log",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format (supported values: text, json)",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: 5,
				Usage: "Number of endpoints to list",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown output format: %q", format)
			}

			path := cmd.String("file")
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open access log %q: %w", path, err)
			}
			defer f.Close()

			summary, err := accesslog.Summarize(f)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.Root().Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return writeText(cmd.Root().Writer, summary, int(cmd.Int("top")))
		},
	}
}

func writeText(w io.Writer, s accesslog.Summary, top int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total requests:\t%d\n", s.TotalRequests)
	fmt.Fprintf(tw, "Average response:\t%.2f ms\n", s.AverageResponseMs)
	fmt.Fprintf(tw, "Error rate:\t%.2f%%\n", s.ErrorRatePercent)
	fmt.Fprintf(tw, "Unique endpoints:\t%d\n", s.UniqueEndpoints)

	endpoints := s.TopEndpoints()
	if top > 0 && len(endpoints) > top {
		endpoints = endpoints[:top]
	}
	if len(endpoints) > 0 {
		fmt.Fprintln(tw, "\nENDPOINT\tREQUESTS\tAVG MS")
		for _, ep := range endpoints {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", ep, s.ByEndpoint[ep], s.AverageByEndpoint[ep])
		}
	}
	return tw.Flush()
}
