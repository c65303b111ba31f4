package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"quick-translate/gateway"
	"quick-translate/interactive"
	"quick-translate/translator"
	"quick-translate/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const maxLineBytes = 1 << 20

func newTranslateCmd(a *app) *cobra.Command {
	var exportJSON bool

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate a single piece of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			translated, err := client.Translate(cmd.Context(), text, a.cfg.From, a.cfg.To)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), translated)

			if exportJSON {
				records := utils.RecordsFromResults([]string{text}, []translator.Result{{Index: 0, Text: translated}})
				return a.export("translate", records)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exportJSON, "export", false, "also write the result to a JSON file")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		inputFile  string
		asTable    bool
		asMarkdown bool
		exportJSON bool
	)

	cmd := &cobra.Command{
		Use:   "batch [text...]",
		Short: "Translate many texts in parallel",
		Long: `Translates every argument, or every non-blank line of --file (or stdin when
no arguments are given), using --threads concurrent requests. Results keep
the input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				var err error
				texts, err = readInput(cmd, inputFile)
				if err != nil {
					return err
				}
			}
			if len(texts) == 0 {
				return fmt.Errorf("no texts to translate")
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}

			results := client.TranslateAll(cmd.Context(), texts, a.cfg.From, a.cfg.To)
			records := utils.RecordsFromResults(texts, results)

			if asTable || asMarkdown {
				fmt.Fprintln(cmd.OutOrStdout(), utils.RenderResultsTable(records, asMarkdown))
			} else {
				for _, r := range results {
					utils.PrintTranslation(cmd.OutOrStdout(), texts[r.Index], r.Text, r.Err)
				}
			}

			if exportJSON {
				if err := a.export("batch", records); err != nil {
					return err
				}
			}

			failed := 0
			for _, r := range results {
				if !r.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d translations failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputFile, "file", "", "read texts from this file, one per line (- for stdin)")
	cmd.Flags().BoolVar(&asTable, "table", false, "render results as a table")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "render results as a Markdown table")
	cmd.Flags().BoolVar(&exportJSON, "export", false, "also write the results to a JSON file")
	return cmd
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive translation prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			session := interactive.NewSession(client, a.cfg.From, a.cfg.To, a.cfg.ExportDir, a.endpointURL(), cmd.InOrStdin(), color.Output)
			return session.Run(cmd.Context())
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve translations over HTTP",
		Long: `Starts an HTTP gateway with two JSON endpoints:

  POST /api/translate        {"text": "...", "from": "en", "to": "vi"}
  POST /api/translate/batch  {"texts": ["...", "..."], "threads": 4}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			utils.PrintInfo(fmt.Sprintf("Gateway starting at http://localhost%s", addr))
			return gateway.NewServer(client, a.cfg.From, a.cfg.To, a.logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (a *app) export(requestType string, records []utils.TranslationRecord) error {
	path, err := utils.ExportToJSON(a.cfg.ExportDir, records, requestType, a.endpointURL(), a.cfg.From, a.cfg.To)
	if err != nil {
		return err
	}
	utils.PrintSuccess("JSON exported successfully: " + path)
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]string, error) {
	if path == "" || path == "-" {
		return readTexts(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	return readTexts(f)
}

// readTexts returns the trimmed, non-blank lines of r.
func readTexts(r io.Reader) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return texts, nil
}
