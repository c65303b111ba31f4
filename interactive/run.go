package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"quick-translate/translator"
	"quick-translate/utils"
)

type Session struct {
	client    *translator.Client
	from      string
	to        string
	exportDir string
	endpoint  string

	reader *bufio.Reader
	lines  <-chan readResult
	out    io.Writer
}

type readResult struct {
	line string
	err  error
}

func NewSession(client *translator.Client, from, to, exportDir, endpoint string, in io.Reader, out io.Writer) *Session {
	return &Session{
		client:    client,
		from:      from,
		to:        to,
		exportDir: exportDir,
		endpoint:  endpoint,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan readResult)
	s.lines = lines
	go s.readLines(ctx, lines)

	printHeader(s.out)

	for {
		printMenu(s.out, s.from, s.to)
		printPrompt(s.out)

		input, err := s.readLine(ctx)
		if ctx.Err() != nil || (errors.Is(err, io.EOF) && input == "") {
			fmt.Fprintln(s.out)
			printGoodbye(s.out)
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}

		choice, exportJSON := utils.ParseExportFlag(input)

		switch choice {
		case "1":
			s.translateText(ctx, exportJSON)
		case "2":
			s.translateBatch(ctx, exportJSON)
		case "3":
			s.changeLanguages(ctx)
		case "4":
			printGoodbye(s.out)
			return nil
		default:
			printError(s.out, "Invalid choice. Please select 1-4.")
		}

		if ctx.Err() != nil {
			fmt.Fprintln(s.out)
			printGoodbye(s.out)
			return nil
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Session) translateText(ctx context.Context, exportJSON bool) {
	fmt.Fprint(s.out, "Enter text: ")
	text, _ := s.readLine(ctx)
	if ctx.Err() != nil {
		return
	}
	if text == "" {
		printError(s.out, "Text cannot be empty")
		return
	}

	translated, err := s.client.Translate(ctx, text, s.from, s.to)
	printTranslation(s.out, text, translated, err)
	if err != nil || !exportJSON {
		return
	}

	results := []translator.Result{{Index: 0, Text: translated}}
	s.export("translate", []string{text}, results)
}

func (s *Session) translateBatch(ctx context.Context, exportJSON bool) {
	fmt.Fprint(s.out, "Enter phrases separated by '|': ")
	line, _ := s.readLine(ctx)
	if ctx.Err() != nil {
		return
	}

	var texts []string
	for _, part := range strings.Split(line, "|") {
		if part = strings.TrimSpace(part); part != "" {
			texts = append(texts, part)
		}
	}
	if len(texts) == 0 {
		printError(s.out, "No phrases to translate")
		return
	}

	results := s.client.TranslateAll(ctx, texts, s.from, s.to)
	for _, r := range results {
		printTranslation(s.out, texts[r.Index], r.Text, r.Err)
	}
	if exportJSON {
		s.export("batch", texts, results)
	}
}

func (s *Session) changeLanguages(ctx context.Context) {
	fmt.Fprintf(s.out, "Source language (current %s): ", s.from)
	from, _ := s.readLine(ctx)
	fmt.Fprintf(s.out, "Target language (current %s): ", s.to)
	to, _ := s.readLine(ctx)
	if ctx.Err() != nil {
		return
	}

	// Both codes are checked before either is applied.
	newFrom, newTo := s.from, s.to
	if from != "" {
		parsed, err := translator.ParseSourceLanguage(from)
		if err != nil {
			printError(s.out, err.Error())
			return
		}
		newFrom = parsed
	}
	if to != "" {
		parsed, err := translator.ParseTargetLanguage(to)
		if err != nil {
			printError(s.out, err.Error())
			return
		}
		newTo = parsed
	}
	s.from, s.to = newFrom, newTo
	printSuccess(s.out, fmt.Sprintf("Languages set to %s → %s", s.from, s.to))
}

func (s *Session) export(requestType string, texts []string, results []translator.Result) {
	path, err := utils.ExportToJSON(s.exportDir, utils.RecordsFromResults(texts, results), requestType, s.endpoint, s.from, s.to)
	if err != nil {
		printError(s.out, err.Error())
		return
	}
	printSuccess(s.out, "JSON exported successfully: "+path)
}

// readLines feeds lines to Run from a separate goroutine so a blocked read
// never holds up cancellation. It stops after the first read error or once
// ctx is done.
func (s *Session) readLines(ctx context.Context, lines chan<- readResult) {
	defer close(lines)
	for {
		line, err := s.reader.ReadString('\n')
		select {
		case lines <- readResult{line: strings.TrimSpace(line), err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	}
}
