package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/qa"
)

// Run loads the configured document and answers either the single
// configured question or an interactive sequence of them, then writes any
// requested transcripts.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.NoColor {
		color.NoColor = true
	}
	if err := a.LoadDocument(a.cfg.DocumentPath); err != nil {
		return err
	}

	var err error
	if strings.TrimSpace(a.cfg.Question) != "" {
		err = a.runOnce(ctx)
	} else {
		err = a.runInteractive(ctx)
	}

	if werr := a.writeTranscripts(); werr != nil {
		if err == nil {
			err = werr
		} else {
			log.Warn().Err(werr).Msg("transcript write failed")
		}
	}
	return err
}

func (a *App) runOnce(ctx context.Context) error {
	res, err := a.Ask(ctx, a.cfg.Question)
	if err != nil {
		return err
	}
	if a.cfg.JSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	a.printResult(res)
	return nil
}

func (a *App) runInteractive(ctx context.Context) error {
	doc := a.Document()
	fmt.Printf("Loaded %s (%d chars, %d words). Ask questions; \"exit\" quits.\n",
		doc.Name, doc.Chars(), doc.Words())

	prompt := color.New(color.FgCyan)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		prompt.Print("ask> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		res, err := a.Ask(ctx, line)
		switch {
		case errors.Is(err, qa.ErrUnavailable):
			color.New(color.FgRed).Printf("model unavailable: %v\n", err)
			continue
		case err != nil:
			color.New(color.FgRed).Printf("error: %v\n", err)
			continue
		}
		if a.cfg.JSONOutput {
			b, _ := json.Marshal(res)
			fmt.Println(string(b))
			continue
		}
		a.printResult(res)
	}
}

// printResult renders one result with the confidence tier color-coded:
// green for high, yellow for medium, red for low.
func (a *App) printResult(res Result) {
	if res.NoAnswer {
		color.New(color.FgYellow).Println("No answer found in the document.")
		return
	}
	fmt.Println(res.Answer)
	tierColor(res.Tier).Printf("confidence: %.1f%% (%s)\n", res.Confidence, res.Tier)
}

func tierColor(tier string) *color.Color {
	switch tier {
	case qa.TierHigh:
		return color.New(color.FgGreen)
	case qa.TierMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
