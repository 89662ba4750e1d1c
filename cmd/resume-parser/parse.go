package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/render"
	"github.com/talentlens/resume-parser/pkg/httputil"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse one resume and print the extracted fields",
	Long: `Parse one resume and print the extracted fields.

The resume is read from the given file, or from standard input when the
file is "-" or omitted. On an interactive terminal without input a form
opens to paste the text.

Examples:
  resume-parser parse cv.txt
  cat cv.txt | resume-parser parse --json
  resume-parser parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout carries the result; logs go to stderr
	log := newLogger(cfg, cmd.ErrOrStderr())

	text, err := readResume(cmd, args)
	if err != nil {
		if errors.Is(err, render.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Parsing canceled.")
			return nil
		}
		return err
	}

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = httputil.WithRequestID(ctx, uuid.New().String())

	result, err := a.service.Parse(ctx, text, events.ChannelCLI)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return render.NewRenderer(render.StylesFor(out), render.Width(out)).Write(out, result)
}

// readResume reads the file argument, piped input, or prompts on a terminal
func readResume(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read resume: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
		return render.PromptResume()
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	return string(data), nil
}
