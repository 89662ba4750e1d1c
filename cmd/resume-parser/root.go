package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/talentlens/resume-parser/pkg/config"
	"github.com/talentlens/resume-parser/pkg/logger"
)

const serviceName = "resume-parser"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Extract contact details, skills, name and education from resumes",
	Long: `resume-parser reads the plain text of a resume and extracts the
candidate's name, contact details, skills grouped by category and
education history.

Run "resume-parser serve" for the web form and JSON API, or
"resume-parser parse" to parse a single resume in the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (default ./config/resume-parser.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// loadConfig reads and validates configuration for the running environment
func loadConfig() (*config.Config, error) {
	return config.LoadWithValidation(serviceName, cfgFile)
}

// newLogger builds the process logger writing to w
func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return logger.NewWithWriter(w, serviceName, cfg.Server.Environment).WithLevel(level)
}
