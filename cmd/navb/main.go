// Package main is the entry point for the navb CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rexliu/navb/pkg/config"
	"github.com/rexliu/navb/pkg/logging"
	"github.com/rexliu/navb/pkg/nav"
	"github.com/rexliu/navb/pkg/session"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd, err := rootCmd().ExecuteC()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s error: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}

// Commands annotated with profileSkip run on the default profile without
// reading config.toml, so that a broken profile can be replaced.
const (
	annotationProfile = "navb/profile"
	profileSkip       = "skip"
)

// env is the profile-derived state shared by every command.
type env struct {
	profileDir string
	cfg        *config.ProfileConfig
	logger     *logging.Logger
}

func (e *env) newSession() *session.Session {
	return session.New(nav.NewValidator(e.cfg.Validation.ReservedPaths), e.logger)
}

func rootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:           "navb",
		Short:         "Navigation config editor",
		Long:          `navb converts a documentation site's navigation configuration to an editable tree and back, and checks it against reserved paths.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationProfile] == profileSkip {
				e.cfg = config.DefaultProfile("default")
			} else {
				cfg, err := config.LoadOrDefault(e.profileDir)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				e.cfg = cfg
			}
			e.logger = logging.New("navb")
			return e.logger.Configure(loggingConfig(e.profileDir, e.cfg.Logging))
		},
	}
	cmd.PersistentFlags().StringVar(&e.profileDir, "profile", ".", "Profile directory holding config.toml")

	cmd.AddCommand(initCmd(e))
	cmd.AddCommand(treeCmd(e))
	cmd.AddCommand(validateCmd(e))
	cmd.AddCommand(fmtCmd(e))
	cmd.AddCommand(exportCmd(e))
	cmd.AddCommand(applyCmd(e))
	cmd.AddCommand(shellCmd(e))
	cmd.AddCommand(versionCmd())
	return cmd
}

func loggingConfig(profileDir string, cfg config.LoggingConfig) config.LoggingConfig {
	cfg.FilePath = config.ResolvePath(profileDir, cfg.FilePath)
	return cfg
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// formatFor picks the text format from an explicit flag or the file extension.
func formatFor(path, flag string) (session.Format, error) {
	if flag != "" {
		return session.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return session.FormatYAML, nil
	default:
		return session.FormatJSON, nil
	}
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// importFile loads path into a fresh session.
func (e *env) importFile(cmd *cobra.Command, path, format string) (*session.Session, nav.Result, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, nav.Result{}, err
	}
	f, err := formatFor(path, format)
	if err != nil {
		return nil, nav.Result{}, err
	}
	s := e.newSession()
	res, err := s.Import(data, f)
	if err != nil {
		return nil, nav.Result{}, err
	}
	return s, res, nil
}
