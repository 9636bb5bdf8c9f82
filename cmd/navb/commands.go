package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rexliu/navb/pkg/codec"
	"github.com/rexliu/navb/pkg/config"
	"github.com/rexliu/navb/pkg/nav"
	"github.com/rexliu/navb/pkg/session"
)

var errInvalid = errors.New("navigation is invalid")

func initCmd(e *env) *cobra.Command {
	var (
		name  string
		force bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Initialize a profile (writes config.toml)",
		Annotations: map[string]string{annotationProfile: profileSkip},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(e.profileDir, 0o700); err != nil {
				return err
			}
			path := filepath.Join(e.profileDir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			cfg := config.DefaultProfile(name)
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized profile %s at %s\n", cfg.ProfileName, e.profileDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "default", "Profile name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config if present")
	return cmd
}

func treeCmd(e *env) *cobra.Command {
	var (
		format string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the editable tree for a navigation config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := e.importFile(cmd, argOrEmpty(args), format)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, s.Forest())
			}
			renderTree(cmd.OutOrStdout(), s.Forest())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Input format: json or yaml (default: from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")
	return cmd
}

func validateCmd(e *env) *cobra.Command {
	var (
		format string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a navigation config for reserved paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := e.importFile(cmd, argOrEmpty(args), format)
			if err != nil {
				return err
			}
			if asJSON {
				if err := writeJSON(cmd, res); err != nil {
					return err
				}
			} else {
				printResult(cmd.OutOrStdout(), res)
			}
			if !res.IsValid {
				return fmt.Errorf("%w: %d error(s)", errInvalid, len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Input format: json or yaml (default: from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func fmtCmd(e *env) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat JSON text with two-space indentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := argOrEmpty(args)
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			out, err := codec.Reformat(data)
			if err != nil {
				return err
			}
			if write && path != "" && path != "-" {
				return os.WriteFile(path, out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

func exportCmd(e *env) *cobra.Command {
	var (
		inFormat  string
		outFormat string
		outPath   string
	)
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Round-trip a navigation config through the tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := e.importFile(cmd, argOrEmpty(args), inFormat)
			if err != nil {
				return err
			}
			if outFormat == "" {
				outFormat = e.cfg.Output.Format
			}
			return writeExport(cmd, s, outFormat, outPath)
		},
	}
	cmd.Flags().StringVar(&inFormat, "in-format", "", "Input format: json or yaml (default: from extension)")
	cmd.Flags().StringVar(&outFormat, "format", "", "Output format: json or yaml (default: output.format)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to path instead of stdout")
	return cmd
}

func applyCmd(e *env) *cobra.Command {
	var (
		format  string
		inline  string
		opsFile string
		outPath string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Apply a JSON batch of edits and print the resulting config",
		Long: `Apply a JSON batch of edits and print the resulting config.

The batch is an object {"ops": [...]} or a bare array. Each op has a "type" of
add_item, add_child, update_item, delete_item, move_item or duplicate_item.
Nodes are addressed by id or by dotted index path as printed by "navb tree".
The batch is all-or-nothing. With --dry-run the batch is checked and nothing
is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			switch {
			case opsFile != "":
				data, err := os.ReadFile(opsFile)
				if err != nil {
					return err
				}
				payload = data
			case inline != "":
				payload = []byte(inline)
			default:
				return fmt.Errorf("--ops or --ops-file required")
			}
			s, _, err := e.importFile(cmd, argOrEmpty(args), format)
			if err != nil {
				return err
			}
			ops, err := decodeOps(payload, s.Forest())
			if err != nil {
				return err
			}
			if dryRun {
				if err := nav.ValidateOps(s.Forest(), ops); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d op(s)\n", len(ops))
				return nil
			}
			if err := s.Apply(ops...); err != nil {
				return err
			}
			e.logger.Info().Int("ops", len(ops)).Msg("applied edits")
			if res := s.Validate(); !res.IsValid {
				e.logger.Warn().Strs("errors", res.Errors).Msg("result has validation errors")
			}
			return writeExport(cmd, s, e.cfg.Output.Format, outPath)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Input format: json or yaml (default: from extension)")
	cmd.Flags().StringVar(&inline, "ops", "", "Inline JSON edit batch")
	cmd.Flags().StringVar(&opsFile, "ops-file", "", "Path to a JSON edit batch")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to path instead of stdout")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Check the batch without printing the result")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationProfile: profileSkip},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "navb version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

func writeExport(cmd *cobra.Command, s *session.Session, format, path string) error {
	f, err := session.ParseFormat(format)
	if err != nil {
		return err
	}
	out, err := s.Export(f)
	if err != nil {
		return err
	}
	if path != "" {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res nav.Result) {
	if res.IsValid {
		fmt.Fprintln(w, "valid")
		return
	}
	for _, msg := range res.Errors {
		fmt.Fprintln(w, msg)
	}
}
