package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/nftmeta"
)

// fileReport is the JSON output of validate for one file.
type fileReport struct {
	File   string        `json:"file"`
	Valid  bool          `json:"valid"`
	Issues []issueReport `json:"issues,omitempty"`
}

type issueReport struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Rule    string         `json:"rule,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <kind> <file...>",
		Short: "Decode and validate documents",
		Long: `Decode each file as the given kind, then run the value rules.

Use "-" to read JSON from stdin. Run "nftmeta kinds" for the kind list.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			var reports []fileReport
			invalid := 0
			for _, file := range args[1:] {
				iss, err := a.validateFile(cmd, k, file)
				if err != nil {
					return err
				}
				if len(iss) > 0 {
					invalid++
				}
				reports = append(reports, toReport(file, iss))
			}
			a.logger.Info("validation finished",
				zap.String("kind", k.name),
				zap.Int("files", len(reports)),
				zap.Int("invalid", invalid))
			if err := a.printReports(cmd.OutOrStdout(), reports); err != nil {
				return err
			}
			if invalid > 0 {
				return errInvalid
			}
			return nil
		},
	}
}

// validateFile returns the decode or rule issues of one file. Errors that are
// not Issues (unreadable file) abort the run.
func (a *app) validateFile(cmd *cobra.Command, k kind, file string) (nftmeta.Issues, error) {
	v, err := a.decodeFile(cmd, k, file)
	if err != nil {
		if iss, ok := nftmeta.AsIssues(err); ok {
			return iss, nil
		}
		return nil, err
	}
	return k.check(v, a.cfg.ruleOpts()...), nil
}

func (a *app) decodeFile(cmd *cobra.Command, k kind, file string) (any, error) {
	data, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return nil, err
	}
	isYAML := isYAMLFile(file)
	a.logger.Debug("decoding",
		zap.String("file", file),
		zap.String("kind", k.name),
		zap.Bool("yaml", isYAML),
		zap.Int("bytes", len(data)))
	return k.decode(data, isYAML, a.cfg.parseOpt())
}

// decodeFailed prints decode issues as a report and maps them to errInvalid.
// Other errors pass through.
func (a *app) decodeFailed(cmd *cobra.Command, file string, err error) error {
	iss, ok := nftmeta.AsIssues(err)
	if !ok {
		return err
	}
	if perr := a.printReports(cmd.OutOrStdout(), []fileReport{toReport(file, iss)}); perr != nil {
		return perr
	}
	return errInvalid
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}

func isYAMLFile(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func toReport(file string, iss nftmeta.Issues) fileReport {
	r := fileReport{File: file, Valid: len(iss) == 0}
	for _, it := range iss {
		r.Issues = append(r.Issues, issueReport{
			Path:    it.Path,
			Code:    it.Code,
			Message: it.Message,
			Hint:    it.Hint,
			Rule:    it.Rule,
			Params:  it.Params,
		})
	}
	return r
}

func (a *app) printReports(w io.Writer, reports []fileReport) error {
	if a.cfg.Output == "json" {
		b, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(w, "%s: ok\n", r.File)
			continue
		}
		for _, it := range r.Issues {
			line := fmt.Sprintf("%s:%s: %s: %s", r.File, it.Path, it.Code, it.Message)
			if it.Hint != "" {
				line += " (" + it.Hint + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}
