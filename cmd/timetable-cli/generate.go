package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

func newGenerateCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Schedule the problem and write the timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (defaults to stdout)")
	cmd.Flags().StringVar(&opts.format, "format", string(dto.ExportJSON), "output format: json, csv or pdf")
	return cmd
}

func generate(cmd *cobra.Command, opts *cliOptions) error {
	req, err := loadRequest(opts.file)
	if err != nil {
		return err
	}
	svc, logr, err := newService()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	file, run, err := svc.Export(cmd.Context(), req, dto.ExportFormat(opts.format))
	if err != nil {
		return err
	}
	if file == nil {
		failure, _ := json.MarshalIndent(run.Response, "", "  ")
		fmt.Fprintln(cmd.ErrOrStderr(), string(failure))
		return appErrors.Clone(appErrors.ErrSchedulingFailed, "timetable generation failed: "+run.Response.Message)
	}

	for _, warning := range run.Response.Warnings {
		logr.Warn("scheduling warning", zap.String("run_id", run.Response.RunID), zap.String("warning", warning))
	}
	return writeOutput(cmd.OutOrStdout(), opts.out, file.Data)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
