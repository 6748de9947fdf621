package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
)

type cliOptions struct {
	file   string
	out    string
	format string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "timetable-cli",
		Short:         "Generate university timetables from a JSON problem file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "scheduling problem JSON file")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newGenerateCmd(opts), newStatsCmd(opts))
	return root
}

// newService builds the timetable service without cache or audit backends.
func newService() (*service.TimetableService, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	svc := service.NewTimetableService(scheduler.New(logr), nil, nil, nil, nil, logr, service.TimetableServiceConfig{
		MaxComponents: cfg.Scheduler.MaxComponents,
	})
	return svc, logr, nil
}
