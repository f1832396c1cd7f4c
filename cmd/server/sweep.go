package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/postcal/internal/events"
	job "github.com/maheshrc27/postcal/internal/jobs"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Publish due posts once and print the per-post results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			postRepo := repository.NewPostRepository(db)
			publishService := service.NewPublishService(postRepo, repository.NewPostingHistoryRepository(db), service.NewLoggingPublisher(), events.NewHub())
			sweep := job.NewPublishSweepJob(postRepo, publishService, cfg.Sweep.Interval.Duration)

			results := sweep.Sweep(cmd.Context())
			if results == nil {
				results = []service.PublishResult{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
}
