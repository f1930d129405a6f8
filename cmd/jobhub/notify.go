package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestTo string

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test alert email",
	Long:  "Sends a dummy job alert through the configured mailer to verify delivery works.",
	RunE:  runNotifyTest,
}

func init() {
	notifyTestCmd.Flags().StringVar(&notifyTestTo, "to", "", "recipient address (required)")
	notifyTestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	m := setupMailer(cfg, logger)
	testJob := model.Job{
		ID:          "test-001",
		Title:       "Test Notification: Delivery Verified",
		Company:     "jobhub",
		Description: "If you can read this, alert delivery is working.",
		Location:    "Everywhere",
		Type:        model.TypeFullTime,
		Level:       model.LevelMid,
		Tags:        []string{"test"},
		Remote:      true,
		CreatedAt:   time.Now(),
		Source:      model.SourceInternal,
	}

	if err := m.Dispatch(cmd.Context(), notifyTestTo, "Test Job Alert", []model.Job{testJob}); err != nil {
		logger.Error("test notification failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test notification sent successfully", "to", notifyTestTo)
	return nil
}
