package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bookplanner/cmd/cli/command/client"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Daily reminder notification commands",
}

var notifyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether reminders are enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newClient().NotificationStatus()
		if err != nil {
			return fmt.Errorf("failed to get notification status: %w", err)
		}

		state := "disabled"
		if status.Enabled {
			state = "enabled"
		}
		fmt.Printf("Reminders: %s\n", state)
		if status.NextReminder != "" {
			fmt.Printf("Next reminder: %s\n", status.NextReminder)
		}
		fmt.Printf("Daily target: %d pages\n", status.DailyPages)
		fmt.Printf("Listening clients: %d\n", status.Clients)
		return nil
	},
}

var notifyEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable the daily reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setNotifications(true)
	},
}

var notifyDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the daily reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setNotifications(false)
	},
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification to listening clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := newClient().SendTestNotification()
		if err != nil {
			return fmt.Errorf("failed to send test notification: %w", err)
		}
		success("Sent %q", n.Title)
		return nil
	},
}

var notifyListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print notifications as they arrive (Ctrl+C to stop)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := client.ListenNotifications(ctx, apiURL, os.Stdout); err != nil {
			return fmt.Errorf("notification stream ended: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyStatusCmd, notifyEnableCmd, notifyDisableCmd, notifyTestCmd, notifyListenCmd)
}

func setNotifications(enabled bool) error {
	status, err := newClient().SetNotifications(enabled)
	if err != nil {
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	if status.Enabled {
		success("Reminders enabled")
		if status.NextReminder != "" {
			fmt.Printf("Next reminder: %s\n", status.NextReminder)
		}
	} else {
		success("Reminders disabled")
	}
	return nil
}
