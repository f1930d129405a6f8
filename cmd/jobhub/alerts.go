package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/search"
	"github.com/OctavioMinteguia/jobhub/internal/store"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Alert subscription subcommands",
}

var alertsListEmail string

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alert subscriptions",
	Long:  "Prints all active alerts, or every alert for one address when --email is given.",
	RunE:  runAlertsList,
}

var (
	alertAddEmail    string
	alertAddPattern  string
	alertAddCompany  string
	alertAddLocation string
	alertAddType     string
	alertAddLevel    string
	alertAddRemote   string
)

var alertsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Subscribe an email address to new-job alerts",
	RunE:  runAlertsAdd,
}

var alertsRemoveCmd = &cobra.Command{
	Use:   "remove <alert-id>",
	Short: "Unsubscribe an alert (deactivates, never deletes)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsRemove,
}

func init() {
	alertsListCmd.Flags().StringVar(&alertsListEmail, "email", "", "list alerts for this address only")

	alertsAddCmd.Flags().StringVar(&alertAddEmail, "email", "", "subscriber email address (required)")
	alertsAddCmd.Flags().StringVarP(&alertAddPattern, "pattern", "p", "", "free-text search pattern")
	alertsAddCmd.Flags().StringVar(&alertAddCompany, "company", "", "company filter")
	alertsAddCmd.Flags().StringVar(&alertAddLocation, "location", "", "location filter")
	alertsAddCmd.Flags().StringVar(&alertAddType, "type", "", "job type filter")
	alertsAddCmd.Flags().StringVar(&alertAddLevel, "level", "", "level filter")
	alertsAddCmd.Flags().StringVar(&alertAddRemote, "remote", "", "remote filter (true/false)")
	alertsAddCmd.MarkFlagRequired("email")

	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsAddCmd)
	alertsCmd.AddCommand(alertsRemoveCmd)
	rootCmd.AddCommand(alertsCmd)
}

func openStore() (*store.SQLiteStore, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store.NewSQLiteStore(cfg.DBPath)
}

func runAlertsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	var alerts []model.Alert
	if alertsListEmail != "" {
		alerts, err = st.FindAlertsByEmail(cmd.Context(), alertsListEmail)
	} else {
		alerts, err = st.FindActiveAlerts(cmd.Context())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list alerts: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-38s %-28s %-22s %-8s %s\n", "ID", "Email", "Pattern", "Active", "Filters")
	fmt.Println(strings.Repeat("─", 110))
	for _, a := range alerts {
		fmt.Printf("%-38s %-28s %-22s %-8t %s\n",
			a.ID, a.Email, truncate(a.SearchPattern, 21), a.Active, formatFilters(a.Filters))
	}
	fmt.Printf("\nTotal: %d alerts\n", len(alerts))
	return nil
}

func runAlertsAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	a, err := model.NewAlert(alertAddEmail, alertAddPattern, model.AlertFilters{
		Company:  alertAddCompany,
		Location: alertAddLocation,
		Type:     alertAddType,
		Level:    alertAddLevel,
		Remote:   search.RemoteFlag(alertAddRemote),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid alert: %v\n", err)
		os.Exit(1)
	}

	if err := st.SaveAlert(cmd.Context(), a); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save alert: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("subscribed %s (alert %s)\n", a.Email, a.ID)
	return nil
}

func runAlertsRemove(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	a, err := st.FindAlertByID(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to look up alert: %v\n", err)
		os.Exit(1)
	}
	if a == nil {
		fmt.Fprintf(os.Stderr, "no alert with id %s\n", args[0])
		os.Exit(1)
	}

	a.Deactivate()
	if err := st.SaveAlert(cmd.Context(), *a); err != nil {
		fmt.Fprintf(os.Stderr, "failed to deactivate alert: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("unsubscribed %s (alert %s)\n", a.Email, a.ID)
	return nil
}

func formatFilters(f model.AlertFilters) string {
	var parts []string
	if f.Company != "" {
		parts = append(parts, "company="+f.Company)
	}
	if f.Location != "" {
		parts = append(parts, "location="+f.Location)
	}
	if f.Type != "" {
		parts = append(parts, "type="+f.Type)
	}
	if f.Level != "" {
		parts = append(parts, "level="+f.Level)
	}
	if f.Remote != nil {
		parts = append(parts, fmt.Sprintf("remote=%t", *f.Remote))
	}
	if len(parts) == 0 {
		return "(all jobs)"
	}
	return strings.Join(parts, " ")
}
