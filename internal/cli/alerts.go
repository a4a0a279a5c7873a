package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/skywarn/internal/alerts"
	"github.com/me/skywarn/pkg/model"
)

func newAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Work with weather alerts",
	}
	cmd.AddCommand(
		newAlertsListCmd(),
		newAlertsGetCmd(),
		newAlertsCreateCmd(),
		newAlertsUpdateCmd(),
		newAlertsDeleteCmd(),
	)
	return cmd
}

func newAlertsListCmd() *cobra.Command {
	var search, severity string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts, optionally filtered by text and severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collection.FetchAll(cmd.Context()); err != nil {
				return err
			}

			items := alerts.Filter(collection.State().Items, search, model.Severity(severity))
			if len(items) == 0 {
				fmt.Println("No alerts found.")
				return nil
			}

			fmt.Printf("%-12s  %-8s  %-13s  %-30s  %-7s  %s\n", "ID", "SEVERITY", "TYPE", "TITLE", "ACTIVE", "CREATED")
			fmt.Printf("%-12s  %-8s  %-13s  %-30s  %-7s  %s\n", "----", "--------", "----", "-----", "------", "-------")
			for _, a := range items {
				fmt.Printf("%-12s  %-8s  %-13s  %-30s  %-7v  %s\n",
					a.ID, a.Severity, a.Type, truncate(a.Title, 30), a.IsActive, humanize.Time(a.CreatedAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match against title and description (case-insensitive)")
	cmd.Flags().StringVar(&severity, "severity", string(model.SeverityAll), "Filter by severity (Low, Medium, High, All)")
	return cmd
}

func newAlertsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collection.FetchByID(cmd.Context(), args[0]); err != nil {
				return err
			}

			a := collection.State().Current
			fmt.Printf("ID:          %s\n", a.ID)
			fmt.Printf("Title:       %s\n", a.Title)
			fmt.Printf("Description: %s\n", a.Description)
			fmt.Printf("Type:        %s\n", a.Type)
			fmt.Printf("Severity:    %s\n", a.Severity)
			fmt.Printf("Location:    %s\n", a.Location)
			if a.Latitude != nil && a.Longitude != nil {
				fmt.Printf("Coordinates: %.5f, %.5f\n", *a.Latitude, *a.Longitude)
			}
			fmt.Printf("Window:      %s to %s\n", a.StartDate.Format(time.RFC3339), a.EndDate.Format(time.RFC3339))
			fmt.Printf("Active:      %v\n", a.IsActive)
			fmt.Printf("Created:     %s (%s)\n", a.CreatedAt.Format(time.RFC3339), humanize.Time(a.CreatedAt))
			return nil
		},
	}
}

// parseWindowTime accepts RFC3339 or a bare date.
func parseWindowTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func newAlertsCreateCmd() *cobra.Command {
	var (
		title, description, typ, severity, location string
		lat, lon                                    float64
		start, end                                  string
		active                                      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an alert (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.CreateAlertRequest{
				Title:       title,
				Description: description,
				Type:        model.AlertType(typ),
				Severity:    model.Severity(severity),
				Location:    location,
				IsActive:    active,
			}
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lon") {
				req.Longitude = &lon
			}

			var err error
			if req.StartDate, err = parseWindowTime(start); err != nil {
				return err
			}
			if req.EndDate, err = parseWindowTime(end); err != nil {
				return err
			}

			if err := collection.Create(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("Created alert %s\n", collection.State().Items[0].ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Alert title")
	cmd.Flags().StringVar(&description, "description", "", "Alert description")
	cmd.Flags().StringVar(&typ, "type", string(model.TypeOther), "Alert type (Heatwave, Thunderstorm, HeavyRain, Cyclone, Flood, Other)")
	cmd.Flags().StringVar(&severity, "severity", string(model.SeverityLow), "Severity (Low, Medium, High)")
	cmd.Flags().StringVar(&location, "location", "", "Location name")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&start, "start", time.Now().Format("2006-01-02"), "Validity window start")
	cmd.Flags().StringVar(&end, "end", time.Now().Add(24*time.Hour).Format("2006-01-02"), "Validity window end")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the alert is active")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newAlertsUpdateCmd() *cobra.Command {
	var (
		title, description, typ, severity, location string
		start, end                                  string
		active                                      bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an alert (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req model.UpdateAlertRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("type") {
				t := model.AlertType(typ)
				req.Type = &t
			}
			if cmd.Flags().Changed("severity") {
				s := model.Severity(severity)
				req.Severity = &s
			}
			if cmd.Flags().Changed("location") {
				req.Location = &location
			}
			if cmd.Flags().Changed("start") {
				t, err := parseWindowTime(start)
				if err != nil {
					return err
				}
				req.StartDate = &t
			}
			if cmd.Flags().Changed("end") {
				t, err := parseWindowTime(end)
				if err != nil {
					return err
				}
				req.EndDate = &t
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = &active
			}

			if err := collection.Update(cmd.Context(), args[0], req); err != nil {
				return err
			}
			fmt.Printf("Updated alert %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Alert title")
	cmd.Flags().StringVar(&description, "description", "", "Alert description")
	cmd.Flags().StringVar(&typ, "type", "", "Alert type")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity (Low, Medium, High)")
	cmd.Flags().StringVar(&location, "location", "", "Location name")
	cmd.Flags().StringVar(&start, "start", "", "Validity window start")
	cmd.Flags().StringVar(&end, "end", "", "Validity window end")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the alert is active")
	return cmd
}

func newAlertsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collection.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted alert %s\n", args[0])
			return nil
		},
	}
}
