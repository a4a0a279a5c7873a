package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Show the current conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			weather, err := client.CurrentWeather(cmd.Context())
			if err != nil {
				return err
			}
			if weather.Location != "" {
				fmt.Printf("%s: ", weather.Location)
			}
			fmt.Printf("%.1f°C, %s\n", weather.Temperature, weather.Condition)
			fmt.Printf("Humidity %d%%, wind %.1f km/h\n", weather.Humidity, weather.WindSpeed)
			return nil
		},
	}
}

func newForecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Show hazard predictions from the forecast model",
		RunE: func(cmd *cobra.Command, args []string) error {
			predictions, err := client.ForecastPredictions(cmd.Context())
			if err != nil {
				return err
			}
			if len(predictions) == 0 {
				fmt.Println("No predictions available.")
				return nil
			}

			fmt.Printf("%-13s  %-8s  %-12s  %-20s  %s\n", "TYPE", "SEVERITY", "PROBABILITY", "LOCATION", "WHEN")
			fmt.Printf("%-13s  %-8s  %-12s  %-20s  %s\n", "----", "--------", "-----------", "--------", "----")
			for _, p := range predictions {
				fmt.Printf("%-13s  %-8s  %-12s  %-20s  %s\n",
					p.Type, p.Severity, fmt.Sprintf("%.0f%%", p.Probability*100), truncate(p.Location, 20), humanize.Time(p.Date))
			}
			return nil
		},
	}
}
