package climate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/climate-advisor/pkg/util"
)

var csvHeader = []string{
	"Date",
	"Avg_Temp",
	"Max_Temp",
	"Relative_Humidity",
	"Solar_Radiation",
	"Cloud_Cover",
	"Wind_Speed",
}

// WriteCSV serializes the daily records with a header row.
func WriteCSV(w io.Writer, days []DailyRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range days {
		row := []string{
			d.Date.Format(util.DateLayout),
			formatNumber(d.AvgTemp),
			formatNumber(d.MaxTemp),
			formatNumber(d.RelativeHumidity),
			formatNumber(d.SolarRadiation),
			formatNumber(d.CloudCover),
			formatNumber(d.WindSpeed),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportFilename names the download, e.g. climate_data_miami_30days_20250714.csv.
func ExportFilename(zone string, days int, now time.Time) string {
	slug := strings.ReplaceAll(strings.TrimSpace(zone), " ", "-")
	if slug == "" {
		slug = "custom"
	}
	return fmt.Sprintf("climate_data_%s_%ddays_%s.csv", slug, days, now.Format("20060102"))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
