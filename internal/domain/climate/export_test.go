package climate

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	days := []DailyRecord{
		{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), AvgTemp: 25.4, MaxTemp: 31, RelativeHumidity: 70.5, SolarRadiation: 22.1, CloudCover: 35, WindSpeed: 12.3},
		{Date: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), AvgTemp: 26, MaxTemp: 32.2, RelativeHumidity: 68, SolarRadiation: 21, CloudCover: 40.5, WindSpeed: 9},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, days))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Date,Avg_Temp,Max_Temp,Relative_Humidity,Solar_Radiation,Cloud_Cover,Wind_Speed", lines[0])
	require.Equal(t, "2025-07-01,25.4,31,70.5,22.1,35,12.3", lines[1])
	require.Equal(t, "2025-07-02,26,32.2,68,21,40.5,9", lines[2])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "climate_data_miami_30days_20250714.csv", ExportFilename("miami", 30, now))
	require.Equal(t, "climate_data_custom_7days_20250714.csv", ExportFilename(" ", 7, now))
}
