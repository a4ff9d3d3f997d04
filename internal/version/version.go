package version

import (
	"fmt"
	"time"
)

// Заполняются линкером через -ldflags "-X ..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

var buildEpoch = time.Date(
	2024, time.June, 1,
	0, 0, 0, 0,
	time.UTC,
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildID    int
	BuildDate  string
	Commit     string
	Branch     string
	Calculated bool
	Error      string
}

// CalculateBuildID выводит порядковый номер билда из даты сборки
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	// Часы вместо суток напрямую: обе даты в UTC, перевод часов не влияет
	days := int(t.Sub(buildEpoch).Hours() / 24)
	return days, nil
}

// Info returns structured version information.
// Safe to call at any time.
func Info() VersionInfo {
	id, err := CalculateBuildID()

	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
	}

	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}

	return fmt.Sprintf(
		"Build %d (%s) commit[%s] branch[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
