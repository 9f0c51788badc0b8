package imaging

import "fmt"

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < 0 {
		return "-" + FormatBytes(-bytes)
	}
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDelta formats a byte saving; growth is shown with a leading minus.
func FormatDelta(saved int64) string {
	if saved < 0 {
		return "- " + FormatBytes(-saved)
	}
	return FormatBytes(saved)
}

// PercentChange returns how much smaller after is than before, in percent.
// The second result is false when before is zero.
func PercentChange(before, after int64) (float64, bool) {
	if before == 0 {
		return 0, false
	}
	return float64(before-after) / float64(before) * 100, true
}
