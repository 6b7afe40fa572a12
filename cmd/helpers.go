package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"stormlightlabs.org/sabermetrics/internal/db"
)

// formatYearRange formats a slice of years into a compact string representation.
// Examples: [2020, 2021, 2022] -> "2020-2022"
//
//	[2020, 2022, 2023, 2025] -> "2020, 2022, 2023, 2025"
func formatYearRange(years []int) string {
	if len(years) == 0 {
		return ""
	}

	sort.Ints(years)
	var ranges []string
	start := years[0]
	end := years[0]

	for i := 1; i < len(years); i++ {
		if years[i] == end+1 {
			end = years[i]
		} else {
			if start == end {
				ranges = append(ranges, fmt.Sprintf("%d", start))
			} else if end == start+1 {
				ranges = append(ranges, fmt.Sprintf("%d, %d", start, end))
			} else {
				ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
			}
			start = years[i]
			end = years[i]
		}
	}

	if start == end {
		ranges = append(ranges, fmt.Sprintf("%d", start))
	} else if end == start+1 {
		ranges = append(ranges, fmt.Sprintf("%d, %d", start, end))
	} else {
		ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
	}

	return strings.Join(ranges, ", ")
}

// formatYearRangeWithGaps formats a slice of years showing ranges and gaps clearly.
// Examples: [1903, 1904, 1912, 1913, 1914, 1920, 1921] -> "7 years: 1903-1904, 1912-1914, 1920-1921"
//
//	[2020, 2021, 2022, 2023, 2024, 2025] -> "6 years: 2020-2025"
//	[2020, 2023, 2025] -> "3 years: 2020, 2023, 2025"
func formatYearRangeWithGaps(years []int) string {
	if len(years) == 0 {
		return "0 years"
	}

	sort.Ints(years)
	var ranges []string
	start := years[0]
	end := years[0]

	for i := 1; i < len(years); i++ {
		if years[i] == end+1 {
			end = years[i]
		} else {
			if start == end {
				ranges = append(ranges, fmt.Sprintf("%d", start))
			} else {
				ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
			}
			start = years[i]
			end = years[i]
		}
	}

	if start == end {
		ranges = append(ranges, fmt.Sprintf("%d", start))
	} else {
		ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
	}

	rangeStr := strings.Join(ranges, ", ")
	return fmt.Sprintf("%d years: %s", len(years), rangeStr)
}

// formatLargeNumber formats a number with comma separators.
// Example: 1234567 -> "1,234,567"
func formatLargeNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	commaIdx := len(s) % 3
	if commaIdx == 0 {
		commaIdx = 3
	}

	for i, c := range s {
		if i == commaIdx && i != 0 {
			result = append(result, ',')
			commaIdx += 3
		}
		result = append(result, byte(c))
	}

	return string(result)
}

func formatTTL(ttl time.Duration) string {
	if ttl < 0 {
		return "No expiry"
	}
	if ttl < time.Minute {
		return fmt.Sprintf("%ds", int(ttl.Seconds()))
	}
	if ttl < time.Hour {
		return fmt.Sprintf("%dm", int(ttl.Minutes()))
	}
	return fmt.Sprintf("%.1fh", ttl.Hours())
}

func formatRefresh(entry *db.DatasetRefresh) string {
	if entry == nil || entry.LastLoadedAt.IsZero() {
		return "not yet recorded"
	}

	return fmt.Sprintf("%s (%s ago, %d rows)",
		entry.LastLoadedAt.Format(time.RFC1123),
		time.Since(entry.LastLoadedAt).Round(time.Minute),
		entry.RowCount,
	)
}

// parseYearFlag parses a comma-separated year flag into a sorted, de-duplicated
// list of years. Supports single years, "start-end" ranges, and the literal
// "all" (1910 through the current year).
func parseYearFlag(flagValue string) ([]int, error) {
	if strings.TrimSpace(flagValue) == "" {
		return nil, nil
	}

	var years []int
	tokens := strings.SplitSeq(flagValue, ",")
	for token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if token == "all" {
			currentYear := time.Now().Year()
			for year := 1910; year <= currentYear; year++ {
				years = append(years, year)
			}
			continue
		}

		if strings.Contains(token, "-") {
			parts := strings.SplitN(token, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid year in range: %s", parts[0])
			}
			end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid year in range: %s", parts[1])
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %s: end before start", token)
			}
			for year := start; year <= end; year++ {
				years = append(years, year)
			}
			continue
		}

		year, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid year: %s", token)
		}
		years = append(years, year)
	}

	if len(years) == 0 {
		return nil, nil
	}

	sort.Ints(years)
	years = uniqueInts(years)
	return years, nil
}

// uniqueInts collapses consecutive duplicates in a sorted slice.
func uniqueInts(values []int) []int {
	if len(values) == 0 {
		return values
	}

	result := make([]int, 0, len(values))
	prev := values[0]
	result = append(result, prev)

	for _, v := range values[1:] {
		if v == prev {
			continue
		}
		result = append(result, v)
		prev = v
	}

	return result
}

func humanizeModTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	ago := time.Since(t)
	return fmt.Sprintf("%s (%s ago)", t.Format("2006-01-02 15:04"), ago.Round(time.Minute))
}
