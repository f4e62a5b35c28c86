// Package data loads historical bar series from local files. It understands
// plain CSV, xz-compressed CSV, and zip archives of CSV files.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/stratbench/stratbench/market"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads a bar series from path. Format is chosen by extension:
// .csv plain, .xz xz-compressed CSV, .zip archive of CSV files (all members
// are concatenated and re-sorted by date).
func Load(path string) (market.Series, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return loadZip(path)
	case strings.HasSuffix(path, ".xz"):
		return loadXZ(path)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads bars from a plain CSV file with columns
// date,open,high,low,close,volume. A header row is tolerated.
func LoadCSV(path string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	return parseBars(f, path)
}

func loadXZ(path string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader for %s: %w", path, err)
	}
	return parseBars(r, path)
}

func loadZip(path string) (market.Series, error) {
	dir, err := os.MkdirTemp("", "stratbench-bars-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var all market.Series
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".csv") {
			return err
		}
		bars, err := LoadCSV(p)
		if err != nil {
			return err
		}
		all = append(all, bars...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no csv members in %s", path)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return all, nil
}

func parseBars(r io.Reader, path string) (market.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		bars market.Series
		bad  int
	)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			bad++
			continue
		}
		if len(rec) < 5 {
			bad++
			continue
		}

		date, err := parseDate(strings.TrimSpace(rec[0]))
		if err != nil {
			// Header row or junk line.
			bad++
			continue
		}

		vals := make([]float64, 0, 5)
		ok := true
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok || len(vals) < 4 {
			bad++
			continue
		}

		b := market.Bar{
			Date:  date,
			Open:  vals[0],
			High:  vals[1],
			Low:   vals[2],
			Close: vals[3],
		}
		if len(vals) > 4 {
			b.Volume = vals[4]
		}
		bars = append(bars, b)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars parsed from %s (%d unusable lines)", path, bad)
	}
	return bars, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
