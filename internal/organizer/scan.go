package organizer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"tidydl/internal/category"
	"tidydl/internal/logging"
	"tidydl/internal/services"
)

// ScanResult maps categories to the eligible files found for them, in
// directory order. It is recomputed on every scan and never persisted.
type ScanResult map[category.Category][]string

// TotalFiles returns the number of eligible files across all categories.
func (r ScanResult) TotalFiles() int {
	total := 0
	for _, files := range r {
		total += len(files)
	}
	return total
}

// Scan walks the top level of the downloads directory and classifies eligible
// files. Directories and hidden entries are skipped outright; files newer than
// the minimum age or classified into a disabled category are silently
// excluded. Entries whose metadata cannot be read are skipped with a warning.
func (o *Organizer) Scan() (ScanResult, error) {
	entries, err := os.ReadDir(o.cfg.DownloadsPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "scanning", "read downloads directory", o.cfg.DownloadsPath, err)
	}

	cutoff := o.now().AddDate(0, 0, -o.cfg.MinimumFileAgeDays)
	result := make(ScanResult)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			o.logger.Warn("could not read file metadata",
				logging.String("file", name),
				logging.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if info.ModTime().After(cutoff) {
			o.logger.Debug("skipping recent file", logging.String("file", name))
			continue
		}

		cat := category.ForFile(name)
		if !o.cfg.CategoryEnabled(cat) {
			o.logger.Debug("skipping file in disabled category",
				logging.String("file", name),
				logging.String("category", cat.String()))
			continue
		}

		result[cat] = append(result[cat], filepath.Join(o.cfg.DownloadsPath, name))
	}

	o.logger.Info("scan completed",
		logging.String("path", o.cfg.DownloadsPath),
		logging.Int("eligible_files", result.TotalFiles()),
		logging.Duration("minimum_age", time.Duration(o.cfg.MinimumFileAgeDays)*24*time.Hour))

	return result, nil
}
