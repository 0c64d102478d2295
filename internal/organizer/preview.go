package organizer

import (
	"os"
	"path/filepath"

	"tidydl/internal/category"
)

// FileInfo describes one eligible file for presentation purposes.
type FileInfo struct {
	Name string
	Size int64
}

// CategoryPreview lists the eligible files of one category together with the
// folder they would land in.
type CategoryPreview struct {
	Category category.Category
	Folder   string
	Files    []FileInfo
}

// Preview reports what an organize pass would do, grouped by category and
// sorted by category name. It performs no filesystem mutations.
func (o *Organizer) Preview() ([]CategoryPreview, error) {
	scanned, err := o.Scan()
	if err != nil {
		return nil, err
	}

	previews := make([]CategoryPreview, 0, len(scanned))
	for _, cat := range sortedCategories(scanned) {
		preview := CategoryPreview{Category: cat, Folder: cat.FolderName()}
		for _, path := range scanned[cat] {
			size := int64(0)
			if info, err := os.Stat(path); err == nil {
				size = info.Size()
			}
			preview.Files = append(preview.Files, FileInfo{Name: filepath.Base(path), Size: size})
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

// Stats summarizes the current downloads directory state.
type Stats struct {
	TotalFiles          int
	CategoriesWithFiles int
	PerCategory         map[category.Category]int
}

// Stats counts the files an organize pass would touch right now.
func (o *Organizer) Stats() (Stats, error) {
	scanned, err := o.Scan()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalFiles:          scanned.TotalFiles(),
		CategoriesWithFiles: len(scanned),
		PerCategory:         make(map[category.Category]int, len(scanned)),
	}
	for cat, files := range scanned {
		stats.PerCategory[cat] = len(files)
	}
	return stats, nil
}
