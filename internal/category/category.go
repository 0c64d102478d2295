package category

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a fixed classification bucket for files based on extension.
type Category string

const (
	Installers Category = "Installers"
	Documents  Category = "Documents"
	Images     Category = "Images"
	Videos     Category = "Videos"
	Audio      Category = "Audio"
	Archives   Category = "Archives"
	Code       Category = "Code"
	// Other is the catch-all for unrecognized extensions.
	Other Category = "Other"
)

// FolderPrefix leads destination folder names so they sort after ordinary
// alphabetic names in directory listings.
const FolderPrefix = "~"

// extensionTable maps each category to its recognized extensions. The sets are
// non-overlapping; Other deliberately owns none.
var extensionTable = map[Category][]string{
	Installers: {".dmg", ".pkg", ".app", ".mpkg"},
	Documents: {
		".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt",
		".xls", ".xlsx", ".csv", ".numbers",
		".ppt", ".pptx", ".keynote", ".pages",
	},
	Images: {
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".heic",
		".webp", ".bmp", ".tiff", ".ico",
	},
	Videos: {
		".mp4", ".mov", ".avi", ".mkv", ".webm", ".flv",
		".wmv", ".m4v", ".mpg", ".mpeg",
	},
	Audio: {".mp3", ".m4a", ".wav", ".aac", ".flac", ".ogg", ".wma", ".opus"},
	Archives: {
		".zip", ".rar", ".7z", ".tar", ".gz", ".bz2",
		".xz", ".tgz",
	},
	Code: {
		".json", ".yaml", ".yml", ".xml", ".toml",
		".py", ".js", ".ts", ".tsx", ".jsx", ".swift", ".java", ".cpp",
		".c", ".h", ".go", ".rs", ".rb", ".php",
		".md", ".rst", ".sh", ".bash",
	},
	Other: {},
}

var byExtension = buildExtensionIndex()

func buildExtensionIndex() map[string]Category {
	index := make(map[string]Category)
	for cat, exts := range extensionTable {
		for _, ext := range exts {
			index[ext] = cat
		}
	}
	return index
}

// All returns every known category in display order.
func All() []Category {
	return []Category{Installers, Documents, Images, Videos, Audio, Archives, Code, Other}
}

// ForExtension classifies a file extension. The lookup is case-insensitive and
// tolerates a missing leading dot. Unrecognized extensions map to Other.
func ForExtension(ext string) Category {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if cat, ok := byExtension[ext]; ok {
		return cat
	}
	return Other
}

// ForFile classifies a file path by its extension.
func ForFile(path string) Category {
	return ForExtension(filepath.Ext(path))
}

// Parse canonicalizes a user-supplied category name ("documents" becomes
// Documents). The second return reports whether the name is known.
func Parse(name string) (Category, bool) {
	canonical := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
	cat := Category(canonical)
	if _, ok := extensionTable[cat]; ok {
		return cat, true
	}
	return "", false
}

// String returns the category's display name.
func (c Category) String() string {
	return string(c)
}

// FolderName returns the destination folder name for the category, including
// the sorting prefix (for example "~Documents").
func (c Category) FolderName() string {
	return FolderPrefix + string(c)
}

// Extensions returns the extensions recognized for the category.
func (c Category) Extensions() []string {
	exts := extensionTable[c]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}
