package media

import (
	"path/filepath"
	"strings"
)

// Category classifies an asset and selects its transform parameters.
type Category string

const (
	CategoryJPEG  Category = "image-jpeg"
	CategoryPNG   Category = "image-png"
	CategoryVideo Category = "video"
)

// Categories lists every category in report order.
var Categories = []Category{CategoryJPEG, CategoryPNG, CategoryVideo}

// extensionCategories maps lowercase extensions (with leading dot) to categories.
var extensionCategories = map[string]Category{
	".jpg":  CategoryJPEG,
	".jpeg": CategoryJPEG,
	".png":  CategoryPNG,
	".mp4":  CategoryVideo,
	".mov":  CategoryVideo,
	".webm": CategoryVideo,
}

// Classify returns the category for path based on its extension,
// case-insensitively. The second result is false for unsupported files.
func Classify(path string) (Category, bool) {
	category, ok := extensionCategories[strings.ToLower(filepath.Ext(path))]
	return category, ok
}

func (c Category) String() string { return string(c) }

// IsImage reports whether the category is one of the still image categories.
func (c Category) IsImage() bool {
	return c == CategoryJPEG || c == CategoryPNG
}
