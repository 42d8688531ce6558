package media

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
)

var errStopWalk = errors.New("walk stopped")

// Walk lazily yields the assets under root in lexical order. Entries that
// cannot be read, and symlinks with a media extension, are reported through
// onSkip (which may be nil) and never yielded. Walking stops as soon as the
// consumer stops ranging.
//
// A root that is itself a symlink is followed; yielded paths stay under root.
func Walk(root string, onSkip func(SkippedEntry)) iter.Seq[Asset] {
	walkRoot := resolveRoot(root)
	display := func(path string) string {
		if walkRoot == root {
			return path
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}
	skip := func(path, reason string) {
		if onSkip != nil {
			onSkip(SkippedEntry{Path: display(path), Reason: reason})
		}
	}
	return func(yield func(Asset) bool) {
		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				skip(path, err.Error())
				if d != nil && d.IsDir() && path != walkRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			category, ok := Classify(path)
			if !ok {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				skip(path, "symlink")
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				skip(path, err.Error())
				return nil
			}
			asset := Asset{
				Path:     display(path),
				Category: category,
				Size:     info.Size(),
				Mode:     info.Mode().Perm(),
			}
			if !yield(asset) {
				return errStopWalk
			}
			return nil
		})
	}
}

func resolveRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return root
	}
	return resolved
}

// Discover walks root and returns every asset sorted by path, together with
// the entries that were skipped.
func Discover(root string) ([]Asset, []SkippedEntry) {
	var skipped []SkippedEntry
	var assets []Asset
	for asset := range Walk(root, func(entry SkippedEntry) {
		skipped = append(skipped, entry)
	}) {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, skipped
}

// CountByCategory tallies assets per category.
func CountByCategory(assets []Asset) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, asset := range assets {
		counts[asset.Category]++
	}
	return counts
}
