// Package journal coordinates storage, extraction, archiving, indexing
// and compilation into one service surface consumed by the API, the MCP
// server and the CLI.
package journal

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/halstad/chronicle/internal/storage"
)

// datedStem matches entry filenames. Anything else in the diary
// directory (corpus files, editor droppings) is silently excluded.
var datedStem = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.md$`)

// ListDates returns every entry date found in the diary directory, in
// ascending date order. Lexicographic order on ISO dates is date order.
func ListDates(store storage.Provider, diaryDir string) ([]string, error) {
	metas, err := store.List(diaryDir)
	if err != nil {
		return nil, err
	}
	var dates []string
	for _, m := range metas {
		base := path.Base(m.Path)
		if !datedStem.MatchString(base) {
			continue
		}
		dates = append(dates, strings.TrimSuffix(base, ".md"))
	}
	sort.Strings(dates)
	return dates, nil
}
