package sources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoMatchingFile means no export matched the pattern in any search
// directory.
var ErrNoMatchingFile = errors.New("no matching file found")

// maxWalkDepth bounds the search below each configured directory. Exports
// land at the top of synced folders; deep trees are unrelated.
const maxWalkDepth = 2

// FindLatest locates the most recently modified .xlsx whose name starts with
// prefix, searching each directory up to maxWalkDepth levels deep. Ties on
// modification time go to the higher version number in the filename, so
// "data (3).xlsx" beats "data (2).xlsx" from the same sync batch.
func FindLatest(dirs []string, prefix string, log zerolog.Logger) (string, error) {
	pattern, err := regexp.Compile("(?i)^" + regexp.QuoteMeta(prefix) + `.*\.xlsx$`)
	if err != nil {
		return "", fmt.Errorf("compile file pattern for %q: %w", prefix, err)
	}

	var (
		latest        string
		latestTime    int64
		latestVersion int
		matches       int
	)

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			log.Warn().Str("dir", dir).Msg("search directory missing, skipping")
			continue
		}

		baseDepth := strings.Count(filepath.Clean(dir), string(os.PathSeparator))
		walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}
			if entry.IsDir() {
				depth := strings.Count(filepath.Clean(path), string(os.PathSeparator)) - baseDepth
				if depth > maxWalkDepth {
					return fs.SkipDir
				}
				return nil
			}
			if !pattern.MatchString(entry.Name()) {
				return nil
			}
			info, err := entry.Info()
			if err != nil {
				return nil
			}
			matches++
			modTime := info.ModTime().UnixNano()
			version := VersionNumber(entry.Name())
			if modTime > latestTime || (modTime == latestTime && version > latestVersion) {
				latestTime = modTime
				latestVersion = version
				latest = path
			}
			return nil
		})
		if walkErr != nil {
			log.Warn().Err(walkErr).Str("dir", dir).Msg("error while searching directory")
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w: pattern %q", ErrNoMatchingFile, prefix)
	}
	log.Info().Str("file", latest).Int("candidates", matches).Str("pattern", prefix).Msg("selected newest export")
	return latest, nil
}

var (
	parenVersion      = regexp.MustCompile(`\((\d+)\)`)
	underscoreVersion = regexp.MustCompile(`(?i)_(?:v|version)?(\d+)`)
	dateVersions      = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
		regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
		regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`),
		regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`),
	}
)

// VersionNumber extracts an ordering hint from an export filename: a
// parenthesized counter like "data (45).xlsx", an underscore version like
// "data_v2.xlsx", or a date stamp. Filenames without any recognizable hint
// are version 0.
func VersionNumber(filename string) int {
	if m := parenVersion.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := underscoreVersion.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	for _, pattern := range dateVersions {
		m := pattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		sum := 0
		for _, group := range m[1:] {
			n, err := strconv.Atoi(group)
			if err != nil {
				return 0
			}
			sum += n
		}
		return sum
	}
	return 0
}
