package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/m-mizutani/shipit/pkg/domain/types"
)

// UnreleasedMarker is the changelog section heading that accumulates entries
// between releases. It must survive every rewrite so the next release can
// repeat the operation.
const UnreleasedMarker = "## [Unreleased]"

// RewriteChangelog inserts a new version section directly below the
// unreleased marker, keeping the marker and every other line intact.
func RewriteChangelog(content []byte, version string, date time.Time) ([]byte, error) {
	lines := strings.Split(string(content), "\n")

	idx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == UnreleasedMarker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, goerr.Wrap(types.ErrChangelogFormat, "marker not found", goerr.V("marker", UnreleasedMarker))
	}

	heading := fmt.Sprintf("## [%s] - %s", version, date.Format("2006-01-02"))
	rewritten := make([]string, 0, len(lines)+2)
	rewritten = append(rewritten, lines[:idx+1]...)
	rewritten = append(rewritten, "", heading)
	rewritten = append(rewritten, lines[idx+1:]...)

	return []byte(strings.Join(rewritten, "\n")), nil
}

// versionLinePtn anchors to the manifest's version declaration key so the
// rewrite can never touch unrelated lines.
var versionLinePtn = regexp.MustCompile(`(?m)^version\s*=\s*"[^"]*"[ \t]*$`)

// RewriteManifest replaces the single version declaration line with the new
// version. Zero or multiple candidate lines is an explicit error rather than
// a silent pick.
func RewriteManifest(content []byte, version string) ([]byte, error) {
	matches := versionLinePtn.FindAllIndex(content, -1)
	if len(matches) != 1 {
		return nil, goerr.Wrap(types.ErrManifestVersion, "cannot rewrite version declaration", goerr.V("matches", len(matches)))
	}

	m := matches[0]
	line := fmt.Sprintf("version = %q", version)

	rewritten := make([]byte, 0, len(content)+len(line))
	rewritten = append(rewritten, content[:m[0]]...)
	rewritten = append(rewritten, line...)
	rewritten = append(rewritten, content[m[1]:]...)
	return rewritten, nil
}

type manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// ParseManifestVersion reads the current package version from the manifest,
// validating that the file is well-formed TOML with a package version.
func ParseManifestVersion(content []byte) (string, error) {
	var m manifest
	if err := toml.Unmarshal(content, &m); err != nil {
		return "", goerr.Wrap(err, "failed to parse manifest")
	}
	if m.Package.Version == "" {
		return "", goerr.Wrap(types.ErrManifestVersion, "manifest has no package version")
	}
	return m.Package.Version, nil
}
