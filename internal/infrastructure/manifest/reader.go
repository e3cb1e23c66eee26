// Package manifest reads project dependency manifests for release snapshots.
package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/stagegate/stagegate/internal/domain/release"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
	"github.com/stagegate/stagegate/internal/fileutil"
)

// maxManifestSize limits manifest files to 1MB.
const maxManifestSize = 1 << 20

// Reader extracts dependencies from the manifest files present in a
// project directory. Projects without a recognized manifest yield an
// empty dependency list.
type Reader struct {
	root string
}

// NewReader creates a manifest reader rooted at the given directory.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

// Read collects dependencies from every recognized manifest in the root
// directory. Results are sorted by name.
func (r *Reader) Read() ([]release.Dependency, error) {
	deps := make([]release.Dependency, 0, 16)

	parsers := []struct {
		file  string
		parse func(data []byte) ([]release.Dependency, error)
	}{
		{"go.mod", parseGoMod},
		{"package.json", parsePackageJSON},
		{"Cargo.toml", parseCargoTOML},
		{"pyproject.toml", parsePyprojectTOML},
	}

	for _, p := range parsers {
		path := filepath.Join(r.root, p.file)
		data, err := fileutil.ReadFileLimited(path, maxManifestSize)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, sgerrors.IOWrap(err, "manifest.Read", "failed to read "+p.file)
		}

		parsed, err := p.parse(data)
		if err != nil {
			return nil, err
		}
		deps = append(deps, parsed...)
	}

	sort.Slice(deps, func(i, j int) bool {
		return deps[i].Name < deps[j].Name
	})

	return deps, nil
}

// parseGoMod extracts require entries from a go.mod file. Both single-line
// requires and require blocks are handled.
func parseGoMod(data []byte) ([]release.Dependency, error) {
	deps := make([]release.Dependency, 0, 16)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	inBlock := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if inBlock {
			if line == ")" {
				inBlock = false
				continue
			}
			if dep, ok := parseGoModRequireLine(line); ok {
				deps = append(deps, dep)
			}
			continue
		}

		if line == "require (" {
			inBlock = true
			continue
		}
		if rest, ok := strings.CutPrefix(line, "require "); ok {
			if dep, parsed := parseGoModRequireLine(rest); parsed {
				deps = append(deps, dep)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, sgerrors.IOWrap(err, "manifest.parseGoMod", "failed to scan go.mod")
	}

	return deps, nil
}

// parseGoModRequireLine parses a "module/path v1.2.3" require entry.
func parseGoModRequireLine(line string) (release.Dependency, bool) {
	if i := strings.Index(line, "//"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "v") {
		return release.Dependency{}, false
	}
	return release.Dependency{Name: fields[0], Version: fields[1]}, true
}

// parsePackageJSON extracts runtime dependencies from a package.json file.
func parsePackageJSON(data []byte) ([]release.Dependency, error) {
	var pkg struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, sgerrors.IOWrap(err, "manifest.parsePackageJSON", "failed to parse package.json")
	}

	deps := make([]release.Dependency, 0, len(pkg.Dependencies))
	for name, version := range pkg.Dependencies {
		deps = append(deps, release.Dependency{Name: name, Version: version})
	}
	return deps, nil
}

// parseCargoTOML extracts dependencies from a Cargo.toml file. Entries may be
// plain version strings or tables carrying a version key.
func parseCargoTOML(data []byte) ([]release.Dependency, error) {
	var cargo struct {
		Dependencies map[string]any `toml:"dependencies"`
	}
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, sgerrors.IOWrap(err, "manifest.parseCargoTOML", "failed to parse Cargo.toml")
	}

	deps := make([]release.Dependency, 0, len(cargo.Dependencies))
	for name, raw := range cargo.Dependencies {
		switch v := raw.(type) {
		case string:
			deps = append(deps, release.Dependency{Name: name, Version: v})
		case map[string]any:
			if version, ok := v["version"].(string); ok {
				deps = append(deps, release.Dependency{Name: name, Version: version})
			} else {
				deps = append(deps, release.Dependency{Name: name})
			}
		}
	}
	return deps, nil
}

// parsePyprojectTOML extracts PEP 621 project dependencies from a
// pyproject.toml file.
func parsePyprojectTOML(data []byte) ([]release.Dependency, error) {
	var pyproject struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, sgerrors.IOWrap(err, "manifest.parsePyprojectTOML", "failed to parse pyproject.toml")
	}

	deps := make([]release.Dependency, 0, len(pyproject.Project.Dependencies))
	for _, spec := range pyproject.Project.Dependencies {
		name, version := splitRequirement(spec)
		deps = append(deps, release.Dependency{Name: name, Version: version})
	}
	return deps, nil
}

// splitRequirement splits a PEP 508 requirement like "requests>=2.31" into
// its name and version-constraint parts.
func splitRequirement(spec string) (name, version string) {
	spec = strings.TrimSpace(spec)
	if i := strings.IndexAny(spec, "><=~! [;"); i >= 0 {
		return strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i:])
	}
	return spec, ""
}
