// internal/label/resolve.go
package label

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// nameRegex matches the name part of a label, e.g. `gcc` or `host_x64.debug`.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_.+\-]+$`)

// ValidName reports whether name can be the name part of a label.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// Resolve parses raw relative to currentDir. Accepted forms are
// `//dir:name`, `//dir` (name is the last directory component), `:name`,
// relative `dir:name` or `dir`, each optionally followed by `(toolchain)`.
// An unqualified result inherits defaultToolchain when that is non-zero.
func Resolve(currentDir string, defaultToolchain Label, raw string) (Label, error) {
	if raw == "" {
		return Label{}, fmt.Errorf("%w: label is empty", ErrInvalid)
	}

	body, tcPart, hasTC, err := splitToolchain(raw)
	if err != nil {
		return Label{}, err
	}

	l, err := resolveDirName(currentDir, body, raw)
	if err != nil {
		return Label{}, err
	}

	switch {
	case hasTC:
		tc, err := resolveDirName(currentDir, tcPart, raw)
		if err != nil {
			return Label{}, err
		}
		l = l.WithToolchain(tc)
	case !defaultToolchain.IsZero():
		l = l.WithToolchain(defaultToolchain)
	}
	return l, nil
}

// ResolveToolchain is Resolve for labels that name a toolchain; a toolchain
// qualifier is rejected.
func ResolveToolchain(currentDir, raw string) (Label, error) {
	if strings.ContainsAny(raw, "()") {
		return Label{}, fmt.Errorf("%w: %q: a toolchain label cannot itself have a toolchain", ErrInvalid, raw)
	}
	return Resolve(currentDir, Label{}, raw)
}

func splitToolchain(raw string) (body, tc string, ok bool, err error) {
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		if strings.IndexByte(raw, ')') >= 0 {
			return "", "", false, fmt.Errorf("%w: %q: unbalanced parenthesis", ErrInvalid, raw)
		}
		return raw, "", false, nil
	}
	if !strings.HasSuffix(raw, ")") || strings.Count(raw, "(") != 1 || strings.Count(raw, ")") != 1 {
		return "", "", false, fmt.Errorf("%w: %q: toolchain must be a single trailing (...) group", ErrInvalid, raw)
	}
	tc = raw[open+1 : len(raw)-1]
	if tc == "" {
		return "", "", false, fmt.Errorf("%w: %q: empty toolchain", ErrInvalid, raw)
	}
	return raw[:open], tc, true, nil
}

func resolveDirName(currentDir, s, raw string) (Label, error) {
	dirPart, name, hasColon := strings.Cut(s, ":")
	if hasColon && name == "" {
		return Label{}, fmt.Errorf("%w: %q: empty name after ':'", ErrInvalid, raw)
	}

	var dir string
	switch {
	case dirPart == "":
		if !hasColon {
			return Label{}, fmt.Errorf("%w: %q: empty directory", ErrInvalid, raw)
		}
		dir = cleanDir(currentDir)
	case strings.HasPrefix(dirPart, RootDir):
		dir = cleanDir(dirPart)
	case strings.HasPrefix(dirPart, "/"):
		return Label{}, fmt.Errorf("%w: %q: system-absolute paths are not supported", ErrInvalid, raw)
	default:
		joined, err := join(currentDir, dirPart)
		if err != nil {
			return Label{}, fmt.Errorf("%w: %q: %s", ErrInvalid, raw, err)
		}
		dir = joined
	}

	if !hasColon {
		name = path.Base(strings.TrimPrefix(dir, RootDir))
		if dir == RootDir || name == "." {
			return Label{}, fmt.Errorf("%w: %q: no implicit name for the source root", ErrInvalid, raw)
		}
	}
	if !nameRegex.MatchString(name) || name == "." || name == ".." {
		return Label{}, fmt.Errorf("%w: %q: invalid name %q", ErrInvalid, raw, name)
	}
	return Label{Dir: dir, Name: name}, nil
}

// join resolves rel against the source-absolute base without escaping the
// source root.
func join(base, rel string) (string, error) {
	b := strings.TrimPrefix(cleanDir(base), RootDir)
	joined := path.Join("/", b, rel)
	if strings.HasPrefix(path.Join(b, rel), "..") {
		return "", fmt.Errorf("path escapes the source root")
	}
	return cleanDir(RootDir + strings.TrimPrefix(joined, "/")), nil
}

// cleanDir normalizes a source-absolute directory to `//a/b` form.
func cleanDir(dir string) string {
	rest := strings.TrimPrefix(dir, RootDir)
	rest = strings.Trim(path.Clean("/"+rest), "/")
	if rest == "" {
		return RootDir
	}
	return RootDir + rest
}
