package report

import (
	"regexp"
	"strings"
)

// PackageKind classifies an emerge output record.
type PackageKind string

// Package record kinds, matching emerge's bracketed prefixes.
const (
	KindEbuild    PackageKind = "ebuild"
	KindBlocks    PackageKind = "blocks"
	KindUninstall PackageKind = "uninstall"
)

// Package is one package record recovered from emerge output.
type Package struct {
	Kind       PackageKind
	Name       string
	NewVersion string
	OldVersion string
	// Status is NewPackage, ReEmerge, Update or Undefined for ebuild
	// records, and the raw bracket prefix otherwise.
	Status     string
	Repo       string
	Attributes map[string][]string
}

// bracketRecord matches any emerge line carrying a [...] prefix.
var bracketRecord = regexp.MustCompile(`\[(.+?)\]`)

// parsePackages extracts package records from logged emerge output.
func parsePackages(lines []string) []Package {
	var packages []Package
	for _, line := range lines {
		if !bracketRecord.MatchString(line) || line == "[ ok ]" {
			continue
		}
		fields := splitPackageLine(line)
		if len(fields) < 2 {
			continue
		}
		prefix := fields[0]
		switch {
		case strings.Contains(prefix, "ebuild"):
			packages = append(packages, parseEbuild(fields))
		case strings.Contains(prefix, "blocks"):
			packages = append(packages, parseBlocks(fields))
		case strings.Contains(prefix, "uninstall"):
			packages = append(packages, parseUninstall(fields))
		}
	}
	return packages
}

// splitPackageLine splits an emerge output line on spaces, keeping
// quoted strings and bracketed groups together. The [ebuild U ] prefix
// and USE="..." lists contain spaces that must not split the field.
func splitPackageLine(line string) []string {
	var fields []string
	var current strings.Builder
	quotes := 0
	brackets := 0

	for _, char := range line {
		current.WriteRune(char)
		switch char {
		case '"':
			quotes++
		case '[':
			brackets++
		case ']':
			brackets--
		}
		if char == ' ' && quotes%2 == 0 && brackets == 0 {
			if field := strings.TrimSpace(current.String()); field != "" {
				fields = append(fields, field)
			}
			current.Reset()
		}
	}
	if field := strings.TrimSpace(current.String()); field != "" {
		fields = append(fields, field)
	}
	return fields
}

// ebuildStatus reduces an [ebuild ...] prefix to what happens to the
// package.
func ebuildStatus(prefix string) string {
	switch {
	case strings.Contains(prefix, "N"):
		return "NewPackage"
	case strings.Contains(prefix, "R"):
		return "ReEmerge"
	case strings.Contains(prefix, "U"):
		return "Update"
	default:
		return "Undefined"
	}
}

// parseEbuild parses fields like
//
//	[ebuild     U  ] sys-devel/gnuconfig-20230731::gentoo [20230121::gentoo] USE="-prefix" 72 KiB
func parseEbuild(fields []string) Package {
	atom, repo, _ := strings.Cut(fields[1], "::")
	name := packageName(atom)

	pkg := Package{
		Kind:       KindEbuild,
		Name:       name,
		NewVersion: strings.TrimPrefix(strings.TrimPrefix(atom, name), "-"),
		Status:     ebuildStatus(fields[0]),
		Repo:       repo,
	}
	if len(fields) > 2 && strings.HasPrefix(fields[2], "[") {
		old, _, _ := strings.Cut(strings.TrimPrefix(fields[2], "["), "::")
		pkg.OldVersion = strings.TrimSuffix(old, "]")
	}
	for _, field := range fields {
		key, value, found := strings.Cut(field, `="`)
		if !found {
			continue
		}
		if pkg.Attributes == nil {
			pkg.Attributes = make(map[string][]string)
		}
		pkg.Attributes[key] = strings.Fields(strings.TrimSuffix(value, `"`))
	}
	return pkg
}

// parseBlocks parses fields like
//
//	[blocks b      ] <perl-core/Compress-Raw-Zlib-2.204.1_rc ("..." is soft blocking virtual/perl-Compress-Raw-Zlib-2.204.1_rc)
func parseBlocks(fields []string) Package {
	pkg := Package{
		Kind:   KindBlocks,
		Name:   strings.TrimPrefix(fields[1], "<"),
		Status: fields[0],
	}
	blocked := strings.TrimSuffix(fields[len(fields)-1], ")")
	pkg.Attributes = map[string][]string{"blocked_package": {blocked}}
	return pkg
}

// parseUninstall parses fields like
//
//	[uninstall     ] perl-core/Compress-Raw-Zlib-2.202.0::gentoo
func parseUninstall(fields []string) Package {
	name, repo, _ := strings.Cut(fields[1], "::")
	return Package{
		Kind:   KindUninstall,
		Name:   name,
		Status: fields[0],
		Repo:   repo,
	}
}

// packageName strips version components from a package atom:
// sys-devel/gnuconfig-20230731 has name sys-devel/gnuconfig. Version
// parts are numeric, dotted, slotted, or rN revisions.
func packageName(atom string) string {
	var nameParts []string
	for _, part := range strings.Split(atom, "-") {
		switch {
		case isNumeric(part):
		case strings.ContainsAny(part, ".:"):
		case len(part) == 2 && part[0] == 'r' && part[1] >= '0' && part[1] <= '9':
		default:
			nameParts = append(nameParts, part)
		}
	}
	return strings.Join(nameParts, "-")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}
