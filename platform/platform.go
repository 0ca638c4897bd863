// Package platform holds the static matrix of build targets supported by
// prefbuild and the lookup/detection logic around it.
package platform

import (
	"fmt"
	"strings"
)

// Descriptor identifies one buildable target: the OS/arch pair, the target
// string handed to the external compiler, and the filename suffix of the
// native executable on that platform.
type Descriptor struct {
	OS     string `json:"os"`
	Arch   string `json:"arch"`
	Target string `json:"target"`
	Suffix string `json:"suffix,omitempty"`
}

// String returns the canonical `<os>-<arch>` specifier for the descriptor.
func (d Descriptor) String() string {
	return d.OS + "-" + d.Arch
}

// Catalog lists every supported build target in declaration order. The order
// only matters for deterministic output; the entries are independent.
// (os, arch) pairs are unique across the catalog.
var Catalog = []Descriptor{
	{OS: "linux", Arch: "x64", Target: "bun-linux-x64"},
	{OS: "linux", Arch: "arm64", Target: "bun-linux-arm64"},
	{OS: "darwin", Arch: "x64", Target: "bun-darwin-x64"},
	{OS: "darwin", Arch: "arm64", Target: "bun-darwin-arm64"},
	{OS: "windows", Arch: "x64", Target: "bun-windows-x64", Suffix: ".exe"},
	{OS: "windows", Arch: "arm64", Target: "bun-windows-arm64", Suffix: ".exe"},
}

// Find returns the catalog entry matching the (os, arch) pair exactly.
func Find(os, arch string) (Descriptor, bool) {
	for _, d := range Catalog {
		if d.OS == os && d.Arch == arch {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Specifiers returns the `<os>-<arch>` strings for every catalog entry, in
// catalog order.
func Specifiers() []string {
	specs := make([]string, 0, len(Catalog))
	for _, d := range Catalog {
		specs = append(specs, d.String())
	}
	return specs
}

// ParseSpecifier resolves a caller-supplied `<os>-<arch>` string to its
// catalog entry. Unknown specifiers return an error listing every valid one.
func ParseSpecifier(spec string) (Descriptor, error) {
	os, arch, ok := strings.Cut(spec, "-")
	if ok {
		if d, found := Find(os, arch); found {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("unknown platform %q (valid platforms: %s)", spec, strings.Join(Specifiers(), ", "))
}
