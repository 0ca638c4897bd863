package platform

// detect.go maps host-reported OS and architecture identifiers onto the
// catalog. Both identifiers go through closed translation tables first, so
// aliases reported by other runtimes (win32, x86_64, aarch64, ...) land on
// the canonical names before the catalog is consulted.

// osNames translates host OS identifiers to catalog OS names.
var osNames = map[string]string{
	"windows": "windows",
	"win32":   "windows",
	"darwin":  "darwin",
	"macos":   "darwin",
	"linux":   "linux",
}

// archNames translates host architecture identifiers to catalog arch names.
var archNames = map[string]string{
	"x64":     "x64",
	"amd64":   "x64",
	"x86_64":  "x64",
	"arm64":   "arm64",
	"aarch64": "arm64",
	"x86":     "x86",
	"386":     "x86",
	"ia32":    "x86",
}

// Detect resolves the host-reported (os, arch) pair to a catalog entry.
// It reports not-found either when an identifier is outside its translation
// table or when the normalized pair has no catalog entry; callers fall back
// to a bare untargeted build in that case rather than failing. Pure function
// of its inputs and the catalog.
func Detect(rawOS, rawArch string) (Descriptor, bool) {
	os, ok := osNames[rawOS]
	if !ok {
		return Descriptor{}, false
	}
	arch, ok := archNames[rawArch]
	if !ok {
		return Descriptor{}, false
	}
	return Find(os, arch)
}
