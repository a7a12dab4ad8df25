package catalog

import (
	"path"
	"strings"
)

// Platform is a download target bucket for release assets
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
	PlatformAndroid Platform = "android"
)

// platformOrder fixes the evaluation order when an asset could match more
// than one platform by keyword.
var platformOrder = []Platform{PlatformWindows, PlatformMacOS, PlatformLinux, PlatformAndroid}

// Downloads is the classified view of a release's assets: one best pick per
// platform, a platform-agnostic primary pick, and the remaining assets as an
// advanced-downloads overflow.
type Downloads struct {
	Primary   *ReleaseAsset             `json:"primary,omitempty"`
	Platforms map[Platform]ReleaseAsset `json:"platforms,omitempty"`
	Advanced  []ReleaseAsset            `json:"advanced,omitempty"`
}

// noiseExtensions are checksum/signature/certificate/debug-symbol/blockmap
// files that accompany installable artifacts but are never downloads in
// their own right.
var noiseExtensions = []string{
	".sha1", ".sha256", ".sha512", ".md5",
	".sig", ".asc",
	".pem", ".crt", ".cer",
	".pdb", ".sym",
	".blockmap",
}

var noiseKeywords = []string{
	"checksum", "checksums", "sha256sums", "sha512sums",
	"signature", "signatures", "symbols",
}

// platformExtensions are platform-exclusive, so an extension match decides
// the bucket before any keyword is consulted.
var platformExtensions = map[Platform][]string{
	PlatformWindows: {".exe", ".msi", ".msix", ".appx"},
	PlatformMacOS:   {".dmg", ".pkg"},
	PlatformLinux:   {".appimage", ".deb", ".rpm", ".snap", ".flatpak"},
	PlatformAndroid: {".apk", ".aab"},
}

// platformKeywords match whole filename tokens, not substrings: "darwin"
// contains "win" and must never land in the windows bucket.
var platformKeywords = map[Platform][]string{
	PlatformWindows: {"win", "win32", "win64", "windows"},
	PlatformMacOS:   {"mac", "macos", "osx", "darwin"},
	PlatformLinux:   {"linux"},
	PlatformAndroid: {"android"},
}

// extensionScores rank candidate assets within a platform bucket. Native
// installers beat package formats beat generic archives.
var extensionScores = map[Platform]map[string]int{
	PlatformWindows: {
		".exe": 125, ".msi": 120, ".msix": 110, ".appx": 105,
		".zip": 85, ".7z": 80, ".tar.gz": 70,
	},
	PlatformMacOS: {
		".dmg": 125, ".pkg": 120,
		".zip": 85, ".tar.gz": 75,
	},
	PlatformLinux: {
		".appimage": 125, ".deb": 120, ".rpm": 120, ".snap": 110, ".flatpak": 105,
		".tar.gz": 80, ".tar.xz": 80, ".zip": 70,
	},
	PlatformAndroid: {
		".apk": 125, ".aab": 110,
	},
}

const (
	// unknownExtensionScore keeps keyword-classified assets without a
	// scored extension in the running.
	unknownExtensionScore = 60
	installerKeywordBonus = 10
)

// assetExtension returns the lowercased extension, keeping compound archive
// suffixes like .tar.gz intact.
func assetExtension(name string) string {
	lower := strings.ToLower(name)
	for _, compound := range []string{".tar.gz", ".tar.xz", ".tar.bz2"} {
		if strings.HasSuffix(lower, compound) {
			return compound
		}
	}
	return path.Ext(lower)
}

// assetTokens splits a filename into lowercased alphanumeric tokens
func assetTokens(name string) map[string]bool {
	tokens := map[string]bool{}
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = true
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// isNoiseAsset reports whether an asset is a checksum/signature style
// companion file rather than an installable artifact.
func isNoiseAsset(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range noiseExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	tokens := assetTokens(name)
	for _, kw := range noiseKeywords {
		if tokens[kw] {
			return true
		}
	}
	return false
}

// classifyPlatform buckets an asset by extension first, then by filename
// keywords, in the fixed windows→macos→linux→android order.
func classifyPlatform(name string) (Platform, bool) {
	ext := assetExtension(name)
	for _, p := range platformOrder {
		for _, platformExt := range platformExtensions[p] {
			if ext == platformExt {
				return p, true
			}
		}
	}

	tokens := assetTokens(name)
	for _, p := range platformOrder {
		for _, kw := range platformKeywords[p] {
			if tokens[kw] {
				return p, true
			}
		}
	}

	return "", false
}

// assetScore ranks an asset within a platform bucket
func assetScore(p Platform, a ReleaseAsset) int {
	score, ok := extensionScores[p][assetExtension(a.Name)]
	if !ok {
		score = unknownExtensionScore
	}

	tokens := assetTokens(a.Name)
	if tokens["setup"] || tokens["installer"] {
		score += installerKeywordBonus
	}
	return score
}

// bestAsset picks the highest-scoring asset; ties go to the larger file,
// then to the lexically smaller name.
func bestAsset(p Platform, assets []ReleaseAsset) (ReleaseAsset, bool) {
	if len(assets) == 0 {
		return ReleaseAsset{}, false
	}

	best := assets[0]
	bestScore := assetScore(p, best)
	for _, a := range assets[1:] {
		score := assetScore(p, a)
		switch {
		case score > bestScore:
			best, bestScore = a, score
		case score == bestScore && a.Size > best.Size:
			best = a
		case score == bestScore && a.Size == best.Size && a.Name < best.Name:
			best = a
		}
	}
	return best, true
}

// ClassifyAssets filters out noise assets and produces the download view for
// a release: per-platform best picks, a platform-agnostic primary pick
// (scored against the windows table as the default total order), and the
// unclaimed remainder as advanced downloads.
func ClassifyAssets(assets []ReleaseAsset) Downloads {
	var usable []ReleaseAsset
	for _, a := range assets {
		if !isNoiseAsset(a.Name) {
			usable = append(usable, a)
		}
	}

	downloads := Downloads{}
	if len(usable) == 0 {
		return downloads
	}

	buckets := map[Platform][]ReleaseAsset{}
	for _, a := range usable {
		if p, ok := classifyPlatform(a.Name); ok {
			buckets[p] = append(buckets[p], a)
		}
	}

	claimed := map[int64]bool{}
	for _, p := range platformOrder {
		if pick, ok := bestAsset(p, buckets[p]); ok {
			if downloads.Platforms == nil {
				downloads.Platforms = map[Platform]ReleaseAsset{}
			}
			downloads.Platforms[p] = pick
			claimed[pick.ID] = true
		}
	}

	if primary, ok := bestAsset(PlatformWindows, usable); ok {
		downloads.Primary = &primary
		claimed[primary.ID] = true
	}

	for _, a := range usable {
		if !claimed[a.ID] {
			downloads.Advanced = append(downloads.Advanced, a)
		}
	}

	return downloads
}
