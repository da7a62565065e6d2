package recovery

import (
	"regexp"
	"strings"
)

// matches <name>.vol<start>+<count>.par2 with a non-empty name
var volumeName = regexp.MustCompile(`^.+\.vol\d+\+\d+\.par2$`)

// IsArtifactName reports whether a file name carries the artifact suffix.
func IsArtifactName(name string) bool {
	return strings.HasSuffix(name, Ext)
}

// IsVolumeName reports whether a file name is a volume file. Volume files
// never correspond to a source file directly.
func IsVolumeName(name string) bool {
	return volumeName.MatchString(name)
}

// VolumePattern matches the volume files belonging to the base artifact
// named baseName (a file name, not a path). Only siblings of the base
// artifact are candidates.
func VolumePattern(baseName string) *regexp.Regexp {
	stem := strings.TrimSuffix(baseName, Ext)
	return regexp.MustCompile(`^` + regexp.QuoteMeta(stem) + `\.vol\d+\+\d+\.par2$`)
}

// IsVolumeOf reports whether name is a volume file of baseName.
func IsVolumeOf(baseName, name string) bool {
	return VolumePattern(baseName).MatchString(name)
}
