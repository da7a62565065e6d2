//go:build windows

package config

// mapEnvKey translates the Unix names config files tend to use.
func mapEnvKey(key string) string {
	switch key {
	case "HOSTNAME":
		return "COMPUTERNAME"
	case "HOME":
		return "USERPROFILE"
	case "TMPDIR":
		return "TEMP"
	}
	return key
}
