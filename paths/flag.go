package paths

import (
	"flag"
)

// SetupDirFlag creates a new string flag with the passed name defaulting to
// the content directory found by Find, or an empty string.
func SetupDirFlag(dirName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(dirName), "Path to the "+dirName+" directory")
}
