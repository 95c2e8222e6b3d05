package repository

import (
	"os"
	"strings"
)

// HasFileWithSuffixes checks if a directory directly contains a file with one of inclusionSuffix
func HasFileWithSuffixes(dirPath string, inclusionSuffix, exclusionSuffix []string) (bool, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return false, err
	}

outer:
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, suffix := range inclusionSuffix {
			if strings.HasSuffix(entry.Name(), suffix) {

				for _, exclusion := range exclusionSuffix {
					if strings.HasSuffix(entry.Name(), exclusion) {
						continue outer
					}
				}

				return true, nil

			}
		}
	}
	return false, nil
}
