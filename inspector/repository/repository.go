package repository

// Project type names
const (
	TypeMaven   = "maven"
	TypeGradle  = "gradle"
	TypeSbt     = "sbt"
	TypeGit     = "git"
	TypeUnknown = "unknown"
)

// Project represents information about a detected JVM project
type Project struct {
	RootPath   string   // Absolute path to the project root directory
	Type       string   // Build type (maven, gradle, sbt, git, unknown)
	Name       string   // Name of the project (extracted from build files)
	ClassRoots []string // Existing compiled class output directories
	Libraries  []string // Existing directories holding dependency jars
}

// Locations returns class roots followed by library dirs; the root path when neither exists
func (p *Project) Locations() []string {
	var result []string
	result = append(result, p.ClassRoots...)
	result = append(result, p.Libraries...)
	if len(result) == 0 {
		result = append(result, p.RootPath)
	}
	return result
}
