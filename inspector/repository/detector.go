package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/viant/afs"
)

// Detector identifies JVM project roots and their compiled output
type Detector struct {
	fs afs.Service
	// Common project root marker files/directories, in priority order
	markers []string
	// Conventional class output dirs relative to the project root; glob patterns allowed
	classRoots []string
	// Conventional dependency jar dirs relative to the project root
	libraries []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"pom.xml",             // Maven
			"build.gradle",        // Gradle
			"build.gradle.kts",    // Gradle Kotlin DSL
			"settings.gradle",     // Gradle multi project
			"settings.gradle.kts", // Gradle multi project, Kotlin DSL
			"build.sbt",           // sbt
			".git",                // Generic VCS marker
		},
		classRoots: []string{
			"target/classes",
			"target/scala-*/classes",
			"build/classes/java/main",
			"build/classes/kotlin/main",
			"build/classes/scala/main",
			"out/production/*",
		},
		libraries: []string{
			"target/dependency",
			"target/lib",
			"build/libs",
			"lib",
		},
	}
}

// DetectProject identifies the project root for the given path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     TypeUnknown,
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	info.Name = d.extractProjectName(info.RootPath, info.Type)
	info.ClassRoots = d.existingDirs(info.RootPath, d.classRoots)
	for _, candidate := range d.existingDirs(info.RootPath, d.libraries) {
		if ok, _ := HasFileWithSuffixes(candidate, []string{".jar"}, []string{"-sources.jar", "-javadoc.jar"}); ok {
			info.Libraries = append(info.Libraries, candidate)
		}
	}
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

func (d *Detector) existingDirs(rootPath string, patterns []string) []string {
	var result []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(rootPath, filepath.FromSlash(pattern)))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				result = append(result, match)
			}
		}
	}
	return result
}

// extractProjectName attempts to extract a project name from build files
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	var name string
	switch projectType {
	case TypeMaven:
		name = d.extract(filepath.Join(rootPath, "pom.xml"), mavenArtifactID)
	case TypeGradle:
		for _, candidate := range []string{"settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts"} {
			if name = d.extract(filepath.Join(rootPath, candidate), gradleName); name != "" {
				break
			}
		}
	case TypeSbt:
		name = d.extract(filepath.Join(rootPath, "build.sbt"), sbtName)
	}
	if name == "" {
		name = filepath.Base(rootPath)
	}
	return name
}

var (
	mavenParent       = regexp.MustCompile(`(?s)<parent>.*?</parent>`)
	mavenArtifact     = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleProjectName = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
	sbtProjectName    = regexp.MustCompile(`name\s*:=\s*"([^"]+)"`)
)

// mavenArtifactID returns the project's own artifactId, ignoring the parent's
func mavenArtifactID(content []byte) string {
	return firstGroup(mavenArtifact, mavenParent.ReplaceAll(content, nil))
}

func gradleName(content []byte) string {
	return firstGroup(gradleProjectName, content)
}

func sbtName(content []byte) string {
	return firstGroup(sbtProjectName, content)
}

func firstGroup(expr *regexp.Regexp, content []byte) string {
	matches := expr.FindSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

func (d *Detector) extract(location string, extractor func(content []byte) string) string {
	content, err := d.fs.DownloadWithURL(context.Background(), location)
	if err != nil || len(content) == 0 {
		return ""
	}
	return extractor(content)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "pom.xml":
		return TypeMaven
	case "build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts":
		return TypeGradle
	case "build.sbt":
		return TypeSbt
	case ".git":
		return TypeGit
	default:
		return TypeUnknown
	}
}
