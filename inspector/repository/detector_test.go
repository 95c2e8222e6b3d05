package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, location string, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestDetector_DetectProject(t *testing.T) {
	tests := []struct {
		description string
		setup       func(root string)
		start       string
		expectType  string
		expectName  string
		classRoots  []string
		libraries   []string
	}{
		{
			description: "maven project with parent pom",
			setup: func(root string) {
				writeFile(t, filepath.Join(root, "pom.xml"), `<project>
  <parent><groupId>com.x</groupId><artifactId>parent</artifactId></parent>
  <artifactId>billing</artifactId>
</project>`)
				writeFile(t, filepath.Join(root, "target/classes/com/x/Foo.class"), "x")
				writeFile(t, filepath.Join(root, "target/dependency/lib-1.0.jar"), "x")
				writeFile(t, filepath.Join(root, "src/main/java/com/x/Foo.java"), "x")
			},
			start:      "src/main/java/com/x",
			expectType: TypeMaven,
			expectName: "billing",
			classRoots: []string{"target/classes"},
			libraries:  []string{"target/dependency"},
		},
		{
			description: "gradle project",
			setup: func(root string) {
				writeFile(t, filepath.Join(root, "settings.gradle"), `rootProject.name = 'inventory'`)
				writeFile(t, filepath.Join(root, "build/classes/java/main/A.class"), "x")
				writeFile(t, filepath.Join(root, "build/classes/kotlin/main/B.class"), "x")
				writeFile(t, filepath.Join(root, "build/libs/inventory-sources.jar"), "x")
			},
			expectType: TypeGradle,
			expectName: "inventory",
			classRoots: []string{"build/classes/java/main", "build/classes/kotlin/main"},
		},
		{
			description: "sbt project",
			setup: func(root string) {
				writeFile(t, filepath.Join(root, "build.sbt"), `name := "ledger"`)
				writeFile(t, filepath.Join(root, "target/scala-2.13/classes/A.class"), "x")
			},
			expectType: TypeSbt,
			expectName: "ledger",
			classRoots: []string{"target/scala-2.13/classes"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			root := t.TempDir()
			tc.setup(root)
			project, err := New().DetectProject(filepath.Join(root, tc.start))
			require.NoError(t, err)

			assert.Equal(t, tc.expectType, project.Type)
			assert.Equal(t, tc.expectName, project.Name)
			assert.Equal(t, tc.classRoots, relative(t, project.RootPath, project.ClassRoots))
			assert.Equal(t, tc.libraries, relative(t, project.RootPath, project.Libraries))
		})
	}
}

func relative(t *testing.T, root string, locations []string) []string {
	var result []string
	for _, location := range locations {
		rel, err := filepath.Rel(root, location)
		require.NoError(t, err)
		result = append(result, filepath.ToSlash(rel))
	}
	return result
}

func TestProject_Locations(t *testing.T) {
	project := &Project{RootPath: "/p"}
	assert.Equal(t, []string{"/p"}, project.Locations())
	project.ClassRoots = []string{"/p/target/classes"}
	project.Libraries = []string{"/p/lib"}
	assert.Equal(t, []string{"/p/target/classes", "/p/lib"}, project.Locations())
}
