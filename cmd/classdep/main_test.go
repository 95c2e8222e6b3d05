package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/classdep/analyzer/dependency"
	"github.com/viant/classdep/inspector/bytecode"
	"github.com/viant/classdep/inspector/classfile/classfiletest"
	"gopkg.in/yaml.v3"
)

func writeClass(t *testing.T, location string, b *classfiletest.Builder) {
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, b.Bytes(), 0o644))
}

// mavenProject lays out a project where Foo and Baz call each other and Baz reads Qux
func mavenProject(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pom.xml"), []byte("<project><artifactId>demo</artifactId></project>"), 0o644))
	classes := filepath.Join(root, "target", "classes")

	foo := classfiletest.New("com/x/Foo")
	foo.Method(bytecode.AccPublic, "bar", "()V").
		Var(bytecode.Aload, 0).
		Invoke(bytecode.Invokespecial, "java/lang/Object", "<init>", "()V").
		Invoke(bytecode.Invokestatic, "com/x/Baz", "qux", "()V").
		Insn(bytecode.Return)
	writeClass(t, filepath.Join(classes, "com/x/Foo.class"), foo)

	baz := classfiletest.New("com/x/Baz")
	baz.Method(bytecode.AccPublic|bytecode.AccStatic, "qux", "()V").
		Field(bytecode.Getstatic, "com/x/Qux", "value", "I").
		Insn(bytecode.Pop).
		Invoke(bytecode.Invokestatic, "com/x/Foo", "bar", "()V").
		Insn(bytecode.Return)
	writeClass(t, filepath.Join(classes, "com/x/Baz.class"), baz)
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	cfgFile, verbose, concurrency = "", false, 0
	edgesFormat, edgesOut = "text", ""
	depsClass, depsDepth, depsPrefixes = "", -1, nil
	exportOut = ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEdges(t *testing.T) {
	root := mavenProject(t)
	tests := []struct {
		description string
		args        []string
		expected    string
	}{
		{
			description: "project root",
			args:        []string{"edges", root},
			expected: "com/x/Baz.qux -> com/x/Qux.value\n" +
				"com/x/Baz.qux -> com/x/Foo.bar\n" +
				"com/x/Foo.bar -> com/x/Baz.qux\n",
		},
		{
			description: "single class file",
			args:        []string{"edges", filepath.Join(root, "target/classes/com/x/Foo.class")},
			expected:    "com/x/Foo.bar -> com/x/Baz.qux\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEdges_YAML(t *testing.T) {
	root := mavenProject(t)
	actual, err := execute(t, "edges", filepath.Join(root, "target/classes/com/x/Foo.class"), "--format", "yaml")
	require.NoError(t, err)
	var edges []dependency.Access
	require.NoError(t, yaml.Unmarshal([]byte(actual), &edges))
	assert.Equal(t, []dependency.Access{{
		Source: dependency.Member{Owner: "com/x/Foo", Name: "bar"},
		Dest:   dependency.Member{Owner: "com/x/Baz", Name: "qux"},
	}}, edges)
}

func TestEdges_Out(t *testing.T) {
	root := mavenProject(t)
	location := filepath.Join(t.TempDir(), "edges.yaml")
	actual, err := execute(t, "edges", root, "--out", location)
	require.NoError(t, err)
	assert.Empty(t, actual)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: qux")
}

func TestDeps(t *testing.T) {
	root := mavenProject(t)
	tests := []struct {
		description string
		args        []string
		expected    string
		expectError bool
	}{
		{description: "configured depth", args: []string{"deps", root, "--class", "com/x/Foo"}, expected: "com/x/Baz\n"},
		{description: "unlimited", args: []string{"deps", root, "--class", "com.x.Foo", "--depth", "0"}, expected: "com/x/Baz\ncom/x/Qux\n"},
		{description: "prefix", args: []string{"deps", root, "--class", "com/x/Foo", "--depth", "0", "--prefix", "com/x/Q"}, expected: "com/x/Qux\n"},
		{description: "unknown class", args: []string{"deps", root, "--class", "com/x/Missing"}, expectError: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := execute(t, tc.args...)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCycles(t *testing.T) {
	actual, err := execute(t, "cycles", mavenProject(t))
	require.NoError(t, err)
	assert.Equal(t, "com/x/Baz com/x/Foo\n", actual)
}

func TestExport_YAML(t *testing.T) {
	location := filepath.Join(t.TempDir(), "graph.yaml")
	_, err := execute(t, "export", mavenProject(t), "--out", location)
	require.NoError(t, err)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: DEPENDS_ON")
}

func TestConfigFile(t *testing.T) {
	root := mavenProject(t)
	config := filepath.Join(t.TempDir(), "classdep.yaml")
	require.NoError(t, os.WriteFile(config, []byte("excludePrefixes: [com/x/Baz]\n"), 0o644))
	actual, err := execute(t, "edges", root, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "com/x/Foo.bar -> com/x/Baz.qux\n", actual)
}
