package inspector_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/classdep/inspector"
	"github.com/viant/classdep/inspector/classfile/classfiletest"
)

func TestFactory_GetInspector(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantErr   bool
		inspector string
	}{
		{
			name:      "Class file",
			filename:  "Foo.class",
			inspector: "ClassInspector",
		},
		{
			name:      "Jar file",
			filename:  "lib/app.JAR",
			inspector: "JarInspector",
		},
		{
			name:     "Java source",
			filename: "Foo.java",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := inspector.NewFactory(nil)
			insp, err := factory.GetInspector(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, inspector.IsSupported(tt.filename))
				return
			}
			require.NoError(t, err)
			assert.True(t, inspector.IsSupported(tt.filename))
			assert.True(t, strings.Contains(reflect.TypeOf(insp).String(), tt.inspector))
		})
	}
}

func buildJar(t *testing.T, entries map[string][]byte) []byte {
	buf := &bytes.Buffer{}
	writer := zip.NewWriter(buf)
	for name, data := range entries {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestJarInspector_InspectSource(t *testing.T) {
	foo := classfiletest.New("com/x/Foo").Bytes()
	jar := buildJar(t, map[string][]byte{
		"com/x/Foo.class":                      foo,
		"com/x/messages.properties":            []byte("a=b"),
		"META-INF/versions/11/com/x/Foo.class": foo,
		"META-INF/MANIFEST.MF":                 []byte("Manifest-Version: 1.0\n"),
	})

	sources, err := (&inspector.JarInspector{}).InspectSource("app.jar", jar)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "com/x/Foo.class", sources[0].Name)
	assert.Equal(t, "app.jar", sources[0].Location)
	assert.Equal(t, foo, sources[0].Data)

	_, err = (&inspector.JarInspector{}).InspectSource("broken.jar", []byte("not a zip"))
	assert.Error(t, err)
}

func TestFactory_InspectFile(t *testing.T) {
	dir := t.TempDir()
	foo := classfiletest.New("com/x/Foo").Bytes()
	location := filepath.Join(dir, "Foo.class")
	require.NoError(t, os.WriteFile(location, foo, 0o644))

	sources, err := inspector.NewFactory(nil).InspectFile(context.Background(), location)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "Foo.class", sources[0].Name)
	assert.Equal(t, foo, sources[0].Data)
}
