package inspector

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"
)

// Source represents compiled class bytes and where they came from
type Source struct {
	Name     string // entry or file name, e.g. com/x/Foo.class
	Location string // URL of the file holding the class
	Data     []byte
}

// Inspector extracts class sources from a file's content
type Inspector interface {
	// InspectSource returns every class source held by data loaded from location
	InspectSource(location string, data []byte) ([]*Source, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	fs afs.Service
}

// NewFactory creates a new inspector factory
func NewFactory(fs afs.Service) *Factory {
	if fs == nil {
		fs = afs.New()
	}
	return &Factory{fs: fs}
}

// IsSupported reports whether name has an extension the factory can inspect
func IsSupported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".class", ".jar":
		return true
	}
	return false
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".class":
		return &ClassInspector{}, nil
	case ".jar":
		return &JarInspector{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path.Ext(filename))
	}
}

// InspectFile downloads URL and returns the class sources it holds
func (f *Factory) InspectFile(ctx context.Context, URL string) ([]*Source, error) {
	inspector, err := f.GetInspector(URL)
	if err != nil {
		return nil, err
	}
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return inspector.InspectSource(URL, data)
}

// ClassInspector handles a single .class file
type ClassInspector struct{}

// InspectSource returns data as a single source
func (i *ClassInspector) InspectSource(location string, data []byte) ([]*Source, error) {
	return []*Source{{Name: path.Base(location), Location: location, Data: data}}, nil
}

// JarInspector handles .jar archives; entries under META-INF are skipped
type JarInspector struct{}

// InspectSource returns every class entry of the archive
func (i *JarInspector) InspectSource(location string, data []byte) ([]*Source, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open jar %s: %w", location, err)
	}
	var sources []*Source
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(entry.Name, ".class") || strings.HasPrefix(entry.Name, "META-INF/") {
			continue
		}
		content, err := readEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s in %s: %w", entry.Name, location, err)
		}
		sources = append(sources, &Source{Name: entry.Name, Location: location, Data: content})
	}
	return sources, nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	reader, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
