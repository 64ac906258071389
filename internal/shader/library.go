package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// File extensions the library looks for in its override directory.
const (
	VertexExt   = ".vs"
	FragmentExt = ".fs"
)

// ErrUnknownProgram is returned for a name with neither a built-in nor a file on disk.
var ErrUnknownProgram = errors.New("shader: unknown program")

// Library resolves program names. A <name>.fs file in the override directory replaces the
// built-in fragment source, and <name>.vs the vertex source; missing files fall back.
type Library struct {
	files fs.FS
}

// NewLibrary reads overrides from dir. An empty dir disables overrides.
func NewLibrary(dir string) *Library {
	if dir == "" {
		return &Library{}
	}
	return &Library{files: os.DirFS(dir)}
}

// NewLibraryFS reads overrides from fsys.
func NewLibraryFS(fsys fs.FS) *Library {
	return &Library{files: fsys}
}

// Program returns the sources for name.
func (l *Library) Program(name string) (Program, error) {
	p, ok := builtin[name]
	if !ok {
		p = Program{Name: name}
	}
	if l.files != nil {
		if src, err := l.read(name + VertexExt); err != nil {
			return Program{}, err
		} else if src != "" {
			p.Vertex = src
		}
		if src, err := l.read(name + FragmentExt); err != nil {
			return Program{}, err
		} else if src != "" {
			p.Fragment = src
		}
	}
	if p.Fragment == "" {
		return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
	}
	if p.Vertex == "" {
		p.Vertex = patternVS
	}
	return p, nil
}

// Builtin returns the compiled-in sources, ignoring overrides.
func Builtin(name string) (Program, bool) {
	p, ok := builtin[name]
	return p, ok
}

// Names lists built-in program names.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l *Library) read(name string) (string, error) {
	if l.files == nil {
		return "", nil
	}
	b, err := fs.ReadFile(l.files, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("shader: read %s: %w", name, err)
	}
	return string(b), nil
}

// ProgramName maps a changed file path to the program it belongs to, or "" for files the
// library does not read.
func ProgramName(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	ext := path.Ext(base)
	if ext != VertexExt && ext != FragmentExt {
		return ""
	}
	return strings.TrimSuffix(base, ext)
}
