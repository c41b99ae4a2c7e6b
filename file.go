package flatconf

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Section assigns variables of the flat config to a named ini section when
// persisting. A section either lists its variables explicitly or, with All
// set, receives every persistable variable.
type Section struct {
	Name string
	Keys []string
	All  bool
}

// FileConfig is a Config that can round-trip its values through an
// ini-formatted file. It is a plain wrapper: all Config operations remain
// available, and Read/Write only use the public merge contract.
type FileConfig struct {
	*Config

	path     string
	sections []Section
}

// NewFileConfig creates a file-backed Config persisting to path. A nil or
// empty sections list defaults to a single all-variables "CONFIG" section.
// An empty path fails with a ConfigError.
func NewFileConfig(path string, sections []Section, vars ...Variable) (*FileConfig, error) {
	if path == "" {
		return nil, configErrorf("file-backed config requires a file name")
	}

	cfg, err := New(vars...)
	if err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		sections = []Section{{Name: "CONFIG", All: true}}
	}

	return &FileConfig{Config: cfg, path: path, sections: sections}, nil
}

// FileName returns the path of the backing ini file.
func (f *FileConfig) FileName() string {
	return f.path
}

// Read parses the backing file and attaches every declared section present
// in it to the back of the source list, so file contents underride any
// source attached before the call. A missing or unreadable file is an I/O
// error; malformed ini text is a parse error.
func (f *FileConfig) Read() error {
	file, err := ini.Load(f.path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", f.path, err)
	}

	for _, s := range f.sections {
		sec, err := file.GetSection(s.Name)
		if err != nil {
			continue // section absent from file, contributes nothing
		}
		if err := f.PushBack(sec); err != nil {
			return err
		}
	}

	return nil
}

// Write persists the current values to the backing file. A variable is
// skipped only if it still equals its declared default and was not
// explicitly re-provided on the command line. The on-disk file is re-read
// first so that unrelated sections and keys survive the write.
func (f *FileConfig) Write() error {
	persistable, err := f.persistableValues()
	if err != nil {
		return err
	}

	file, err := ini.Load(f.path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", f.path, err)
	}

	f.partitionSections(file, persistable)

	if err := file.SaveTo(f.path); err != nil {
		return fmt.Errorf("write config file %s: %w", f.path, err)
	}

	return nil
}

// persistableValues computes the variables worth writing: every present
// value that is CLI-provided or no longer at its default.
func (f *FileConfig) persistableValues() (map[string]any, error) {
	defaulted, err := f.DefaultedValues()
	if err != nil {
		return nil, err
	}
	provided, err := f.ProvidedByCLI()
	if err != nil {
		return nil, err
	}
	values, err := f.VariablesWithValues()
	if err != nil {
		return nil, err
	}

	persistable := make(map[string]any)
	for name, value := range values {
		if provided[name] || !defaulted[name] {
			persistable[name] = value
		}
	}

	return persistable, nil
}

// partitionSections assigns the persistable set to the declared sections.
// An all-variables section claims the entire set: the first one wins and
// every explicitly-keyed section receives nothing, so the result is a true
// partition. Without one, each declared section gets the intersection of
// its keys with the set.
func (f *FileConfig) partitionSections(file *ini.File, persistable map[string]any) {
	for _, s := range f.sections {
		if s.All {
			f.fillSection(file.Section(s.Name), f.order, persistable)
			return
		}
	}

	for _, s := range f.sections {
		f.fillSection(file.Section(s.Name), s.Keys, persistable)
	}
}

// fillSection sets the persistable subset of names on sec, in the order
// given.
func (f *FileConfig) fillSection(sec *ini.Section, names []string, persistable map[string]any) {
	for _, name := range names {
		value, ok := persistable[name]
		if !ok {
			continue
		}
		sec.Key(name).SetValue(fmt.Sprint(value))
	}
}
