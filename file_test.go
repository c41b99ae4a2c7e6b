package flatconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadSection(t *testing.T, path, name string) *ini.Section {
	t.Helper()
	file, err := ini.Load(path)
	require.NoError(t, err)
	sec, err := file.GetSection(name)
	require.NoError(t, err)
	return sec
}

func TestNewFileConfig_MissingFileName(t *testing.T) {
	_, err := NewFileConfig("", nil, Variable{Name: "anything"})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "file name")
}

func TestFileConfig_Read(t *testing.T) {
	path := writeFixture(t, "[testsection]\nfour = score\nand = seven\n\n")

	cfg, err := NewFileConfig(path,
		[]Section{{Name: "testsection", All: true}},
		Variable{Name: "four"},
		Variable{Name: "and"},
		Variable{Name: "years", Default: "ago"},
	)
	require.NoError(t, err)

	// A source attached before Read keeps precedence over file contents.
	require.NoError(t, cfg.PushBack(map[string]any{"four": "thousand"}))
	require.NoError(t, cfg.Read())

	values := cfg.Values()

	four, err := values.Get("four")
	require.NoError(t, err)
	assert.Equal(t, "thousand", four)

	and, err := values.Get("and")
	require.NoError(t, err)
	assert.Equal(t, "seven", and)

	years, err := values.Get("years")
	require.NoError(t, err)
	assert.Equal(t, "ago", years)
}

func TestFileConfig_Read_MissingFile(t *testing.T) {
	cfg, err := NewFileConfig(filepath.Join(t.TempDir(), "absent.ini"), nil,
		Variable{Name: "anything"})
	require.NoError(t, err)

	assert.Error(t, cfg.Read())
}

func TestFileConfig_Read_MalformedFile(t *testing.T) {
	path := writeFixture(t, "[unclosed\nfour = score\n")

	cfg, err := NewFileConfig(path, nil, Variable{Name: "four"})
	require.NoError(t, err)

	assert.Error(t, cfg.Read())
}

func TestFileConfig_Read_AbsentSectionsTolerated(t *testing.T) {
	path := writeFixture(t, "[present]\nfour = score\n")

	cfg, err := NewFileConfig(path,
		[]Section{
			{Name: "present", Keys: []string{"four"}},
			{Name: "missing", Keys: []string{"and"}},
		},
		Variable{Name: "four"},
		Variable{Name: "and"},
	)
	require.NoError(t, err)
	require.NoError(t, cfg.Read())

	four, err := cfg.Values().Get("four")
	require.NoError(t, err)
	assert.Equal(t, "score", four)

	and, err := cfg.Values().Get("and")
	require.NoError(t, err)
	assert.Nil(t, and)
}

func TestFileConfig_Write_Sections(t *testing.T) {
	path := writeFixture(t, "")

	cfg, err := NewFileConfig(path,
		[]Section{
			{Name: "abraham", Keys: []string{"four", "and"}},
			{Name: "lincoln", Keys: []string{"years", "our"}},
		},
		Variable{Name: "four"},
		Variable{Name: "and"},
		Variable{Name: "years"},
		Variable{Name: "our"},
	)
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{
		"four": "score", "and": "seven", "years": "ago", "our": "fathers",
	}))
	require.NoError(t, cfg.Write())

	abraham := loadSection(t, path, "abraham")
	assert.Equal(t, "score", abraham.Key("four").String())
	assert.Equal(t, "seven", abraham.Key("and").String())

	lincoln := loadSection(t, path, "lincoln")
	assert.Equal(t, "ago", lincoln.Key("years").String())
	assert.Equal(t, "fathers", lincoln.Key("our").String())
}

func TestFileConfig_Write_AllVariablesSection(t *testing.T) {
	path := writeFixture(t, "")

	cfg, err := NewFileConfig(path,
		[]Section{{Name: "log cabin", All: true}},
		Variable{Name: "four"},
		Variable{Name: "and"},
		Variable{Name: "years"},
		Variable{Name: "our"},
	)
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{
		"four": "score", "and": "seven", "years": "ago", "our": "fathers",
	}))
	require.NoError(t, cfg.Write())

	section := loadSection(t, path, "log cabin")
	assert.Equal(t, "score", section.Key("four").String())
	assert.Equal(t, "seven", section.Key("and").String())
	assert.Equal(t, "ago", section.Key("years").String())
	assert.Equal(t, "fathers", section.Key("our").String())
}

func TestFileConfig_Write_AllSectionClaimsEntireSet(t *testing.T) {
	path := writeFixture(t, "")

	// An all-variables section takes the whole persistable set even when an
	// explicitly-keyed section is declared before it; the explicit section
	// receives nothing, so no key appears twice.
	cfg, err := NewFileConfig(path,
		[]Section{
			{Name: "explicit", Keys: []string{"four"}},
			{Name: "everything", All: true},
		},
		Variable{Name: "four"},
		Variable{Name: "and"},
	)
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{"four": "score", "and": "seven"}))
	require.NoError(t, cfg.Write())

	everything := loadSection(t, path, "everything")
	assert.Equal(t, "score", everything.Key("four").String())
	assert.Equal(t, "seven", everything.Key("and").String())

	file, err := ini.Load(path)
	require.NoError(t, err)
	_, err = file.GetSection("explicit")
	assert.Error(t, err, "the explicit section must not be written at all")
}

func TestFileConfig_Write_SkipsDefaultedValues(t *testing.T) {
	path := writeFixture(t, "")

	cfg, err := NewFileConfig(path,
		[]Section{{Name: "gettysburg", All: true}},
		Variable{Name: "four", Default: "score"},
		Variable{Name: "and", Default: "eight"},
		Variable{Name: "years"},
		Variable{Name: "our"},
		Variable{Name: "brought", Default: "forth"},
	)
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{
		"four": "score", "and": "seven", "years": "ago", "our": "fathers",
	}))
	require.NoError(t, cfg.Write())

	section := loadSection(t, path, "gettysburg")
	assert.False(t, section.HasKey("four"), "value equal to its default is not persisted")
	assert.False(t, section.HasKey("brought"), "untouched default is not persisted")
	assert.Equal(t, "seven", section.Key("and").String())
	assert.Equal(t, "ago", section.Key("years").String())
	assert.Equal(t, "fathers", section.Key("our").String())
}

func TestFileConfig_Write_CLIProvidedDefaultIsPersisted(t *testing.T) {
	path := writeFixture(t, "")

	cfg, err := NewFileConfig(path,
		[]Section{{Name: "CONFIG", All: true}},
		Variable{Name: "four", Default: "score"},
	)
	require.NoError(t, err)

	// The value equals the default, but the user typed it on the command
	// line, so it is written anyway.
	args, err := cfg.NewParser().Parse([]string{"--four", "score"})
	require.NoError(t, err)
	require.NoError(t, cfg.PushFront(args))
	require.NoError(t, cfg.Write())

	section := loadSection(t, path, "CONFIG")
	assert.Equal(t, "score", section.Key("four").String())
}

func TestFileConfig_Write_PreservesUnrelatedContent(t *testing.T) {
	path := writeFixture(t, "[other]\nuntouched = yes\n\n[CONFIG]\nstale = old\n")

	cfg, err := NewFileConfig(path, nil, Variable{Name: "fresh"})
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{"fresh": "new"}))
	require.NoError(t, cfg.Write())

	other := loadSection(t, path, "other")
	assert.Equal(t, "yes", other.Key("untouched").String())

	section := loadSection(t, path, "CONFIG")
	assert.Equal(t, "new", section.Key("fresh").String())
	assert.Equal(t, "old", section.Key("stale").String(), "pre-existing keys survive the merge")
}

func TestFileConfig_Write_MissingFile(t *testing.T) {
	cfg, err := NewFileConfig(filepath.Join(t.TempDir(), "absent.ini"), nil,
		Variable{Name: "fresh"})
	require.NoError(t, err)

	require.NoError(t, cfg.PushBack(map[string]any{"fresh": "new"}))
	assert.Error(t, cfg.Write())
}

func TestFileConfig_RoundTrip(t *testing.T) {
	path := writeFixture(t, "")

	schema := []Variable{
		{Name: "listen_addr", Default: ":8080"},
		{Name: "workers"},
		{Name: "debug", Action: ActionStoreTrue, Default: false},
	}

	original, err := NewFileConfig(path, nil, schema...)
	require.NoError(t, err)
	require.NoError(t, original.PushBack(map[string]any{
		"listen_addr": ":9090",
		"workers":     "4",
	}))
	require.NoError(t, original.Write())

	restored, err := NewFileConfig(path, nil, schema...)
	require.NoError(t, err)
	require.NoError(t, restored.Read())

	for _, name := range []string{"listen_addr", "workers"} {
		want, err := original.Values().Get(name)
		require.NoError(t, err)
		got, err := restored.Values().Get(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "round-tripped value for %s", name)
	}

	// The defaulted variable was never written; the restored config serves
	// its declared default.
	debug, err := restored.Values().Get("debug")
	require.NoError(t, err)
	assert.Equal(t, false, debug)
}
