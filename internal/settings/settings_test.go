package settings

import (
	"os"
	"path/filepath"
	"testing"

	"gbacore/internal/core"
	"gbacore/internal/test"
)

func TestBuildRequiresPaths(t *testing.T) {
	_, err := NewBuilder().WithBIOSDir("bios").Build()
	test.ExpectedError(t, err, ErrMissingROMPath)

	_, err = NewBuilder().WithROMPath("game.gba").Build()
	test.ExpectedError(t, err, ErrMissingBIOSDir)
}

func TestSaveDirDefaultsToROMParent(t *testing.T) {
	s, err := NewBuilder().
		WithROMPath(filepath.Join("games", "gba", "pokemon.gba")).
		WithBIOSDir("bios").
		Build()
	test.ExpectedSuccess(t, err)
	test.Equate(t, s.SaveDir(), filepath.Join("games", "gba"))
	test.Equate(t, s.BIOSDir(), "bios")

	s, err = NewBuilder().WithROMPath("pokemon.gba").WithBIOSDir("bios").WithSaveDir("saves").Build()
	test.ExpectedSuccess(t, err)
	test.Equate(t, s.SaveDir(), "saves")
}

func TestSavePath(t *testing.T) {
	tests := []struct {
		rom     string
		saveDir string
		want    string
	}{
		{filepath.Join("games", "metroid.gba"), "", filepath.Join("games", "metroid.sav")},
		{filepath.Join("games", "metroid.GBA"), "saves", filepath.Join("saves", "metroid.sav")},
		{filepath.Join("games", "my.game.v1.gba"), "saves", filepath.Join("saves", "my.game.v1.sav")},
	}
	for _, tt := range tests {
		s, err := NewBuilder().WithROMPath(tt.rom).WithBIOSDir("bios").WithSaveDir(tt.saveDir).Build()
		test.ExpectedSuccess(t, err)
		test.Equate(t, SavePath(s), tt.want)
	}
}

func TestValidateROMPath(t *testing.T) {
	for _, tt := range []struct {
		path string
		ok   bool
	}{
		{"game.gba", true},
		{"GAME.GBA", false},
		{"game.Gba", false},
		{"game.gb", false},
		{"game.gba.zip", false},
		{"game", false},
	} {
		s, err := NewBuilder().WithROMPath(tt.path).WithBIOSDir("bios").Build()
		test.ExpectedSuccess(t, err)

		path, err := ValidateROMPath(s)
		if tt.ok {
			test.ExpectedSuccess(t, err)
			test.Equate(t, path, tt.path)
		} else {
			test.ExpectedError(t, err, core.ErrIncompatibleRom)
		}
	}
}

func TestValidateBIOSPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewBuilder().WithROMPath("game.gba").WithBIOSDir(dir).Build()
	test.ExpectedSuccess(t, err)

	_, err = ValidateBIOSPath(s)
	test.ExpectedError(t, err, core.ErrInvalidBiosFile)

	// a directory with the right name is not a BIOS file
	test.ExpectedSuccess(t, os.Mkdir(filepath.Join(dir, BIOSFileName), 0o755))
	_, err = ValidateBIOSPath(s)
	test.ExpectedError(t, err, core.ErrInvalidBiosFile)
	test.ExpectedSuccess(t, os.Remove(filepath.Join(dir, BIOSFileName)))

	want := filepath.Join(dir, BIOSFileName)
	test.ExpectedSuccess(t, os.WriteFile(want, []byte{0}, 0o644))
	path, err := ValidateBIOSPath(s)
	test.ExpectedSuccess(t, err)
	test.Equate(t, path, want)
}
