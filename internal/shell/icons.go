package shell

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"
)

// entryInfo is the minimal os.FileInfo devicons needs to pick a glyph.
type entryInfo struct {
	name  string
	isDir bool
}

func (i entryInfo) Name() string { return i.name }

func (i entryInfo) Size() int64 { return 0 }

func (i entryInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0o644
}

func (i entryInfo) ModTime() time.Time { return time.Time{} }

func (i entryInfo) IsDir() bool { return i.isDir }

func (i entryInfo) Sys() any { return nil }

func iconFor(name string, isDir bool) string {
	if name == "" {
		return ""
	}
	return devicons.IconForInfo(entryInfo{name: name, isDir: isDir}).Icon
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
