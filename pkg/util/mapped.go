package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mmapThreshold is the size below which a plain read is cheaper than mapping.
const mmapThreshold = 64 * 1024

// ReadMapped returns the contents of the file at path.
//
// Large files are memory-mapped and copied out so the mapping can be released
// immediately; small or empty files, and files that fail to map, fall back to
// os.ReadFile.
func ReadMapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() < mmapThreshold {
		return os.ReadFile(path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return os.ReadFile(path)
	}
	defer m.Unmap()

	data := make([]byte, len(m))
	copy(data, m)
	return data, nil
}
