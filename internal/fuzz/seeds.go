package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB на файл корпуса
)

func addCorpusSeeds(f *testing.F, dir string) {
	addTestdataSeeds(f, dir)
	f.Add([]byte{})
	f.Add([]byte("0\n"))
	f.Add([]byte("00100\n11110\n10110\n"))
}

// addTestdataSeeds adds every *.txt file under testdata/<dir>.
func addTestdataSeeds(f *testing.F, dir string) {
	root := filepath.Join("..", "..", "testdata", dir)
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
