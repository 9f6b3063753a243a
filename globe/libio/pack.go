package libio

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// CompressedExt is appended to an asset name when it is stored lz4 compressed.
const CompressedExt = ".lz4"

type AssetIndex struct {
	Textures []string `json:"textures"`
}

// DirPack resolves asset names relative to a root directory. An index file may alias
// names to other files; anything not in the index is looked up by its relative path.
type DirPack struct {
	Root         string
	TextureIndex map[string]string
}

func NewDirPack(root string) *DirPack {
	return &DirPack{
		Root:         path.Clean(filepath.ToSlash(root)),
		TextureIndex: map[string]string{},
	}
}

func (pack *DirPack) AddIndexFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("could not add index file %q: %w", name, err)
	}
	defer f.Close()

	return pack.AddIndex(f, path.Dir(filepath.ToSlash(name)))
}

func (pack *DirPack) AddIndex(r io.Reader, root string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	index := AssetIndex{}
	err = json.Unmarshal(data, &index)
	if err != nil {
		return fmt.Errorf("could not unmarshal asset index: %w", err)
	}

	if pack.TextureIndex == nil {
		pack.TextureIndex = map[string]string{}
	}

	return pack.addAllMatches(path.Clean(root), index.Textures, pack.TextureIndex)
}

func (pack *DirPack) addAllMatches(root string, patterns []string, index map[string]string) error {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(path.Join(root, pattern))
		if err != nil {
			return err
		}
		for _, match := range matches {
			match = filepath.ToSlash(match)
			rel := strings.TrimPrefix(match, pack.Root+"/")
			index[strings.TrimSuffix(rel, CompressedExt)] = match
		}
	}
	return nil
}

func (pack *DirPack) resolve(name string) string {
	if filename, ok := pack.TextureIndex[name]; ok {
		return filename
	}
	return path.Join(pack.Root, name)
}

// Open returns the asset contents. When the plain file does not exist, the
// compressed variant <name>.lz4 is opened and decompressed on the fly.
func (pack *DirPack) Open(name string) (io.ReadCloser, error) {
	filename := pack.resolve(name)
	if strings.HasSuffix(filename, CompressedExt) {
		return openCompressed(filename)
	}

	f, err := os.Open(filename)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open asset %q: %w", name, err)
	}

	rc, lzErr := openCompressed(filename + CompressedExt)
	if lzErr != nil {
		if errors.Is(lzErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not open asset %q: %w", name, err)
		}
		return nil, fmt.Errorf("could not open asset %q: %w", name, lzErr)
	}
	return rc, nil
}

// Exists reports whether the asset or its compressed variant is present.
func (pack *DirPack) Exists(name string) bool {
	filename := pack.resolve(name)
	if _, err := os.Stat(filename); err == nil {
		return true
	}
	_, err := os.Stat(filename + CompressedExt)
	return err == nil
}

type lz4File struct {
	*lz4.Reader
	file *os.File
}

func (f *lz4File) Close() error {
	return f.file.Close()
}

func openCompressed(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return &lz4File{Reader: lz4.NewReader(f), file: f}, nil
}

func (pack *DirPack) LoadTextureImage(name string) (*image.RGBA, error) {
	file, err := pack.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open texture image %q: %w", name, err)
	}
	defer file.Close()

	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode texture image %q: %w", name, err)
	}
	return img, nil
}
