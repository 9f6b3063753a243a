package libio

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// Compress writes src to dst as an lz4 frame.
func Compress(dst io.Writer, src io.Reader, level lz4.CompressionLevel) (n int64, err error) {
	lzw := lz4.NewWriter(dst)
	err = lzw.Apply(lz4.CompressionLevelOption(level))
	if err != nil {
		return 0, fmt.Errorf("could not configure lz4 writer: %w", err)
	}
	n, err = io.Copy(lzw, src)
	if err != nil {
		return n, fmt.Errorf("could not compress: %w", err)
	}
	if err = lzw.Close(); err != nil {
		return n, fmt.Errorf("could not finish lz4 frame: %w", err)
	}
	return n, nil
}

// CompressFile writes filename+".lz4" next to filename and returns the new name.
func CompressFile(filename string, level lz4.CompressionLevel) (string, error) {
	src, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("could not open %q: %w", filename, err)
	}
	defer src.Close()

	target := filename + CompressedExt
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("could not create %q: %w", target, err)
	}

	_, err = Compress(dst, src, level)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(target)
		return "", fmt.Errorf("could not compress %q: %w", filename, err)
	}
	return target, nil
}
