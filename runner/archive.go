// SPDX-License-Identifier: MIT

package runner

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/katalvlaran/attrimpute/builder"
)

// ErrArchive reports a dataset archive that is missing, unreadable or
// incomplete.
var ErrArchive = errors.New("runner: bad archive")

// unpack extracts "<name>_features.txt" and "<name>_edges.txt" from zipPath
// into dir, matching entries by base name, and returns both paths. Other
// entries are ignored.
func unpack(zipPath, name, dir string) (featuresPath, edgesPath string, err error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrArchive, zipPath, err)
	}
	defer zr.Close()

	want := map[string]string{
		name + builder.FeaturesSuffix: filepath.Join(dir, name+builder.FeaturesSuffix),
		name + builder.EdgesSuffix:    filepath.Join(dir, name+builder.EdgesSuffix),
	}
	for _, f := range zr.File {
		dst, ok := want[path.Base(f.Name)]
		if !ok || f.FileInfo().IsDir() {
			continue
		}
		if err := extract(f, dst); err != nil {
			return "", "", fmt.Errorf("%w: %s: %w", ErrArchive, zipPath, err)
		}
		delete(want, path.Base(f.Name))
	}
	if len(want) > 0 {
		return "", "", fmt.Errorf("%w: %s: missing %v", ErrArchive, zipPath, slices.Sorted(maps.Keys(want)))
	}

	return filepath.Join(dir, name+builder.FeaturesSuffix), filepath.Join(dir, name+builder.EdgesSuffix), nil
}

func extract(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()

		return err
	}

	return out.Close()
}

// Pack writes a deflated zip at zipPath holding each file under its base name.
func Pack(zipPath string, files ...string) error {
	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return fmt.Errorf("runner: pack: %w", err)
	}
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("runner: pack: %w", err)
	}
	zw := zip.NewWriter(out)
	for _, file := range files {
		if err := addFile(zw, file); err != nil {
			zw.Close()
			out.Close()

			return fmt.Errorf("runner: pack: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()

		return fmt.Errorf("runner: pack: %w", err)
	}

	return out.Close()
}

func addFile(zw *zip.Writer, file string) error {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()
	w, err := zw.CreateHeader(&zip.FileHeader{Name: filepath.Base(file), Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)

	return err
}
