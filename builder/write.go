// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/attrimpute/core"
)

// File name suffixes shared with the archive pipeline.
const (
	FeaturesSuffix = "_features.txt"
	EdgesSuffix    = "_edges.txt"
)

// WriteDataset writes g as "<dir>/<name>_features.txt" (missing values as "#")
// and "<dir>/<name>_edges.txt", creating dir if needed, and returns both paths.
func WriteDataset(dir, name string, g *core.Graph) (featuresPath, edgesPath string, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("WriteDataset: %w", err)
	}
	featuresPath = filepath.Join(dir, name+FeaturesSuffix)
	edgesPath = filepath.Join(dir, name+EdgesSuffix)

	if err = writeFile(featuresPath, func(f *os.File) error { return core.WriteGraph(f, g) }); err != nil {
		return "", "", err
	}
	if err = writeFile(edgesPath, func(f *os.File) error { return core.WriteEdges(f, g) }); err != nil {
		return "", "", err
	}

	return featuresPath, edgesPath, nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteDataset: %w", err)
	}
	if err = fill(f); err != nil {
		f.Close()

		return fmt.Errorf("WriteDataset: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("WriteDataset: %w", err)
	}

	return nil
}
