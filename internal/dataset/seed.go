package dataset

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lineagemap/backend/pkg/logger"
)

// SeedSamples copies shipped sample datasets into the persistent samples
// directory. Persistent disks start empty on fresh deployments; existing
// copies are left alone so operator edits survive restarts.
func (r *Resolver) SeedSamples() error {
	if _, err := os.Stat(r.cfg.ShippedDir); err != nil {
		return nil
	}

	target := r.samplesDiskDir()
	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(r.cfg.ShippedDir)
	if err != nil {
		return err
	}

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		dst := filepath.Join(target, entry.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}

		if err := copyFile(filepath.Join(r.cfg.ShippedDir, entry.Name()), dst); err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info("Seeded sample datasets", "count", seeded, "dir", target)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
