package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

// ArchiveName returns the conventional archive file name for seed.
func ArchiveName(seed int64) string {
	return fmt.Sprintf("PuzzleAssets_%d.zip", seed)
}

// WriteZip writes every asset followed by the manifest as a zip archive.
func (r *Result) WriteZip(w io.Writer) error {
	manifest, err := r.Manifest.encode()
	if err != nil {
		return err
	}
	modified := r.Created
	if modified.IsZero() {
		modified = time.Now()
	}

	if err := r.checkNames(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	add := func(name string, data []byte, method uint16) error {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: modified})
		if err != nil {
			return fmt.Errorf("zip %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("zip %s: %w", name, err)
		}
		return nil
	}
	for _, a := range r.Assets {
		// PNG data is already compressed.
		method := zip.Deflate
		if filepath.Ext(a.Name) == ".png" {
			method = zip.Store
		}
		if err := add(a.Name, a.Data, method); err != nil {
			return err
		}
	}
	if err := add(ManifestName, manifest, zip.Deflate); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	return nil
}

// WriteZipFile writes the archive to path through a temporary sibling that is
// renamed into place on success.
func (r *Result) WriteZipFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := r.WriteZip(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// WriteDir writes every asset and the manifest as plain files into dir.
func (r *Result) WriteDir(dir string) error {
	if err := r.checkNames(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	manifest, err := r.Manifest.encode()
	if err != nil {
		return err
	}
	for _, a := range r.Assets {
		if err := os.WriteFile(filepath.Join(dir, a.Name), a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.Name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), manifest, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ManifestName, err)
	}
	return nil
}

// checkNames rejects asset names that would escape the archive or directory.
func (r *Result) checkNames() error {
	for _, a := range r.Assets {
		if err := errors.ValidateArchiveName(a.Name); err != nil {
			return fmt.Errorf("asset %q: %w", a.Name, err)
		}
	}
	return nil
}
