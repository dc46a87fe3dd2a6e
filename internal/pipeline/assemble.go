package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	ferrors "github.com/forgekit/cli/internal/errors"
	"github.com/forgekit/cli/internal/workspace"
)

// ArchiveExtension is the distribution artifact file extension.
const ArchiveExtension = ".fpk"

// Artifact describes one assembled distribution archive.
type Artifact struct {
	// Package is the package name.
	Package string

	// Path is the absolute archive path.
	Path string

	// Files is the number of files archived.
	Files int

	// Size is the compressed archive size in bytes.
	Size int64

	// SourceSize is the total uncompressed input size in bytes.
	SourceSize int64
}

// packageFile is one file scheduled for archiving.
type packageFile struct {
	absPath string
	arcName string
}

// assemblePackage builds the distribution archive for one package:
// the package source tree plus the shared generated bindings.
func assemblePackage(ws *workspace.Workspace, pkg workspace.Package) (*Artifact, error) {
	srcDir := ws.PackageDir(pkg)

	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, fmt.Errorf("package %q: %w: %v", pkg.Name, ferrors.ErrNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("package %q: %s is not a directory: %w", pkg.Name, srcDir, ferrors.ErrAssemble)
	}

	files, err := collectFiles(srcDir, filepath.Base(srcDir))
	if err != nil {
		return nil, fmt.Errorf("package %q: %w", pkg.Name, err)
	}

	// Generated bindings ship inside every package archive under gen/.
	if genInfo, err := os.Stat(ws.GenDir()); err == nil && genInfo.IsDir() {
		genFiles, err := collectFiles(ws.GenDir(), "gen")
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", pkg.Name, err)
		}
		files = append(files, genFiles...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("package %q has no files to archive: %w", pkg.Name, ferrors.ErrAssemble)
	}

	outPath := filepath.Join(ws.DistDir(), fmt.Sprintf("%s-%s%s", pkg.Name, ws.Version, ArchiveExtension))
	if err := os.MkdirAll(ws.DistDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating dist directory: %w", err)
	}

	sourceSize, err := writeArchive(outPath, files)
	if err != nil {
		return nil, fmt.Errorf("package %q: %w: %v", pkg.Name, ferrors.ErrAssemble, err)
	}

	stat, err := os.Stat(outPath)
	if err != nil {
		return nil, fmt.Errorf("package %q: %w", pkg.Name, err)
	}

	return &Artifact{
		Package:    pkg.Name,
		Path:       outPath,
		Files:      len(files),
		Size:       stat.Size(),
		SourceSize: sourceSize,
	}, nil
}

// collectFiles gathers every regular file under dir, with archive names
// rooted at prefix. The result is sorted for deterministic archives.
func collectFiles(dir, prefix string) ([]packageFile, error) {
	var files []packageFile

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return fmt.Errorf("not a regular file: %s", path)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		files = append(files, packageFile{
			absPath: path,
			arcName: filepath.ToSlash(filepath.Join(prefix, rel)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].arcName < files[j].arcName })
	return files, nil
}

// writeArchive writes a deflate-compressed zip archive. File headers carry
// no timestamps, so identical inputs produce byte-identical archives.
func writeArchive(outPath string, files []packageFile) (sourceSize int64, err error) {
	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(out)
	for _, f := range files {
		src, err := os.Open(f.absPath)
		if err != nil {
			return 0, err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.arcName,
			Method: zip.Deflate,
		})
		if err != nil {
			src.Close()
			return 0, err
		}

		n, err := io.Copy(w, src)
		src.Close()
		if err != nil {
			return 0, err
		}
		sourceSize += n
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}

	return sourceSize, nil
}

// cleanDist removes stale artifacts from a prior run.
func cleanDist(distDir string) error {
	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("clearing dist directory: %w", err)
	}
	return os.MkdirAll(distDir, 0o755)
}
