package reporter

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// ErrTagWriteOutput marks failures while persisting artifacts.
var ErrTagWriteOutput = goerr.NewTag("write_output")

// Artifact is one fully rendered output file.
type Artifact struct {
	Name string
	Data []byte
}

// WriteArtifacts writes every artifact into dir. Each file is written to a
// temporary file in dir and renamed into place, so a reader never sees a
// partial file.
func WriteArtifacts(dir string, artifacts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory",
			goerr.V("dir", dir), goerr.T(ErrTagWriteOutput))
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := writeAtomic(dir, a)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeAtomic(dir string, a Artifact) (string, error) {
	target := filepath.Join(dir, a.Name)

	tmp, err := os.CreateTemp(dir, "."+a.Name+".*.tmp")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp file",
			goerr.V("file", target), goerr.T(ErrTagWriteOutput))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(a.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to write output file",
			goerr.V("file", target), goerr.T(ErrTagWriteOutput))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to close output file",
			goerr.V("file", target), goerr.T(ErrTagWriteOutput))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to set output file mode",
			goerr.V("file", target), goerr.T(ErrTagWriteOutput))
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to move output file into place",
			goerr.V("file", target), goerr.T(ErrTagWriteOutput))
	}
	return target, nil
}
