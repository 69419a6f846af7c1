package file

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Cyclone1070/codeagent/internal/tool/service/path"
)

// resolve jails p to the workspace. Escapes are reported as permission
// failures.
func resolve(r pathResolver, p string) (abs, rel string, err error) {
	abs, err = r.Abs(p)
	if err == nil {
		rel, err = r.Rel(abs)
	}
	if err != nil {
		if errors.Is(err, path.ErrOutsideWorkspace) {
			return "", "", &PathError{Op: "resolve", Path: p, Cause: fmt.Errorf("%w: %w", ErrPermissionDenied, err)}
		}
		return "", "", &PathError{Op: "resolve", Path: p, Cause: err}
	}
	return abs, rel, nil
}

// wrapOSError maps OS errors onto the package sentinels.
func wrapOSError(op, rel string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = fmt.Errorf("%w: %w", ErrFileMissing, err)
	case errors.Is(err, fs.ErrPermission):
		err = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return &PathError{Op: op, Path: rel, Cause: err}
}
