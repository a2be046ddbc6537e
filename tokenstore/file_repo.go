package tokenstore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/rs/zerolog/log"
)

const fileExt = ".json"

var _ Repo = (*FileRepo)(nil)

// FileRepo keeps one file per key in a directory readable only by the
// current user.
type FileRepo struct {
	dir string
}

func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

func (r *FileRepo) path(key string) string {
	return filepath.Join(r.dir, key+fileExt)
}

// Save writes to a temporary file and renames it over the old value, so a
// reader never sees a partial token.
func (r *FileRepo) Save(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return errors.Wrapf(err, "FileRepo.Save mkdir %s", r.dir)
	}

	tmp, err := os.CreateTemp(r.dir, "."+key+"-*")
	if err != nil {
		return errors.Wrapf(err, "FileRepo.Save %q", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "FileRepo.Save write %q", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "FileRepo.Save close %q", key)
	}
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return errors.Wrapf(err, "FileRepo.Save rename %q", key)
	}

	log.Debug().Str("key", key).Str("path", r.path(key)).Msg("token saved")
	return nil
}

func (r *FileRepo) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrNotFound, "FileRepo.Load %q", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FileRepo.Load %q", key)
	}
	return data, nil
}

func (r *FileRepo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(errors.ErrNotFound, "FileRepo.Delete %q", key)
	}
	if err != nil {
		return errors.Wrapf(err, "FileRepo.Delete %q", key)
	}
	log.Debug().Str("key", key).Msg("token deleted")
	return nil
}

func (r *FileRepo) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "FileRepo.List %s", r.dir)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}
