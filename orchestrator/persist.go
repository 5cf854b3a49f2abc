package orchestrator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/beltrewilton/audeeremodb/audformat"
)

// persist copies the audio directory into the output and saves the
// database next to it.
func (p *Pipeline) persist(ctx context.Context, db *audformat.Database) error {
	out := p.cfg.Paths.Outputs
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	n, err := copyDir(
		filepath.Join(p.cfg.Source.Dir, p.cfg.Source.Audio),
		filepath.Join(out, p.cfg.Source.Audio),
	)
	if err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}
	p.log.WithFields(logrus.Fields{"files": n, "dir": out}).Debug("audio copied")

	if err := db.Save(out); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	if p.cfg.Storage.SQLite {
		path := filepath.Join(out, audformat.SQLiteFile)
		if err := db.SaveSQLite(ctx, path); err != nil {
			return fmt.Errorf("save sqlite: %w", err)
		}
		p.log.WithField("path", path).Info("sqlite export written")
	}
	return nil
}

// copyDir mirrors the regular files of src into dst, overwriting files that
// already exist there.
func copyDir(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
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
	return out.Close()
}
