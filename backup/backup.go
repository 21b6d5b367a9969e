// Package backup snapshots the JSON data directory once a day.
package backup

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const stampLayout = "2006-01-02_15-04-05"

type Scheduler struct {
	srcDir    string
	backupDir string
	retention time.Duration
	hour      int
	logger    *zap.Logger
	now       func() time.Time
}

func NewScheduler(srcDir, backupDir string, retentionDays, hour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		srcDir:    srcDir,
		backupDir: backupDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		hour:      hour,
		logger:    logger,
		now:       time.Now,
	}
}

// Run backs up daily at the configured hour until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.nextRun(s.now())
		s.logger.Info("Next data backup scheduled", zap.Time("at", next))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		dest, err := s.Snapshot()
		if err != nil {
			s.logger.Error("Failed to back up data", zap.Error(err))
		} else {
			s.logger.Info("Data backed up", zap.String("dir", dest))
		}
		s.Prune()
	}
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Snapshot copies the data directory into a timestamped folder.
func (s *Scheduler) Snapshot() (string, error) {
	dest := filepath.Join(s.backupDir, s.now().Format(stampLayout))
	if err := snapshotTree(s.srcDir, dest); err != nil {
		return "", fmt.Errorf("copy %s: %w", s.srcDir, err)
	}
	return dest, nil
}

// Prune removes snapshots older than the retention window. Folders whose
// names are not snapshot stamps are left alone.
func (s *Scheduler) Prune() {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		s.logger.Error("Failed to read backup directory", zap.Error(err))
		return
	}

	cutoff := s.now().Add(-s.retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		taken, err := time.ParseInLocation(stampLayout, entry.Name(), s.now().Location())
		if err != nil || !taken.Before(cutoff) {
			continue
		}
		folderPath := filepath.Join(s.backupDir, entry.Name())
		if err := os.RemoveAll(folderPath); err != nil {
			s.logger.Error("Failed to remove old backup", zap.String("dir", folderPath), zap.Error(err))
		} else {
			s.logger.Info("Removed old backup", zap.String("dir", folderPath))
		}
	}
}

// snapshotTree mirrors the collection files under src into dest. Temp files
// left by an in-flight save are skipped.
func snapshotTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if strings.HasSuffix(d.Name(), ".tmp") || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return snapshotFile(path, target, info.Mode().Perm())
	})
}

func snapshotFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
