package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shenikar/coastal_hazard_system/internal/fetcher"
	"github.com/shenikar/coastal_hazard_system/internal/refresh"
	"github.com/sirupsen/logrus"
)

type importSummary struct {
	Files    int
	Skipped  int
	Posts    int
	Inserted int
}

// importDir загружает все *.json из каталога по порядку имен.
// Битый файл пропускается, ошибка хранилища прерывает импорт.
func importDir(ctx context.Context, dir string, sink refresh.PostSink, log *logrus.Logger) (importSummary, error) {
	var summary importSummary

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return summary, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(files)

	for _, path := range files {
		fileLog := log.WithField("file", filepath.Base(path))

		data, err := os.ReadFile(path)
		if err != nil {
			fileLog.WithError(err).Warn("Skipping unreadable file")
			summary.Skipped++
			continue
		}
		posts, err := fetcher.DecodePosts(data)
		if err != nil {
			fileLog.WithError(err).Warn("Skipping malformed file")
			summary.Skipped++
			continue
		}

		summary.Files++
		summary.Posts += len(posts)
		inserted, err := sink.IngestPosts(ctx, posts)
		summary.Inserted += inserted
		if err != nil {
			return summary, fmt.Errorf("import %s: %w", filepath.Base(path), err)
		}
		fileLog.WithFields(logrus.Fields{
			"posts":    len(posts),
			"inserted": inserted,
		}).Info("File imported")
	}

	return summary, nil
}
