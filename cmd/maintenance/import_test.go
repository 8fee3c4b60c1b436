package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/refresh/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestImportDir_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_twitter.json", `[{"source":"Twitter","text":"flood"},{"source":"Twitter","text":"storm"}]`)
	writeFile(t, dir, "b_broken.json", `{"text":`)
	writeFile(t, dir, "c_reddit.json", `{"source":"Reddit","text":"tsunami"}`)
	writeFile(t, dir, "notes.txt", `ignored`)

	ctrl := gomock.NewController(t)
	sink := mocks.NewMockPostSink(ctrl)
	gomock.InOrder(
		sink.EXPECT().IngestPosts(gomock.Any(), gomock.Len(2)).Return(2, nil),
		sink.EXPECT().
			IngestPosts(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, posts []*models.Post) (int, error) {
				require.Len(t, posts, 1)
				assert.Equal(t, "tsunami", posts[0].Text)
				return 0, nil
			}),
	)

	summary, err := importDir(context.Background(), dir, sink, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, importSummary{Files: 2, Skipped: 1, Posts: 3, Inserted: 2}, summary)
}

func TestImportDir_StopsOnStorageError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"source":"Twitter","text":"flood"}]`)
	writeFile(t, dir, "b.json", `[{"source":"Twitter","text":"cyclone"}]`)

	ctrl := gomock.NewController(t)
	sink := mocks.NewMockPostSink(ctrl)
	sink.EXPECT().IngestPosts(gomock.Any(), gomock.Any()).Return(0, errors.New("connection refused")).Times(1)

	summary, err := importDir(context.Background(), dir, sink, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import a.json")
	assert.Equal(t, 1, summary.Files)
}

func TestImportDir_EmptyDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockPostSink(ctrl)

	summary, err := importDir(context.Background(), t.TempDir(), sink, newTestLogger())
	require.NoError(t, err)
	assert.Zero(t, summary)
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "import", "recompute-urgency"}, names)

	root.SetArgs([]string{"import"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
