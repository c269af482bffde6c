package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sync"
	"testing"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStore stands in for the upload directory.
type memStore struct {
	mu      sync.Mutex
	saved   []string
	removed []string
	err     error
}

func (m *memStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := fmt.Sprintf("uploads/%s/%d-%s", subdir, len(m.saved), file.Filename)
	m.saved = append(m.saved, p)
	return p, nil
}

func (m *memStore) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	return nil
}

// failInserts makes every INSERT into table fail, as a lost store connection would.
func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	name := "test:fail_insert_" + table
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("insert into " + table + " failed"))
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Create().Remove(name) })
}

type testEnv struct {
	ctx           context.Context
	db            *gorm.DB
	files         *memStore
	notifications *NotificationService
	collab        *CollaborationService
	chats         *ChatService
	connections   *ConnectionService
	likes         *LikeService
	comments      *CommentService
	users         *UserService
	projects      *ProjectService
	vagas         *VagaService
	briefings     *BriefingService
	auth          *AuthService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "conectahub_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = models.Close(db) })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.SetJWTSecret("services-test-secret")

	db := newTestDB(t)
	files := &memStore{}
	notifications := NewNotificationService(db)
	chats := NewChatService(db)
	return &testEnv{
		ctx:           context.Background(),
		db:            db,
		files:         files,
		notifications: notifications,
		collab:        NewCollaborationService(db, notifications, config.WorkflowConfig{}),
		chats:         chats,
		connections:   NewConnectionService(db, notifications, chats),
		likes:         NewLikeService(db, notifications),
		comments:      NewCommentService(db, notifications),
		users:         NewUserService(db, files),
		projects:      NewProjectService(db, files),
		vagas:         NewVagaService(db, files),
		briefings:     NewBriefingService(db),
		auth:          NewAuthService(db, &config.JWTConfig{ExpireHour: 1}),
	}
}

func (e *testEnv) user(t *testing.T, name, userType string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Type: userType}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) project(t *testing.T, owner *models.User, title string) *models.Project {
	t.Helper()
	p := &models.Project{Title: title, OwnerID: owner.ID}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
