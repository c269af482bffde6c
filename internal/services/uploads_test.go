package services

import (
	"mime/multipart"
	"testing"

	"github.com/conectahub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A failed insert must not leave the files it would have referenced on disk.
func TestFailedInsertDiscardsUploads(t *testing.T) {
	t.Run("vaga logo", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "rh", models.UserTypeOther)
		failInserts(t, env.db, "vagas")

		_, err := env.vagas.Create(env.ctx, &CreateVagaRequest{
			Title:       "Dev Jr",
			Company:     "ACME",
			Description: "APIs",
			WorkType:    "Fixa",
			Deadline:    "1 mes",
			OwnerID:     owner.ID,
		}, &multipart.FileHeader{Filename: "logo.png"})
		require.Error(t, err)
		assert.Equal(t, env.files.saved, env.files.removed)
		assert.EqualValues(t, 0, env.countRows(t, &models.Vaga{}, ""))
	})

	t.Run("project cover and images", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "ana", models.UserTypeDesigner)
		failInserts(t, env.db, "projects")

		_, err := env.projects.Create(env.ctx, &CreateProjectRequest{Title: "Portfolio", OwnerID: owner.ID},
			&multipart.FileHeader{Filename: "cover.png"},
			[]*multipart.FileHeader{{Filename: "a.png"}, {Filename: "b.png"}})
		require.Error(t, err)
		require.Len(t, env.files.saved, 3)
		assert.ElementsMatch(t, env.files.saved, env.files.removed)
	})

	t.Run("registration avatar", func(t *testing.T) {
		env := newTestEnv(t)
		failInserts(t, env.db, "users")

		_, err := env.users.Register(env.ctx, &RegisterRequest{
			Name:     "Bia",
			Email:    "bia@example.com",
			Password: "segredo123",
		}, &multipart.FileHeader{Filename: "me.jpg"})
		require.Error(t, err)
		assert.Equal(t, env.files.saved, env.files.removed)
	})

	t.Run("successful insert keeps files", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.user(t, "ana", models.UserTypeDesigner)

		_, err := env.projects.Create(env.ctx, &CreateProjectRequest{Title: "Portfolio", OwnerID: owner.ID},
			&multipart.FileHeader{Filename: "cover.png"}, nil)
		require.NoError(t, err)
		assert.Empty(t, env.files.removed)
	})
}
