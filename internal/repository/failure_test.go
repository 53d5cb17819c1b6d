package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver-level failure paths that an in-memory database cannot produce.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestListPropagatesCountFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("server has gone away"))

	_, _, err := repo.List(1, 20)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackAndSurfacesRawDriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	driverErr := errors.New("Error 1062 (23000): Duplicate entry 'dup@example.com' for key 'users.uni_users_email'")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(driverErr)
	mock.ExpectRollback()

	user := &models.User{
		Name:         "Dup",
		Email:        "dup@example.com",
		Role:         models.RoleEmployee,
		PasswordHash: "x",
	}
	err := repo.Create(user)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// The repository surfaces the raw error; the boundary translator is the
	// one to turn it into the email conflict.
	translated := apierrors.Translate(err)
	require.Equal(t, apierrors.CodeConflict, translated.Code)
	require.Equal(t, "Email is already being used.", translated.Message)
}
