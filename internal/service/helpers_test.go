package service

import (
	"context"
	"fmt"
	"testing"

	"tobacco/internal/database"
	"tobacco/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database and migrates the
// schema. A single connection keeps the shared-cache database alive for
// the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, authorities ...model.Authority) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username:    username,
		Password:    string(hashed),
		DisplayName: username,
	}
	for _, a := range authorities {
		user.Authorities = append(user.Authorities, model.UserAuthority{Authority: a})
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedGroup(t *testing.T, db *gorm.DB, displayName string, members ...*model.User) *model.Group {
	t.Helper()

	group := &model.Group{DisplayName: displayName, Users: members}
	require.NoError(t, db.Create(group).Error)
	return group
}

func seedProduct(t *testing.T, db *gorm.DB, displayName string, price int64) *model.Product {
	t.Helper()

	product := &model.Product{
		DisplayName:        displayName,
		DisplayDescription: displayName,
		DisplayUnit:        "pack",
		CurrentPrice:       price,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedInvoice(t *testing.T, db *gorm.DB, author *model.User, description string, status model.InvoiceStatus) *model.Invoice {
	t.Helper()

	invoice := &model.Invoice{
		AuthorID:           author.ID,
		DisplayDescription: description,
		Status:             status,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

// reloadUser fetches the user the way the auth middleware does, with
// authorities and groups attached.
func reloadUser(t *testing.T, db *gorm.DB, id int64) *model.User {
	t.Helper()

	var user model.User
	require.NoError(t, db.Preload("Authorities").Preload("Groups").First(&user, "id = ?", id).Error)
	return &user
}

var testCtx = context.Background()
