package admin

import (
	"errors"

	"github.com/sahilchouksey/institute-site/database"
	"gorm.io/gorm"
)

var errNoGORM = errors.New("storage is not backed by gorm")

func gormDB(store database.Storage) (*gorm.DB, error) {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return nil, errNoGORM
	}
	return db, nil
}
