package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/institute-site/database/dbtest"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitRecorderInserts(t *testing.T) {
	db := dbtest.New(t)
	recorder := NewVisitRecorder(db, time.Second)

	recorder.Record("/", "10.0.0.1", "curl/8")
	recorder.Record("/courses", "10.0.0.2", "firefox")
	recorder.Wait()

	var visits []model.PageVisit
	require.NoError(t, db.Order("path ASC").Find(&visits).Error)
	require.Len(t, visits, 2)
	assert.Equal(t, "/", visits[0].Path)
	assert.Equal(t, "10.0.0.1", visits[0].IPAddress)
	assert.NotEmpty(t, visits[0].ID)
	assert.False(t, visits[0].CreatedAt.IsZero())
}

func TestVisitRecorderSwallowsFailures(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, db.Migrator().DropTable(&model.PageVisit{}))

	recorder := NewVisitRecorder(db, time.Second)
	assert.NotPanics(t, func() {
		recorder.Record("/", "10.0.0.1", "curl/8")
		recorder.Wait()
	})
}
