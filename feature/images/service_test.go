package images

import (
	"context"
	"io"
	"strings"
	"testing"

	"parts-finder/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, sqlMock
}

func partRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "part_number", "description"}).
		AddRow(1, "NAV1", "Filtro de aceite")
}

func TestUploadRejectsUnsupportedContent(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewService(db, &mocks.Client{}, "part-images", zap.NewNop())

	_, err := svc.Upload(context.Background(), "NAV1", "text/plain", []byte("not an image"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestUploadRejectsEmptyPayload(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewService(db, &mocks.Client{}, "part-images", zap.NewNop())

	_, err := svc.Upload(context.Background(), "NAV1", "image/png", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestUploadUnknownPart(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	svc := NewService(db, &mocks.Client{}, "part-images", zap.NewNop())

	sqlMock.ExpectQuery("SELECT (.+) FROM `parts`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Upload(context.Background(), "MISSING", "image/png", []byte{0x89}, nil)
	assert.ErrorIs(t, err, ErrPartNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUploadStoresObjectAndMetadata(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	client := &mocks.Client{}
	client.On("PutObject", mock.Anything, "part-images", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(db, client, "part-images", zap.NewNop())

	// Part lookup, then previous-primary lookup (none).
	sqlMock.ExpectQuery("SELECT (.+) FROM `parts`").
		WillReturnRows(partRows())
	sqlMock.ExpectQuery("SELECT (.+) FROM `part_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("UPDATE `part_images`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("INSERT INTO `part_images`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	sqlMock.ExpectExec("UPDATE `parts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	uploadedBy := uint(3)
	image, err := svc.Upload(context.Background(), "NAV1", "image/png", []byte{0x89, 0x50}, &uploadedBy)
	assert.NoError(t, err)
	assert.NotNil(t, image)
	assert.Equal(t, uint(42), image.ID)
	assert.True(t, image.IsPrimary)
	assert.True(t, strings.HasPrefix(image.ObjectKey, "parts/NAV1/"))

	client.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUploadCleansUpObjectOnMetadataFailure(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	client := &mocks.Client{}
	client.On("PutObject", mock.Anything, "part-images", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("RemoveObject", mock.Anything, "part-images", mock.Anything, mock.Anything).
		Return(nil)

	svc := NewService(db, client, "part-images", zap.NewNop())

	sqlMock.ExpectQuery("SELECT (.+) FROM `parts`").
		WillReturnRows(partRows())
	sqlMock.ExpectQuery("SELECT (.+) FROM `part_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("UPDATE `part_images`").
		WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	_, err := svc.Upload(context.Background(), "NAV1", "image/png", []byte{0x89}, nil)
	assert.Error(t, err)

	client.AssertCalled(t, "RemoveObject", mock.Anything, "part-images", mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFetchStreamsPrimaryImage(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	client := &mocks.Client{}
	client.On("GetObject", mock.Anything, "part-images", "parts/NAV1/abc/original", mock.Anything).
		Return(io.NopCloser(strings.NewReader("payload")), nil)

	svc := NewService(db, client, "part-images", zap.NewNop())

	sqlMock.ExpectQuery("SELECT (.+) FROM `parts`").
		WillReturnRows(partRows())
	sqlMock.ExpectQuery("SELECT (.+) FROM `part_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "part_id", "object_key", "content_type", "is_primary"}).
			AddRow(9, 1, "parts/NAV1/abc/original", "image/png", true))

	object, image, err := svc.Fetch(context.Background(), "NAV1")
	assert.NoError(t, err)
	assert.Equal(t, "image/png", image.ContentType)

	body, err := io.ReadAll(object)
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(body))
	assert.NoError(t, object.Close())

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFetchNoImage(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	svc := NewService(db, &mocks.Client{}, "part-images", zap.NewNop())

	sqlMock.ExpectQuery("SELECT (.+) FROM `parts`").
		WillReturnRows(partRows())
	sqlMock.ExpectQuery("SELECT (.+) FROM `part_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := svc.Fetch(context.Background(), "NAV1")
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestImageURLEscapesPartNumber(t *testing.T) {
	assert.Equal(t, "/api/parts/NAV%2F1/image?v=7", ImageURL("NAV/1", 7))
}
