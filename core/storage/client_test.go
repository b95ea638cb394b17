package storage_test

import (
	"context"
	"testing"

	"parts-finder/core/storage"
	"parts-finder/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "part-images",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	cfg := storage.Config{Bucket: "part-images"}

	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "part-images").Return(true, nil)

		err := storage.EnsureBucket(context.Background(), client, cfg)
		assert.NoError(t, err)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "part-images").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "part-images", mock.Anything).Return(nil)

		err := storage.EnsureBucket(context.Background(), client, cfg)
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})
}

func TestRemoveObjectKeys(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObjects", mock.Anything, "part-images", mock.Anything, mock.Anything).Return(nil)

	err := storage.RemoveObjectKeys(context.Background(), client, "part-images", []string{"parts/A/1.webp", "", "parts/B/2.webp"})
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

var _ storage.Client = (*mocks.Client)(nil)
