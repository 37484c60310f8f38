package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sovbridge/internal/domain"
	"sovbridge/internal/service"
	"sovbridge/internal/sov"
	"sovbridge/mocks"
)

func TestExtractQueueWorkerDispatchesClaimedFiles(t *testing.T) {
	fileRepo := new(mocks.MockSOVFileRepo)
	fileSvc := new(mocks.MockFileService)

	queued := domain.SOVFile{
		ID:           uuid.New(),
		OriginalName: "queued.xlsx",
		Status:       domain.FileStatusProcessing,
	}

	done := make(chan struct{})
	fileRepo.On("ClaimQueued", mock.Anything, 2).Return([]domain.SOVFile{queued}, nil).Once()
	fileRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).Return([]domain.SOVFile{}, nil)
	fileSvc.On("ExtractStored", mock.Anything, mock.MatchedBy(func(f *domain.SOVFile) bool {
		return f.ID == queued.ID
	})).Return(&service.ExtractionResult{Records: &sov.ResultSet{}, SheetCount: 1}, nil).
		Run(func(args mock.Arguments) { close(done) }).Once()

	worker := service.NewExtractQueueWorker(fileRepo, fileSvc, service.ExtractQueueConfig{
		PollInterval: 10 * time.Millisecond,
		Concurrency:  2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(stopped)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never dispatched the claimed file")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	fileSvc.AssertExpectations(t)
}

func TestExtractQueueWorkerSurvivesClaimErrors(t *testing.T) {
	fileRepo := new(mocks.MockSOVFileRepo)
	fileSvc := new(mocks.MockFileService)

	polled := make(chan struct{}, 8)
	fileRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db hiccup")).
		Run(func(args mock.Arguments) {
			select {
			case polled <- struct{}{}:
			default:
			}
		})

	worker := service.NewExtractQueueWorker(fileRepo, fileSvc, service.ExtractQueueConfig{
		PollInterval: 10 * time.Millisecond,
		Concurrency:  1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(stopped)
	}()

	// Two failed polls prove the loop keeps going after an error.
	for i := 0; i < 2; i++ {
		select {
		case <-polled:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped polling after an error")
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	fileSvc.AssertNotCalled(t, "ExtractStored", mock.Anything, mock.Anything)
}
