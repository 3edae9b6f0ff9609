package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"room-service/internal/mocks"
)

func TestSweepRemovesExpiredRooms(t *testing.T) {
	roomRepo := new(mocks.RoomRepositoryMock)
	s := New(roomRepo, nil)

	roomRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	count, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	roomRepo.AssertExpectations(t)
}

func TestSweepIdempotent(t *testing.T) {
	roomRepo := new(mocks.RoomRepositoryMock)
	s := New(roomRepo, nil)

	roomRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(2, nil).Once()
	roomRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(0, nil).Once()

	first, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	// Nothing newly expired: the second sweep is a no-op.
	second, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	roomRepo.AssertExpectations(t)
}

func TestSweepStoreFailure(t *testing.T) {
	roomRepo := new(mocks.RoomRepositoryMock)
	s := New(roomRepo, nil)

	roomRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(0, assert.AnError).Once()

	_, err := s.Sweep(context.Background())
	require.Error(t, err)
	roomRepo.AssertExpectations(t)
}

func TestRunStopsOnCancel(t *testing.T) {
	roomRepo := new(mocks.RoomRepositoryMock)
	s := New(roomRepo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Hour)
		close(done)
	}()
	<-done
	roomRepo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
}
