package identity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/milestonemotors/motors/internal/identity"
	photoMocks "github.com/milestonemotors/motors/internal/photos/mocks"
	"github.com/milestonemotors/motors/internal/store"
	storeMocks "github.com/milestonemotors/motors/internal/store/mocks"
	domain "github.com/milestonemotors/motors/pkg/types"
)

func newService(t *testing.T) (*identity.Service, *storeMocks.MockStore, *photoMocks.MockService) {
	t.Helper()
	mockStore := storeMocks.NewMockStore(t)
	mockPhotos := photoMocks.NewMockService(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return identity.NewService(mockStore, mockPhotos, log, bcrypt.MinCost), mockStore, mockPhotos
}

func TestService_Register(t *testing.T) {
	t.Run("creates account with hashed password", func(t *testing.T) {
		svc, mockStore, _ := newService(t)

		mockStore.EXPECT().GetUserByEmail(mock.Anything, "ana@example.com").
			Return(nil, store.ErrNotFound)

		var created *domain.User
		mockStore.EXPECT().CreateUser(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, u *domain.User) error {
				created = u
				return nil
			})

		u, err := svc.Register(context.Background(), identity.RegisterInput{
			Email:    "  Ana@Example.COM ",
			Username: " ana ",
			Password: "hunter2!",
			City:     "  skopje ",
			Country:  "macedonia",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.Equal(t, "ana", u.Username)
		assert.Equal(t, "Skopje", u.City)
		assert.Equal(t, "Macedonia", u.Country)
		assert.Equal(t, domain.RoleUser, u.Role)
		require.NotNil(t, created)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2!")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, mockStore, _ := newService(t)

		mockStore.EXPECT().GetUserByEmail(mock.Anything, "taken@example.com").
			Return(&domain.User{ID: "u1"}, nil)

		_, err := svc.Register(context.Background(), identity.RegisterInput{
			Email:    "taken@example.com",
			Password: "pw",
		})
		assert.ErrorIs(t, err, identity.ErrEmailTaken)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		svc, mockStore, _ := newService(t)

		mockStore.EXPECT().GetUserByEmail(mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, err := svc.Register(context.Background(), identity.RegisterInput{
			Email:    "x@example.com",
			Password: "pw",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, identity.ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		svc, mockStore, _ := newService(t)
		mockStore.EXPECT().GetUserByEmail(mock.Anything, "ana@example.com").Return(account, nil)

		u, err := svc.Login(context.Background(), "ana@example.com", "correcthorse")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, mockStore, _ := newService(t)
		mockStore.EXPECT().GetUserByEmail(mock.Anything, "ana@example.com").Return(account, nil)

		_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same as wrong password", func(t *testing.T) {
		svc, mockStore, _ := newService(t)
		mockStore.EXPECT().GetUserByEmail(mock.Anything, "ghost@example.com").
			Return(nil, store.ErrNotFound)

		_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	t.Run("swaps profile photo and cleans up the old one", func(t *testing.T) {
		svc, mockStore, mockPhotos := newService(t)

		u := &domain.User{ID: "u1", Username: "ana", ProfilePhotoURL: "https://photos.test/old.jpg"}
		mockStore.EXPECT().GetUserByID(mock.Anything, "u1").Return(u, nil)
		mockPhotos.EXPECT().Upload(mock.Anything, "new.jpg", []byte("img")).
			Return("https://photos.test/new.jpg", nil)
		mockStore.EXPECT().UpdateUser(mock.Anything, mock.Anything).Return(nil)

		deleted := make(chan string, 1)
		mockPhotos.EXPECT().Delete(mock.Anything, "https://photos.test/old.jpg").
			RunAndReturn(func(_ context.Context, url string) error {
				deleted <- url
				return nil
			})

		got, err := svc.UpdateProfile(context.Background(), "u1",
			identity.ProfileInput{Username: "ana", City: "  belgrade "}, "new.jpg", []byte("img"))
		require.NoError(t, err)
		assert.Equal(t, "https://photos.test/new.jpg", got.ProfilePhotoURL)
		assert.Equal(t, "Belgrade", got.City)

		select {
		case url := <-deleted:
			assert.Equal(t, "https://photos.test/old.jpg", url)
		case <-time.After(2 * time.Second):
			t.Fatal("old photo was never cleaned up")
		}
	})

	t.Run("no photo means no storage calls", func(t *testing.T) {
		svc, mockStore, _ := newService(t)

		u := &domain.User{ID: "u1", Username: "ana"}
		mockStore.EXPECT().GetUserByID(mock.Anything, "u1").Return(u, nil)
		mockStore.EXPECT().UpdateUser(mock.Anything, mock.Anything).Return(nil)

		got, err := svc.UpdateProfile(context.Background(), "u1",
			identity.ProfileInput{Username: "renamed"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Username)
	})
}

func TestService_DeleteAccount(t *testing.T) {
	t.Run("removes account and cleans up every photo", func(t *testing.T) {
		svc, mockStore, mockPhotos := newService(t)

		u := &domain.User{ID: "u1", ProfilePhotoURL: "https://photos.test/profile.jpg"}
		mockStore.EXPECT().GetUserByID(mock.Anything, "u1").Return(u, nil)
		mockStore.EXPECT().ListListingsByUser(mock.Anything, "u1").Return([]domain.Listing{
			{ID: 1, ImageURLs: []string{"https://photos.test/a.jpg", "https://photos.test/b.jpg"}},
		}, nil)
		mockStore.EXPECT().DeleteUser(mock.Anything, "u1").Return(nil)

		deleted := make(chan string, 3)
		mockPhotos.EXPECT().Delete(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, url string) error {
				deleted <- url
				return nil
			}).Times(3)

		require.NoError(t, svc.DeleteAccount(context.Background(), "u1"))

		got := map[string]bool{}
		for range 3 {
			select {
			case url := <-deleted:
				got[url] = true
			case <-time.After(2 * time.Second):
				t.Fatal("photo cleanup never finished")
			}
		}
		assert.Len(t, got, 3)
	})

	t.Run("missing account", func(t *testing.T) {
		svc, mockStore, _ := newService(t)
		mockStore.EXPECT().GetUserByID(mock.Anything, "ghost").Return(nil, store.ErrNotFound)

		assert.ErrorIs(t, svc.DeleteAccount(context.Background(), "ghost"), store.ErrNotFound)
	})
}
