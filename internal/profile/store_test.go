package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecup/internal/kvstore"
	"codecup/internal/models"
)

func TestDefaultsUntilEdited(t *testing.T) {
	w := kvstore.NewWriter(kvstore.NewMemoryStore(), 8)
	defer w.Close(context.Background())

	s := New(context.Background(), w)
	assert.Equal(t, models.DefaultProfile(), s.Get())
}

func TestUpdateFieldPersists(t *testing.T) {
	w := kvstore.NewWriter(kvstore.NewMemoryStore(), 8)
	defer w.Close(context.Background())
	s := New(context.Background(), w)

	p, err := s.UpdateField("Email", "me@codecup.test")
	require.NoError(t, err)
	assert.Equal(t, "me@codecup.test", p.Email)

	_, err = s.UpdateField("favourite_drink", "mocha")
	assert.ErrorIs(t, err, models.ErrNotFound)

	s.SetImage("content://avatar.png")
	require.NoError(t, w.Flush(context.Background()))

	reloaded := New(context.Background(), w).Get()
	assert.Equal(t, "me@codecup.test", reloaded.Email)
	assert.Equal(t, "content://avatar.png", reloaded.ProfileImageURI)
	assert.Equal(t, "Anderson", reloaded.FullName)
}

func TestUpdateReplacesProfile(t *testing.T) {
	w := kvstore.NewWriter(kvstore.NewMemoryStore(), 8)
	defer w.Close(context.Background())
	s := New(context.Background(), w)
	s.SetImage("content://old.png")

	next := models.UserProfile{FullName: "Kim", PhoneNumber: "1", Email: "k@x", Address: "Somewhere"}
	assert.Equal(t, next, s.Update(next))
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, next, New(context.Background(), w).Get())
}

func TestUpdateDetailsKeepsImage(t *testing.T) {
	w := kvstore.NewWriter(kvstore.NewMemoryStore(), 64)
	defer w.Close(context.Background())
	s := New(context.Background(), w)
	s.SetImage("content://avatar.png")

	got := s.UpdateDetails(models.UserProfile{FullName: "Kim", ProfileImageURI: "ignored"})
	assert.Equal(t, "Kim", got.FullName)
	assert.Equal(t, "content://avatar.png", got.ProfileImageURI)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			s.SetImage("content://latest.png")
		}
	}()
	for i := 0; i < 100; i++ {
		s.UpdateDetails(models.UserProfile{FullName: "Kim"})
	}
	<-done

	assert.Equal(t, "content://latest.png", s.Get().ProfileImageURI)
	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t, "content://latest.png", New(context.Background(), w).Get().ProfileImageURI)
}
