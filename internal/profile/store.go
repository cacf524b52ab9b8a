// Package profile keeps the local user's contact details.
package profile

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"codecup/internal/kvstore"
	"codecup/internal/models"
)

// Field names accepted by UpdateField; they are also the storage key suffixes.
const (
	FieldFullName     = "full_name"
	FieldPhoneNumber  = "phone_number"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldProfileImage = "profile_image_uri"
)

type Store struct {
	mu      sync.Mutex
	profile models.UserProfile
	writer  *kvstore.Writer
}

func New(ctx context.Context, writer *kvstore.Writer) *Store {
	s := &Store{writer: writer, profile: models.DefaultProfile()}
	store := writer.Store()
	for _, field := range []string{FieldFullName, FieldPhoneNumber, FieldEmail, FieldAddress, FieldProfileImage} {
		value, ok, err := store.Get(ctx, kvstore.KeyProfilePrefix+field)
		if err != nil {
			log.Printf("[PROFILE] [ERROR] reading %s failed: %v", field, err)
			continue
		}
		if ok {
			s.profile = withField(s.profile, field, value)
		}
	}
	return s
}

func (s *Store) Get() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Update replaces the whole profile.
func (s *Store) Update(p models.UserProfile) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = p
	s.persist(FieldFullName, p.FullName)
	s.persist(FieldPhoneNumber, p.PhoneNumber)
	s.persist(FieldEmail, p.Email)
	s.persist(FieldAddress, p.Address)
	s.persist(FieldProfileImage, p.ProfileImageURI)
	log.Println("[PROFILE] [INFO] profile updated")
	return s.profile
}

// UpdateDetails replaces the contact details and keeps the current image
// URI, in one locked step.
func (s *Store) UpdateDetails(p models.UserProfile) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ProfileImageURI = s.profile.ProfileImageURI
	s.profile = p
	s.persist(FieldFullName, p.FullName)
	s.persist(FieldPhoneNumber, p.PhoneNumber)
	s.persist(FieldEmail, p.Email)
	s.persist(FieldAddress, p.Address)
	log.Println("[PROFILE] [INFO] details updated")
	return s.profile
}

// UpdateField changes one field by its storage name.
func (s *Store) UpdateField(field, value string) (models.UserProfile, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if !knownField(field) {
		return models.UserProfile{}, fmt.Errorf("profile field %q: %w", field, models.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = withField(s.profile, field, value)
	s.persist(field, value)
	log.Println("[PROFILE] [INFO] updated", field)
	return s.profile, nil
}

func (s *Store) SetImage(uri string) models.UserProfile {
	p, _ := s.UpdateField(FieldProfileImage, uri)
	return p
}

func (s *Store) persist(field, value string) {
	if value == "" && field == FieldProfileImage {
		s.writer.Delete(kvstore.KeyProfilePrefix + field)
		return
	}
	s.writer.Put(kvstore.KeyProfilePrefix+field, value)
}

func knownField(field string) bool {
	switch field {
	case FieldFullName, FieldPhoneNumber, FieldEmail, FieldAddress, FieldProfileImage:
		return true
	}
	return false
}

func withField(p models.UserProfile, field, value string) models.UserProfile {
	switch field {
	case FieldFullName:
		p.FullName = value
	case FieldPhoneNumber:
		p.PhoneNumber = value
	case FieldEmail:
		p.Email = value
	case FieldAddress:
		p.Address = value
	case FieldProfileImage:
		p.ProfileImageURI = value
	}
	return p
}
