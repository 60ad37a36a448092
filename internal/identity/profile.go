package identity

import (
	"context"
	"fmt"
	"strings"
)

// Profile is the per-user entry pair kept in the profile store.
type Profile struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

func photoKey(id string) string       { return "profilePic_" + id }
func displayNameKey(id string) string { return "displayName_" + id }

// StoredProfile reads the profile store entries for id. Missing entries
// are empty.
func (s *Service) StoredProfile(ctx context.Context, id string) (Profile, error) {
	var p Profile
	var err error
	if p.PhotoURL, _, err = s.profiles.Get(ctx, photoKey(id)); err != nil {
		return Profile{}, err
	}
	if p.DisplayName, _, err = s.profiles.Get(ctx, displayNameKey(id)); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SaveStoredProfile writes both entries without touching the identity
// record. Empty values delete the entry.
func (s *Service) SaveStoredProfile(ctx context.Context, id string, p Profile) error {
	if err := s.setEntry(ctx, photoKey(id), strings.TrimSpace(p.PhotoURL)); err != nil {
		return err
	}
	return s.setEntry(ctx, displayNameKey(id), strings.TrimSpace(p.DisplayName))
}

func (s *Service) setEntry(ctx context.Context, key, value string) error {
	var err error
	if value == "" {
		err = s.profiles.Delete(ctx, key)
	} else {
		err = s.profiles.Set(ctx, key, value)
	}
	if err != nil {
		return fmt.Errorf("save profile entry: %w", err)
	}
	return nil
}
