package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
)

// DefaultDisplayName is shown when no profile name is stored.
const DefaultDisplayName = "User"

// Profile holds the answers collected during onboarding. It is committed to
// the store as JSON under constants.KeyUserProfile.
type Profile struct {
	Name              string   `json:"name,omitempty"`
	Age               int      `json:"age,omitempty"`
	WorkoutPreference string   `json:"workoutPreference,omitempty"`
	Equipment         []string `json:"equipment,omitempty"`
	GymEquipment      []string `json:"gymEquipment,omitempty"`
	FitnessGoal       string   `json:"fitnessGoal,omitempty"`
}

// Merge returns p with every non-empty field of other applied over it.
func (p Profile) Merge(other Profile) Profile {
	if other.Name != "" {
		p.Name = other.Name
	}
	if other.Age != 0 {
		p.Age = other.Age
	}
	if other.WorkoutPreference != "" {
		p.WorkoutPreference = other.WorkoutPreference
	}
	if len(other.Equipment) > 0 {
		p.Equipment = slices.Clone(other.Equipment)
	}
	if len(other.GymEquipment) > 0 {
		p.GymEquipment = slices.Clone(other.GymEquipment)
	}
	if other.FitnessGoal != "" {
		p.FitnessGoal = other.FitnessGoal
	}
	return p
}

// DisplayName returns the name to greet the user with.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return DefaultDisplayName
	}
	return p.Name
}

// Encode serializes the profile for storage.
func (p Profile) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(data), nil
}

// LoadProfile reads the stored profile. A missing or malformed profile yields
// the zero Profile; only store failures are returned as errors.
func LoadProfile(ctx context.Context, s store.Store) (Profile, error) {
	raw, ok, err := s.Get(ctx, constants.KeyUserProfile)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{}, nil
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, nil
	}
	return p, nil
}
