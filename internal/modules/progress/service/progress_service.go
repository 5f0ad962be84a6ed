package service

import (
	"context"
	"fmt"

	"apnea/internal/modules/progress/domain"
	progressout "apnea/internal/modules/progress/port/out"
)

type ProgressService struct {
	reader   progressout.RecordReader
	profiles progressout.ProfileLocator
}

func NewProgressService(reader progressout.RecordReader, profiles progressout.ProfileLocator) *ProgressService {
	return &ProgressService{reader: reader, profiles: profiles}
}

// Stats aggregates profileID's records, or the current profile's when empty.
func (s *ProgressService) Stats(ctx context.Context, profileID string) (string, domain.Stats, error) {
	name := profileID
	if profileID == "" {
		var err error
		profileID, name, err = s.profiles.CurrentProfile(ctx)
		if err != nil {
			return "", domain.Stats{}, fmt.Errorf("resolve profile: %w", err)
		}
	}
	records, err := s.reader.Records(ctx, profileID)
	if err != nil {
		return "", domain.Stats{}, err
	}
	return name, domain.Aggregate(records), nil
}
