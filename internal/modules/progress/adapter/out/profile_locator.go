package out

import (
	"context"

	profilein "apnea/internal/modules/profile/port/in"
	progressout "apnea/internal/modules/progress/port/out"
)

type ProfileLocator struct {
	profiles profilein.Usecase
}

func NewProfileLocator(profiles profilein.Usecase) progressout.ProfileLocator {
	return ProfileLocator{profiles: profiles}
}

// CurrentProfile returns the current profile's id and name. Reading it also
// makes sure the projection exists on a fresh data directory.
func (l ProfileLocator) CurrentProfile(ctx context.Context) (string, string, error) {
	out, err := l.profiles.Current(ctx)
	if err != nil {
		return "", "", err
	}
	return out.ID, out.Name, nil
}
