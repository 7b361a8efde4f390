package memstore

import (
	"io"
	"os"
	"time"

	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Seed is the YAML document loaded into an empty store at startup.
type Seed struct {
	Users      []SeedUser     `yaml:"users"`
	Properties []SeedProperty `yaml:"properties"`
}

type SeedUser struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
}

type SeedProperty struct {
	ID                   string `yaml:"id"`
	HostID               string `yaml:"host_id"`
	Title                string `yaml:"title"`
	City                 string `yaml:"city"`
	MonthlyPriceCents    int64  `yaml:"monthly_price_cents"`
	CleaningFeeCents     int64  `yaml:"cleaning_fee_cents"`
	SecurityDepositCents int64  `yaml:"security_deposit_cents"`
	MinimumStayWeeks     int    `yaml:"minimum_stay_weeks"`
	MaximumStayMonths    int    `yaml:"maximum_stay_months"`
	MaxGuests            int    `yaml:"max_guests"`
	Status               string `yaml:"status"`
}

func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.Wrap(err, "failed to open seed file")
	}
	defer f.Close()
	return s.LoadSeed(f)
}

func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return errs.Wrap(err, "failed to decode seed")
	}

	now := time.Now().UTC()
	for i, su := range seed.Users {
		u, err := su.profile()
		if err != nil {
			return errs.Wrapf(err, "users[%d]", i)
		}
		s.AddUser(u)
	}
	for i, sp := range seed.Properties {
		p, err := sp.property(now)
		if err != nil {
			return errs.Wrapf(err, "properties[%d]", i)
		}
		s.AddProperty(p)
	}
	return nil
}

func (su SeedUser) profile() (user.Profile, error) {
	id, err := uuid.Parse(su.ID)
	if err != nil {
		return user.Profile{}, errs.Wrap(err, "invalid id")
	}
	role := user.RoleUser
	if su.Role != "" {
		if role, err = user.NewRole(su.Role); err != nil {
			return user.Profile{}, err
		}
	}
	return user.Profile{ID: id, DisplayName: su.DisplayName, Email: su.Email, Role: role}, nil
}

func (sp SeedProperty) property(now time.Time) (property.Property, error) {
	id, err := uuid.Parse(sp.ID)
	if err != nil {
		return property.Property{}, errs.Wrap(err, "invalid id")
	}
	hostID, err := uuid.Parse(sp.HostID)
	if err != nil {
		return property.Property{}, errs.Wrap(err, "invalid host_id")
	}
	status := property.Status(sp.Status)
	if sp.Status == "" {
		status = property.StatusActive
	}
	if !status.IsValid() {
		return property.Property{}, errs.Newf("unknown status %q", sp.Status)
	}
	if sp.MaxGuests < 1 || sp.MonthlyPriceCents < 0 {
		return property.Property{}, errs.New("max_guests must be at least 1 and prices non-negative")
	}
	return property.Property{
		ID:                   id,
		HostID:               hostID,
		Title:                sp.Title,
		City:                 sp.City,
		MonthlyPriceCents:    sp.MonthlyPriceCents,
		CleaningFeeCents:     sp.CleaningFeeCents,
		SecurityDepositCents: sp.SecurityDepositCents,
		MinimumStayWeeks:     sp.MinimumStayWeeks,
		MaximumStayMonths:    sp.MaximumStayMonths,
		MaxGuests:            sp.MaxGuests,
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}
