package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

// upsertClient resolves the client by email, then by phone, refreshing the
// stored contact fields. New clients start active with no appointments.
func upsertClient(
	ctx context.Context,
	repo domain.Repository,
	name string,
	email string,
	phone string,
) (*models.Client, error) {

	var client *models.Client

	if email != "" {
		c, err := repo.FindClientByEmail(ctx, email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		client = c
	}

	if client == nil && phone != "" {
		c, err := repo.FindClientByPhone(ctx, phone)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		client = c
	}

	if client == nil {
		client = &models.Client{
			Name:   name,
			Email:  email,
			Phone:  phone,
			Status: models.ClientActive,
		}
		if err := repo.SaveClient(ctx, client); err != nil {
			return nil, err
		}
		return client, nil
	}

	changed := false
	if name != "" && client.Name != name {
		client.Name = name
		changed = true
	}
	if email != "" && client.Email != email {
		client.Email = email
		changed = true
	}
	if phone != "" && client.Phone != phone {
		client.Phone = phone
		changed = true
	}

	if changed {
		if err := repo.SaveClient(ctx, client); err != nil {
			return nil, err
		}
	}
	return client, nil
}
