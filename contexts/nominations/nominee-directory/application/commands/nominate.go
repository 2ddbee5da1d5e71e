package commands

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	application "trustvote/contexts/nominations/nominee-directory/application"
	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	domainerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"
	"trustvote/contexts/nominations/nominee-directory/ports"
)

type NominateCommand struct {
	Name            string
	Email           string
	CollegeName     string
	Description     string
	Reason          string
	Location        string
	PhotoURL        string
	LinkedinProfile string
}

// DirectoryUseCase owns nominee profile writes.
type DirectoryUseCase struct {
	Nominees ports.NomineeRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Nominate registers a new nominee with a zero tally. Email is the natural
// key; a duplicate registration fails with ErrNomineeExists.
func (uc DirectoryUseCase) Nominate(ctx context.Context, cmd NominateCommand) (entities.Nominee, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if name == "" || email == "" {
		return entities.Nominee{}, domainerrors.ErrInvalidNomination
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return entities.Nominee{}, domainerrors.ErrInvalidNomination
	}

	if _, exists, err := uc.Nominees.GetNomineeByEmail(ctx, email); err != nil {
		return entities.Nominee{}, err
	} else if exists {
		return entities.Nominee{}, domainerrors.ErrNomineeExists
	}

	nomineeID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Nominee{}, err
	}
	now := uc.Clock.Now().UTC()
	nominee := entities.Nominee{
		NomineeID:       nomineeID,
		Name:            name,
		Email:           email,
		CollegeName:     strings.TrimSpace(cmd.CollegeName),
		Description:     strings.TrimSpace(cmd.Description),
		Reason:          strings.TrimSpace(cmd.Reason),
		Location:        strings.TrimSpace(cmd.Location),
		PhotoURL:        strings.TrimSpace(cmd.PhotoURL),
		LinkedinProfile: strings.TrimSpace(cmd.LinkedinProfile),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.Nominees.CreateNominee(ctx, nominee); err != nil {
		return entities.Nominee{}, err
	}

	logger.Info("nominee registered",
		"event", "directory_nominee_registered",
		"module", "nominations/nominee-directory",
		"layer", "application",
		"nominee_id", nomineeID,
	)
	return nominee, nil
}
