package invites

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateInvitesRequest struct {
	LeagueID string   `json:"league_id"`
	Emails   []string `json:"emails"`
}

func (req *CreateInvitesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LeagueID, validation.Required),
		validation.Field(&req.Emails, validation.Required, validation.By(validEmails)),
	)
}

func validEmails(value interface{}) error {
	emails, _ := value.([]string)
	for _, e := range emails {
		if err := is.Email.Validate(e); err != nil {
			return fmt.Errorf("%q: %w", e, err)
		}
	}
	return nil
}
