package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

// ClientContact prefills the booking form of a returning client.
type ClientContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LookupClient struct {
	repo domain.Repository
}

func NewLookupClient(repo domain.Repository) *LookupClient {
	return &LookupClient{repo: repo}
}

// Execute never reports an unknown email as an error: the contact comes
// back empty instead.
func (uc *LookupClient) Execute(ctx context.Context, email string) (ClientContact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ClientContact{}, nil
	}

	client, err := uc.repo.FindClientByEmail(ctx, email)
	if err != nil {
		if kind, ok := httperr.KindOf(err); ok && kind == httperr.KindNotFound {
			return ClientContact{}, nil
		}
		return ClientContact{}, err
	}

	return ClientContact{Name: client.Name, Phone: client.Phone}, nil
}
