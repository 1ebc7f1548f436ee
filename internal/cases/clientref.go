package cases

import (
	"strings"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

// ClientRef is how a case points at its client: either a reference to an
// existing client row or a free-text copy of the client's details.
type ClientRef interface {
	apply(c *models.Case)
}

// LinkedClient references an existing client. Snapshot columns stay NULL.
type LinkedClient struct {
	ID uint
}

// SnapshotClient carries the client's details on the case row itself.
type SnapshotClient struct {
	Name    string
	Company *string
	Email   string
	Phone   string
	Address *string
}

func (l LinkedClient) apply(c *models.Case) {
	id := l.ID
	c.ClientID = &id
	c.ClientName, c.ClientCompany, c.ClientEmail, c.ClientPhone, c.ClientAddress = nil, nil, nil, nil, nil
}

func (s SnapshotClient) apply(c *models.Case) {
	c.ClientID = nil
	c.ClientName = strPtr(s.Name)
	c.ClientCompany = s.Company
	c.ClientEmail = strPtr(s.Email)
	c.ClientPhone = strPtr(s.Phone)
	c.ClientAddress = s.Address
}

// ResolveClientRef picks the linkage mode from the request fields. A client
// id wins; otherwise name, email and phone are all required. Snapshot values
// are kept exactly as supplied. The returned slice lists the missing snapshot
// fields by their JSON name.
func ResolveClientRef(clientID *uint, name, company, email, phone, address *string) (ClientRef, []string) {
	if clientID != nil && *clientID > 0 {
		return LinkedClient{ID: *clientID}, nil
	}

	var missing []string
	for _, f := range []struct {
		name string
		v    *string
	}{{"clientName", name}, {"clientEmail", email}, {"clientPhone", phone}} {
		if blank(f.v) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}
	return SnapshotClient{
		Name:    *name,
		Company: company,
		Email:   *email,
		Phone:   *phone,
		Address: address,
	}, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func strPtr(s string) *string { return &s }
