package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/07chouthri/flowerschool-storefront/internal/domain"
)

// AddressClient manages a user's saved addresses in the address book
// service.
type AddressClient struct {
	doer    HTTPDoer
	baseURL string
}

// NewAddressClient creates an address book client against baseURL.
func NewAddressClient(doer HTTPDoer, baseURL string) *AddressClient {
	return &AddressClient{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *AddressClient) userPath(userID string) string {
	return c.baseURL + "/api/users/" + url.PathEscape(userID) + "/addresses"
}

// List returns a user's saved addresses.
func (c *AddressClient) List(ctx context.Context, userID string) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := getJSON(ctx, c.doer, c.userPath(userID), "address", &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Create saves a new address and returns it with its assigned ID.
func (c *AddressClient) Create(ctx context.Context, userID string, addr *domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := postJSON(ctx, c.doer, c.userPath(userID), "address", addr, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a saved address.
func (c *AddressClient) Update(ctx context.Context, userID string, addr *domain.Address) (*domain.Address, error) {
	var updated domain.Address
	u := c.userPath(userID) + "/" + url.PathEscape(addr.ID)
	if err := putJSON(ctx, c.doer, u, "address", addr, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a saved address.
func (c *AddressClient) Delete(ctx context.Context, userID, addressID string) error {
	return deleteReq(ctx, c.doer, c.userPath(userID)+"/"+url.PathEscape(addressID), "address")
}

// SetDefault marks an address as the user's default.
func (c *AddressClient) SetDefault(ctx context.Context, userID, addressID string) error {
	u := c.userPath(userID) + "/" + url.PathEscape(addressID) + "/default"
	return putJSON(ctx, c.doer, u, "address", struct{}{}, nil)
}
