package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Profile(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CustomerService{Repo: r}
	ctx := context.Background()

	customer := seedCustomer(t, r, "profile@example.com")

	got, err := svc.Profile(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.Email, got.Email)
	assert.Len(t, got.Addresses, 1)

	_, err = svc.Profile(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateProfile(ctx, customer.ID, "New Name", "8888888888")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "8888888888", updated.Phone)
}

func TestCustomerService_Addresses(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CustomerService{Repo: r}
	ctx := context.Background()

	customer := seedCustomer(t, r, "addr@example.com")

	_, err := svc.AddAddress(ctx, customer.ID, AddressInput{AddressLine1: "only line1"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	second, err := svc.AddAddress(ctx, customer.ID, AddressInput{
		AddressLine1: "45 Park Street",
		City:         "Kolkata",
		State:        "West Bengal",
		Pincode:      "700016",
	})
	require.NoError(t, err)
	assert.Equal(t, "India", second.Country)
	assert.False(t, second.IsDefault)

	addrs, err := svc.ListAddresses(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	// Default address sorts first.
	assert.True(t, addrs[0].IsDefault)
}

func TestCustomerService_SetDefaultAddress_SwapsDefault(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CustomerService{Repo: r}
	ctx := context.Background()

	customer := seedCustomer(t, r, "default@example.com")
	second, err := svc.AddAddress(ctx, customer.ID, AddressInput{
		AddressLine1: "45 Park Street",
		City:         "Kolkata",
		State:        "West Bengal",
		Pincode:      "700016",
	})
	require.NoError(t, err)

	_, err = svc.SetDefaultAddress(ctx, customer.ID, second.ID)
	require.NoError(t, err)

	addrs, err := svc.ListAddresses(ctx, customer.ID)
	require.NoError(t, err)

	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestCustomerService_DeleteAddress(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CustomerService{Repo: r}
	ctx := context.Background()

	customer := seedCustomer(t, r, "del@example.com")
	onlyAddr := defaultAddressID(t, r, customer.ID)

	// The sole default address cannot be removed.
	err := svc.DeleteAddress(ctx, customer.ID, onlyAddr)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	second, err := svc.AddAddress(ctx, customer.ID, AddressInput{
		AddressLine1: "45 Park Street",
		City:         "Kolkata",
		State:        "West Bengal",
		Pincode:      "700016",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAddress(ctx, customer.ID, second.ID))

	err = svc.DeleteAddress(ctx, customer.ID, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Another customer's address looks absent.
	other := seedCustomer(t, r, "del-other@example.com")
	err = svc.DeleteAddress(ctx, other.ID, onlyAddr)
	assert.ErrorIs(t, err, ErrNotFound)
}
