package mocks

import (
	"context"

	"github.com/quadrantgeo/pinmap/internal/geocoding"
	"github.com/quadrantgeo/pinmap/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Interface is a mock type for the repository.Interface interface.
type Interface struct {
	mock.Mock
}

// LoadAddresses provides a mock function with no fields.
func (_m *Interface) LoadAddresses() ([]models.AddressRecord, error) {
	ret := _m.Called()

	var r0 []models.AddressRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.AddressRecord)
	}

	return r0, ret.Error(1)
}

// HasDataset provides a mock function with no fields.
func (_m *Interface) HasDataset() bool {
	ret := _m.Called()

	return ret.Bool(0)
}

// SaveDataset provides a mock function with given fields: records.
func (_m *Interface) SaveDataset(records []models.GeocodedRecord) error {
	ret := _m.Called(records)

	return ret.Error(0)
}

// LoadDataset provides a mock function with no fields.
func (_m *Interface) LoadDataset() ([]models.GeocodedRecord, error) {
	ret := _m.Called()

	var r0 []models.GeocodedRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.GeocodedRecord)
	}

	return r0, ret.Error(1)
}

// NewInterface creates a new instance of Interface. It also registers a
// testing interface on the mock and a cleanup function to assert the
// mocks expectations.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	m := &Interface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Resolver is a mock type for the service.Resolver interface.
type Resolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, address.
func (_m *Resolver) Resolve(ctx context.Context, address string) geocoding.Result {
	ret := _m.Called(ctx, address)

	return ret.Get(0).(geocoding.Result)
}

// NewResolver creates a new instance of Resolver. It also registers a
// testing interface on the mock and a cleanup function to assert the
// mocks expectations.
func NewResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *Resolver {
	m := &Resolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
