package mocks

import (
	"context"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error) {
	args := m.Called(ctx, userID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*model.VehicleWithDocuments, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) CreateWithDocuments(ctx context.Context, v *model.Vehicle, docs []model.Document) (*model.VehicleWithDocuments, error) {
	args := m.Called(ctx, v, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, id string, patch repository.VehiclePatch) (*model.Vehicle, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
