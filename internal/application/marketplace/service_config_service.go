package marketplace

import (
	"context"
	"errors"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
)

// ServiceConfigService manages operator service configurations
type ServiceConfigService struct {
	configRepo marketplace.ServiceConfigurationRepository
}

// NewServiceConfigService creates a new ServiceConfigService
func NewServiceConfigService(configRepo marketplace.ServiceConfigurationRepository) *ServiceConfigService {
	return &ServiceConfigService{configRepo: configRepo}
}

// Get returns the actor organization's configuration. An organization that
// never saved one gets a default with filtering disabled.
func (s *ServiceConfigService) Get(ctx context.Context, actor Actor) (*ServiceConfigResponse, error) {
	if !actor.IsOperator {
		return nil, shared.NewDomainError("FORBIDDEN", "Only operator organizations have a service configuration")
	}

	cfg, err := s.configRepo.FindByOrg(ctx, actor.OrgID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cfg, err = marketplace.NewServiceConfiguration(actor.OrgID)
		if err != nil {
			return nil, err
		}
	}

	response := ToServiceConfigResponse(cfg)
	return &response, nil
}

// Update replaces the actor organization's configuration
func (s *ServiceConfigService) Update(ctx context.Context, actor Actor, req UpdateServiceConfigRequest) (*ServiceConfigResponse, error) {
	if !actor.IsOperator {
		return nil, shared.NewDomainError("FORBIDDEN", "Only operator organizations have a service configuration")
	}

	cfg, err := s.configRepo.FindByOrg(ctx, actor.OrgID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cfg, err = marketplace.NewServiceConfiguration(actor.OrgID)
		if err != nil {
			return nil, err
		}
	}

	types := make([]marketplace.ServiceType, len(req.ServiceTypes))
	for i, t := range req.ServiceTypes {
		types[i] = marketplace.ServiceType(t)
	}
	if err := cfg.SetServiceTypes(types); err != nil {
		return nil, err
	}

	days := make([]marketplace.Weekday, len(req.AvailableDays))
	for i, d := range req.AvailableDays {
		days[i] = marketplace.Weekday(d)
	}
	if err := cfg.SetAvailableDays(days); err != nil {
		return nil, err
	}

	if req.WorkdayStartHour != nil && req.WorkdayEndHour != nil {
		if err := cfg.SetWorkdayHours(*req.WorkdayStartHour, *req.WorkdayEndHour); err != nil {
			return nil, err
		}
	} else {
		cfg.ClearWorkdayHours()
	}

	if req.BaseLatitude != nil && req.BaseLongitude != nil && req.ServiceRadiusKm != nil {
		if err := cfg.SetServiceArea(*req.BaseLatitude, *req.BaseLongitude, *req.ServiceRadiusKm); err != nil {
			return nil, err
		}
	} else {
		cfg.ClearServiceArea()
	}

	cfg.SetFiltersEnabled(req.EnableJobFilters)

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	response := ToServiceConfigResponse(cfg)
	return &response, nil
}
