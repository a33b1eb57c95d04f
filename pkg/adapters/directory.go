package adapters

import (
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/dairy-tools/milk-atlas/pkg/models/store"
)

func MapStoreMemberToDomain(m store.Member) domain.Member {
	return domain.Member{
		Code:           m.Code,
		Name:           m.Name,
		MilkType:       domain.MilkType(m.MilkType),
		CommissionType: m.CommissionType,
		Status:         m.Status,
	}
}

func MapDomainMemberToStore(deviceID string, position int, m domain.Member) store.Member {
	return store.Member{
		DeviceID:       deviceID,
		Code:           m.Code,
		Name:           m.Name,
		MilkType:       string(m.MilkType),
		CommissionType: m.CommissionType,
		Status:         m.Status,
		Position:       position,
	}
}
