package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	store "github.com/dairy-tools/milk-atlas/pkg/store/duckdb/directory"
	"github.com/rs/zerolog"
)

// Upstream is the slice of the reporting service the syncer needs.
type Upstream interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
}

// Syncer mirrors the upstream device/member directory into the embedded
// store. The report pipeline reads the mirror; only Sync writes it.
type Syncer struct {
	upstream Upstream
	store    store.Store
}

func NewSyncer(upstream Upstream, s store.Store) *Syncer {
	return &Syncer{upstream: upstream, store: s}
}

type wireMember struct {
	Code           string `json:"CODE"`
	Name           string `json:"NAME"`
	MilkType       string `json:"MILKTYPE"`
	CommissionType string `json:"COMMISSIONTYPE"`
	Status         string `json:"STATUS"`
}

type wireDevice struct {
	ID        string       `json:"ID"`
	DairyCode string       `json:"DAIRYCODE"`
	Members   []wireMember `json:"MEMBERS"`
}

// Sync fetches the full directory and swaps the mirror in one transaction.
// It returns the number of devices now in the mirror.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	raw, err := s.upstream.Get(ctx, "/directory/devices", url.Values{})
	if err != nil {
		return 0, err
	}

	var env struct {
		Data []wireDevice `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, &domain.FetchError{Message: "malformed directory response", Err: err}
	}

	devices := make([]domain.Device, 0, len(env.Data))
	for _, wd := range env.Data {
		if wd.ID == "" {
			return 0, &domain.FetchError{Message: "malformed directory response", Err: fmt.Errorf("device with empty id")}
		}
		d := domain.Device{ID: wd.ID, DairyCode: wd.DairyCode}
		if d.DairyCode == "" {
			d.DairyCode = d.OwnerCode()
		}
		for _, wm := range wd.Members {
			d.Members = append(d.Members, domain.Member{
				Code:           wm.Code,
				Name:           wm.Name,
				MilkType:       domain.MilkType(wm.MilkType),
				CommissionType: wm.CommissionType,
				Status:         wm.Status,
			})
		}
		devices = append(devices, d)
	}

	if err := s.store.ReplaceAll(ctx, devices); err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().Int("devices", len(devices)).Msg("directory synced")
	return len(devices), nil
}
