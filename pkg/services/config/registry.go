package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile is one upstream reporting-service connection.
type Profile struct {
	Host  string
	Token string
}

// Registry reads reporting-service profiles from an ini file, one section
// per profile:
//
//	[default]
//	host  = https://reports.example.com
//	token = ...
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (Profile, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return Profile{}, fmt.Errorf("profile %s not found", profile)
	}

	host := section.Key("host").String()
	if host == "" {
		return Profile{}, fmt.Errorf("profile %s has no host", profile)
	}

	return Profile{
		Host:  host,
		Token: section.Key("token").String(),
	}, nil
}
