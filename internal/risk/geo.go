package risk

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Location is what the geography factor needs to know about an IP.
type Location struct {
	CountryCode string
	IsVPN       bool
	IsProxy     bool
	IsTor       bool
}

type GeoLocator interface {
	Locate(ctx context.Context, ip net.IP) (*Location, error)
}

// MaxMindLocator reads a GeoIP2/GeoLite2 Country database and, optionally,
// an Anonymous IP database.
type MaxMindLocator struct {
	country   *geoip2.Reader
	anonymous *geoip2.Reader
}

func OpenMaxMind(countryPath, anonymousPath string) (*MaxMindLocator, error) {
	country, err := geoip2.Open(countryPath)
	if err != nil {
		return nil, fmt.Errorf("error opening country database: %w", err)
	}

	locator := &MaxMindLocator{country: country}
	if anonymousPath != "" {
		anonymous, err := geoip2.Open(anonymousPath)
		if err != nil {
			country.Close()
			return nil, fmt.Errorf("error opening anonymous ip database: %w", err)
		}
		locator.anonymous = anonymous
	}
	return locator, nil
}

func (m *MaxMindLocator) Locate(ctx context.Context, ip net.IP) (*Location, error) {
	record, err := m.country.Country(ip)
	if err != nil {
		return nil, err
	}

	loc := &Location{CountryCode: record.Country.IsoCode}
	if m.anonymous != nil {
		anon, err := m.anonymous.AnonymousIP(ip)
		if err != nil {
			return nil, err
		}
		loc.IsVPN = anon.IsAnonymousVPN
		loc.IsProxy = anon.IsPublicProxy || anon.IsResidentialProxy
		loc.IsTor = anon.IsTorExitNode
	}
	return loc, nil
}

func (m *MaxMindLocator) Close() error {
	if m.anonymous != nil {
		_ = m.anonymous.Close()
	}
	return m.country.Close()
}

// locate is a best-effort lookup used by factors that only enrich on geography.
func (e *Engine) locate(ctx context.Context, ipAddress string) (*Location, bool) {
	if e.Geo == nil || ipAddress == "" {
		return nil, false
	}
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return nil, false
	}
	loc, err := e.Geo.Locate(ctx, ip)
	if err != nil {
		return nil, false
	}
	return loc, true
}
