// Package geodb provides country and autonomous-system lookups against the
// local GeoLite2 databases. The databases are opened read-only once per run
// and shared by every classification pass.
package geodb

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrNotFound is returned when an address has no entry in the database.
var ErrNotFound = errors.New("address not found")

// Databases holds the file locations of the GeoLite2 databases. A path may
// be empty when the corresponding lookup is not needed for a run.
type Databases struct {
	Country string
	ASN     string
}

// Resolver performs IP based country and ASN organization lookups.
type Resolver struct {
	country *geoip2.Reader
	asn     *geoip2.Reader
}

// Open opens the configured GeoLite2 databases.
func Open(dbs Databases) (*Resolver, error) {
	var r Resolver

	if dbs.Country != "" {
		reader, err := geoip2.Open(dbs.Country)
		if err != nil {
			return nil, fmt.Errorf("opening country database %q: %w", dbs.Country, err)
		}
		r.country = reader
	}

	if dbs.ASN != "" {
		reader, err := geoip2.Open(dbs.ASN)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("opening asn database %q: %w", dbs.ASN, err)
		}
		r.asn = reader
	}

	return &r, nil
}

// Close releases the underlying database readers.
func (r *Resolver) Close() {
	if r.country != nil {
		r.country.Close()
	}
	if r.asn != nil {
		r.asn.Close()
	}
}

// CountryCode returns the ISO country code for the specified IP address.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r.country == nil {
		return "", errors.New("country database not configured")
	}

	addr := net.ParseIP(ip)
	if addr == nil {
		return "", fmt.Errorf("invalid ip address %q", ip)
	}

	record, err := r.country.Country(addr)
	if err != nil {
		return "", fmt.Errorf("country lookup for %q: %w", ip, err)
	}
	if record.Country.IsoCode == "" {
		return "", ErrNotFound
	}

	return record.Country.IsoCode, nil
}

// ASNOrganization returns the autonomous-system organization name that
// announces the specified IP address.
func (r *Resolver) ASNOrganization(ip string) (string, error) {
	if r.asn == nil {
		return "", errors.New("asn database not configured")
	}

	addr := net.ParseIP(ip)
	if addr == nil {
		return "", fmt.Errorf("invalid ip address %q", ip)
	}

	record, err := r.asn.ASN(addr)
	if err != nil {
		return "", fmt.Errorf("asn lookup for %q: %w", ip, err)
	}
	if record.AutonomousSystemOrganization == "" {
		return "", ErrNotFound
	}

	return record.AutonomousSystemOrganization, nil
}

// CanonicalIP extracts a plain IP address from the address forms the node
// directories return: bare IPs, host:port pairs, bracketed IPv6 addresses
// and IPv4-mapped IPv6 addresses. It reports false when no valid IP can
// be recovered.
func CanonicalIP(addr string) (string, bool) {
	if addr == "" {
		return "", false
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	addr = strings.TrimPrefix(addr, "[")
	addr = strings.TrimSuffix(addr, "]")
	addr = strings.TrimPrefix(addr, "::ffff:")

	ip := net.ParseIP(addr)
	if ip == nil {
		return "", false
	}

	if v4 := ip.To4(); v4 != nil {
		return v4.String(), true
	}

	return ip.String(), true
}
