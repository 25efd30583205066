package survey

import (
	"strings"
)

// orgSuffixes are the corporate suffixes stripped off ASN organization names
// before any provider matching happens.
var orgSuffixes = []string{
	" LLC",
	" Ltd.",
	" Inc.",
	" Corporation",
	" Corp.",
	" SA",
	" AG",
}

// providerAlias maps the variants an ASN organization shows up under to one
// canonical provider name.
type providerAlias struct {
	Name     string
	Variants []string
}

// providerAliases is matched in order; the first provider with a matching
// variant wins. The table is read-only after process start.
var providerAliases = []providerAlias{
	{Name: "OVH", Variants: []string{"OVH", "OVH SAS", "OVH Hosting"}},
	{Name: "Hetzner", Variants: []string{"Hetzner", "Hetzner Online", "Hetzner Online GmbH", "HETZNER"}},
	{Name: "DigitalOcean", Variants: []string{"DIGITALOCEAN", "DigitalOcean", "DIGITALOCEAN-ASN", "DIGITALOCEAN-N"}},
	{Name: "Amazon AWS", Variants: []string{"Amazon", "Amazon.com", "AWS", "AMAZON-AES", "AMAZON-02", "AMAZON-", "Amazon Technologies"}},
	{Name: "Google Cloud", Variants: []string{"Google", "Google Cloud", "GOOGLE", "GCP", "Google LLC"}},
	{Name: "Microsoft Azure", Variants: []string{"Microsoft", "Azure", "Microsoft Corporation", "MICROSOFT-CORP"}},
	{Name: "Linode", Variants: []string{"Linode", "LINODE-AP", "LINODE", "Linode LLC"}},
	{Name: "Vultr", Variants: []string{"Vultr", "Vultr Holdings", "VULTR-AS", "AS-VULTR"}},
	{Name: "Contabo", Variants: []string{"Contabo", "Contabo GmbH", "CONTABO"}},
	{Name: "Netcup", Variants: []string{"netcup", "netcup GmbH"}},
	{Name: "Equinix", Variants: []string{"Equinix", "EQUINIX", "PACKET", "Packet Host"}},
	{Name: "Alibaba", Variants: []string{"Alibaba", "ALIBABA", "Aliyun"}},
}

// DefaultExclusions drops ASN organizations that are not hosting businesses
// (consumer and campus networks) from the hosting distribution.
var DefaultExclusions = []string{"residential", "university", "college", "school", "home", "telecom"}

// StripOrgSuffixes removes the common corporate suffixes from an ASN
// organization name.
func StripOrgSuffixes(org string) string {
	for _, suffix := range orgSuffixes {
		org = strings.ReplaceAll(org, suffix, "")
	}
	return strings.TrimSpace(org)
}

// MatchProvider matches an organization name against the alias table,
// case-insensitively. The table order is the tie-break.
func MatchProvider(org string) (string, bool) {
	lower := strings.ToLower(org)
	for _, alias := range providerAliases {
		for _, variant := range alias.Variants {
			if strings.Contains(lower, strings.ToLower(variant)) {
				return alias.Name, true
			}
		}
	}
	return "", false
}

// HostingLabel reduces a raw ASN organization name to a hosting category:
// suffixes are stripped, known providers map to their canonical name, and
// everything else keeps its own name unless it matches an exclusion keyword.
// Applying HostingLabel to an already-canonical name yields the same name.
func HostingLabel(org string, exclusions []string) (string, bool) {
	org = StripOrgSuffixes(org)
	if org == "" {
		return "", false
	}

	if provider, ok := MatchProvider(org); ok {
		return provider, true
	}

	lower := strings.ToLower(org)
	for _, keyword := range exclusions {
		if strings.Contains(lower, keyword) {
			return "", false
		}
	}

	return org, true
}

// NormalizeVersion trims the surrounding slashes off a wire version string:
// "/Satoshi:27.0.0/" becomes "Satoshi:27.0.0".
func NormalizeVersion(version string) string {
	return strings.Trim(version, "/")
}

// ClientToken extracts the client name from a normalized version string by
// taking everything before the first ":" or "/".
func ClientToken(version string) string {
	version = NormalizeVersion(version)
	if i := strings.IndexAny(version, ":/"); i >= 0 {
		return version[:i]
	}
	return version
}

// containsAny reports whether s contains any of the specified substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
