package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
)

// CrawlEntry is one line of a nebula crawl dump.
type CrawlEntry struct {
	PeerID       string   `json:"PeerID"`
	Maddrs       []string `json:"Maddrs"`
	AgentVersion string   `json:"AgentVersion"`
	Protocols    []string `json:"Protocols"`
}

// ReadCrawl reads a nebula NDJSON crawl file. Blank and malformed lines are
// skipped; the number of skipped lines is reported alongside the entries.
func ReadCrawl(path string) ([]CrawlEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening crawl file %q: %w", path, err)
	}
	defer f.Close()

	var (
		entries []CrawlEntry
		skipped int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry CrawlEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading crawl file %q: %w", path, err)
	}

	return entries, skipped, nil
}

// IPs extracts the unique, valid IPv4 addresses from the entry's
// multiaddrs. An address like /ip4/1.2.3.4/tcp/30303 yields 1.2.3.4.
func (e CrawlEntry) IPs() []string {
	seen := make(map[string]struct{})
	var ips []string

	for _, addr := range e.Maddrs {
		parts := strings.Split(addr, "/")
		for i, part := range parts {
			if part != "ip4" || i+1 >= len(parts) {
				continue
			}
			ip := net.ParseIP(parts[i+1])
			if ip == nil || ip.To4() == nil {
				continue
			}
			if _, dup := seen[parts[i+1]]; dup {
				continue
			}
			seen[parts[i+1]] = struct{}{}
			ips = append(ips, parts[i+1])
		}
	}

	return ips
}
