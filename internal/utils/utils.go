package utils

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL drops the fragment and defaults the scheme to https.
// Unparseable input is returned unchanged.
func NormalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""

	if parsed.Scheme == "" && parsed.Host == "" && !strings.HasPrefix(urlStr, "/") {
		reparsed, err := url.Parse("https://" + urlStr)
		if err != nil {
			return urlStr
		}
		reparsed.Fragment = ""
		reparsed.RawFragment = ""
		return reparsed.String()
	}

	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}

	return parsed.String()
}

func ComputeContentHash(content []byte) string {
	hash := md5.Sum(content)
	return fmt.Sprintf("%x", hash)
}
