package ioc

import (
	"regexp"
	"strings"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

var (
	ipPattern     = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
	md5Pattern    = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
	sha1Pattern   = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	sha256Pattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cvePattern    = regexp.MustCompile(`(?i)^CVE-\d{4}-\d{4,}$`)
	urlPattern    = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)
)

// Validate checks value's literal syntax against t's closed rule set. It is
// the only operation in this package allowed to fail — every other
// function here is total over any IOC already accepted by Validate.
// Types with no dedicated rule (hostname, mutex, file_path, process,
// registry_key, unknown) accept any non-empty value.
func Validate(value string, t Type) *apperrors.Error {
	value = strings.TrimSpace(value)
	if value == "" {
		return apperrors.IOCValueInvalid(string(t), "empty value")
	}

	var ok bool
	var reason string

	switch t {
	case TypeIP:
		ok, reason = ipPattern.MatchString(value), "invalid IPv4 address format"
	case TypeDomain:
		ok, reason = domainPattern.MatchString(value), "invalid domain format"
	case TypeMD5:
		ok, reason = md5Pattern.MatchString(value), "invalid MD5 hash format (expected 32 hex characters)"
	case TypeSHA1:
		ok, reason = sha1Pattern.MatchString(value), "invalid SHA1 hash format (expected 40 hex characters)"
	case TypeSHA256:
		ok, reason = sha256Pattern.MatchString(value), "invalid SHA256 hash format (expected 64 hex characters)"
	case TypeEmail:
		ok, reason = emailPattern.MatchString(value), "invalid email format"
	case TypeCVE:
		ok, reason = cvePattern.MatchString(value), "invalid CVE format (expected CVE-YYYY-NNNNN)"
	case TypeURL:
		ok, reason = urlPattern.MatchString(value), "invalid URL format"
	default:
		return nil
	}

	if !ok {
		return apperrors.IOCValueInvalid(string(t), reason)
	}
	return nil
}
