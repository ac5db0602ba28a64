package crm

import (
	"fmt"
	"strings"
)

// defaultBaseDomain is used when configuration supplies a bare subdomain.
const defaultBaseDomain = "amocrm.ru"

// baseDomains are the hosted regions an account can live on.
var baseDomains = []string{"amocrm.ru", "amocrm.com", "kommo.com"}

// Account identifies an AmoCRM/Kommo tenant after configuration
// normalization.
type Account struct {
	Subdomain  string
	BaseDomain string
}

// APIBaseURL returns the account's API origin, e.g. https://acme.kommo.com.
func (a Account) APIBaseURL() string {
	return fmt.Sprintf("https://%s.%s", a.Subdomain, a.BaseDomain)
}

// ResolveAccount normalizes the configured subdomain string into an Account.
// The input may be a bare subdomain ("acme"), a full host
// ("acme.amocrm.ru"), or a complete URL with a trailing path
// ("https://acme.kommo.com/settings"). Resolution happens once at startup;
// an input that normalizes to an empty subdomain is a configuration error.
func ResolveAccount(raw string) (Account, error) {
	trimmed := strings.TrimSpace(raw)

	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	}
	if idx := strings.IndexAny(trimmed, "/?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	base := defaultBaseDomain
	for _, candidate := range baseDomains {
		if strings.HasSuffix(trimmed, "."+candidate) {
			base = candidate
			trimmed = strings.TrimSuffix(trimmed, "."+candidate)
			break
		}
	}

	subdomain := strings.Trim(trimmed, ".")
	if subdomain == "" || strings.Contains(subdomain, ".") {
		return Account{}, fmt.Errorf("crm: cannot resolve account subdomain from %q", raw)
	}

	return Account{Subdomain: subdomain, BaseDomain: base}, nil
}
