package validation

import "strings"

// providerRules describes how a mail provider treats the local part.
type providerRules struct {
	canonicalDomain string
	removeDots      bool
	subaddressSep   string
}

var providers = map[string]providerRules{
	"gmail.com":      {canonicalDomain: "gmail.com", removeDots: true, subaddressSep: "+"},
	"googlemail.com": {canonicalDomain: "gmail.com", removeDots: true, subaddressSep: "+"},
	"outlook.com":    {subaddressSep: "+"},
	"hotmail.com":    {subaddressSep: "+"},
	"live.com":       {subaddressSep: "+"},
	"icloud.com":     {subaddressSep: "+"},
	"me.com":         {subaddressSep: "+"},
	"mac.com":        {subaddressSep: "+"},
	"yahoo.com":      {subaddressSep: "-"},
	"ymail.com":      {subaddressSep: "-"},
	"rocketmail.com": {subaddressSep: "-"},
}

// NormalizeEmail returns the canonical form of an address: trimmed and
// lowercased, with provider specific aliases folded so that
// "Ana.Lopez+promo@GoogleMail.com" and "analopez@gmail.com" compare equal.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	rules, ok := providers[domain]
	if !ok {
		return email
	}

	if rules.subaddressSep != "" {
		if i := strings.Index(local, rules.subaddressSep); i > 0 {
			local = local[:i]
		}
	}
	if rules.removeDots {
		local = strings.ReplaceAll(local, ".", "")
	}
	if rules.canonicalDomain != "" {
		domain = rules.canonicalDomain
	}

	if local == "" {
		return email
	}

	return local + "@" + domain
}
