package model

// SecretEntry is a named credential collected during the setup flow. Entries
// are accumulated in input order and handed to the secrets store in a single
// pass; they are never persisted locally. The value is masked when logged.
type SecretEntry struct {
	Name  string
	Value string `masq:"secret"`
}
