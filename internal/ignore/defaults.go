package ignore

// DefaultProtectedPatterns returns the built-in patterns guarding common
// secret files. They occupy the lowest precedence slot in the merged set,
// so any project ignore file can re-allow one with a negation. The list
// is an explicit value handed to the loader rather than state the engine
// reaches for, so tests and embedders can substitute their own.
func DefaultProtectedPatterns() []string {
	return []string{
		// Environment files and dotted variants.
		".env",
		".env.*",
		"*.env",

		// Private key material.
		"*.pem",
		"*.key",
		"*.p12",
		"*.pfx",
		"id_rsa",
		"id_ecdsa",
		"id_ed25519",

		// Credential directories.
		".ssh/",
		".gnupg/",
		".aws/",
		".azure/",
		".config/gcloud/",
		".kube/",

		// Generic secrets and auth files.
		"credentials.json",
		"secrets.yml",
		"secrets.yaml",
		"secrets.json",
		".netrc",
		".npmrc",
		".pypirc",
	}
}
