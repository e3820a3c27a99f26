package identity

import "regexp"

// greetingPatterns extract the account name from the greeting a git
// service prints on a successful SSH authentication. Each service words
// it differently.
var greetingPatterns = []*regexp.Regexp{
	// GitHub: "Hi octocat! You've successfully authenticated, ..."
	regexp.MustCompile(`Hi ([a-zA-Z0-9-]+)! You've successfully authenticated`),
	// GitLab: "Welcome to GitLab, @octocat!"
	regexp.MustCompile(`Welcome to GitLab, @([\w.-]+)!`),
	// Gitea: "Hi there, octocat! You've successfully authenticated ..."
	regexp.MustCompile(`Hi there,? ([\w.-]+)!`),
	// Bitbucket: "authenticated via ssh key ... logged in as octocat"
	regexp.MustCompile(`logged in as ([\w.-]+)`),
}

// ParseAccount scans service output for a recognized greeting and returns
// the embedded account name, or empty if nothing matched.
func ParseAccount(output string) string {
	for _, pattern := range greetingPatterns {
		if matches := pattern.FindStringSubmatch(output); len(matches) > 1 {
			return matches[1]
		}
	}
	return ""
}
