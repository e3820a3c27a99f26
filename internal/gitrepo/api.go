package gitrepo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/rileyhilliard/rig/internal/errors"
)

// maxRepoPages bounds pagination so a huge account can't stall bootstrap.
const maxRepoPages = 20

// apiRepo is the slice of the hosting service's repo object we care about.
type apiRepo struct {
	FullName string `json:"full_name"`
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
}

// nextLinkPattern extracts the rel="next" URL from a Link header.
var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ListRepos fetches the public repositories of an account from a
// GitHub-compatible REST API, following pagination. Forks and archived
// repositories are skipped.
func ListRepos(apiBase, account string) ([]string, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100", apiBase, account)

	var names []string
	for page := 0; url != "" && page < maxRepoPages; page++ {
		repos, next, err := fetchRepoPage(client, url)
		if err != nil {
			return nil, err
		}
		for _, repo := range repos {
			if repo.Fork || repo.Archived {
				continue
			}
			names = append(names, repo.FullName)
		}
		url = next
	}

	return names, nil
}

func fetchRepoPage(client *http.Client, url string) ([]apiRepo, string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, "", errors.WrapWithCode(err, errors.ErrClone,
			"Can't reach the git hosting API",
			"Check your network connection and the API URL setting")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", errors.New(errors.ErrClone,
			"The git hosting API doesn't know that account",
			"Check the detected account name, or set git.include explicitly")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New(errors.ErrClone,
			fmt.Sprintf("The git hosting API returned HTTP %d", resp.StatusCode),
			"API rate limits are the usual cause, wait a bit and retry")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.WrapWithCode(err, errors.ErrClone,
			"Failed reading the API response", "Retry in a moment")
	}

	var repos []apiRepo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, "", errors.WrapWithCode(err, errors.ErrClone,
			"The API response wasn't valid JSON",
			"Check that the API URL points at a GitHub-compatible service")
	}

	return repos, nextLink(resp.Header.Get("Link")), nil
}

// nextLink pulls the rel="next" URL out of a Link header, empty when the
// last page has been reached.
func nextLink(header string) string {
	if matches := nextLinkPattern.FindStringSubmatch(header); len(matches) > 1 {
		return matches[1]
	}
	return ""
}
