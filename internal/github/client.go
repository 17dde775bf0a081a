// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v32/github"
	"github.com/hashicorp/go-retryablehttp"
)

// UnauthorizedClient function returns an unauthenticated instance of the GitHub API client,
// backed by a retrying HTTP transport since the update check runs unattended in CI.
func UnauthorizedClient() *github.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	return github.NewClient(retryClient.StandardClient())
}

// LatestRelease method returns the latest published release for a repository.
func LatestRelease(ctx context.Context, client *github.Client, owner, repo string) (*github.RepositoryRelease, error) {
	release, _, err := client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release failed: %w", err)
	}
	return release, nil
}
