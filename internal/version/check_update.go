// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package version

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/codspeed-go/runner/internal/environment"
	"github.com/codspeed-go/runner/internal/github"
	"github.com/codspeed-go/runner/internal/locations"
)

const (
	repositoryOwner = "CodSpeedHQ"
	repositoryName  = "codspeed-go"

	latestVersionFile    = "latestVersion"
	defaultCacheDuration = 30 * time.Minute
)

var checkUpdateDisabledEnv = environment.WithCodspeedPrefix("GO_CHECK_UPDATE_DISABLED")

type versionLatest struct {
	TagName   string    `json:"tag"`
	HtmlURL   string    `json:"html_url"`
	Timestamp time.Time `json:"timestamp"`
}

func (v versionLatest) String() string {
	return fmt.Sprintf("%s. Download from: %s (Timestamp %s)", v.TagName, v.HtmlURL, v.Timestamp)
}

// CheckUpdate function checks using the GitHub Release API if a newer version is available.
func CheckUpdate(ctx context.Context, logger *slog.Logger) {
	if Tag == "" {
		logger.Debug("distribution built without a version tag, can't determine release chronology. Please consider using official releases at " +
			"https://github.com/CodSpeedHQ/codspeed-go/releases")
		return
	}

	v, ok := os.LookupEnv(checkUpdateDisabledEnv)
	if ok && strings.ToLower(v) != "false" {
		logger.Debug("disabled checking updates")
		return
	}

	expired := true
	latestVersion, err := loadCacheLatestVersion(logger)
	switch {
	case err != nil:
		logger.Debug("failed to load latest version from cache", slog.Any("error", err))
	default:
		expired = checkCachedLatestVersion(latestVersion, defaultCacheDuration)
	}

	var release *versionLatest
	switch {
	case !expired:
		logger.Debug("latest version (cached)", slog.String("version", latestVersion.String()))
		release = latestVersion
	default:
		logger.Debug("checking latest release in GitHub")
		githubClient := github.UnauthorizedClient()
		githubRelease, err := github.LatestRelease(ctx, githubClient, repositoryOwner, repositoryName)
		if err != nil {
			logger.Debug("failed to get latest release", slog.Any("error", err))
			return
		}
		release = &versionLatest{
			TagName:   githubRelease.GetTagName(),
			HtmlURL:   githubRelease.GetHTMLURL(),
			Timestamp: time.Now(),
		}
	}

	currentVersion, err := semver.NewVersion(strings.TrimPrefix(Tag, "v"))
	if err != nil {
		logger.Debug("can't parse current version tag", slog.String("tag", Tag), slog.Any("error", err))
		return
	}

	releaseVersion, err := semver.NewVersion(strings.TrimPrefix(release.TagName, "v"))
	if err != nil {
		logger.Debug("can't parse latest version tag", slog.String("tag", release.TagName), slog.Any("error", err))
		return
	}

	if currentVersion.LessThan(releaseVersion) {
		logger.Info("new version is available", slog.String("current", Tag), slog.String("version", release.TagName), slog.String("download_url", release.HtmlURL))
	}

	// if the cached version is not expired, don't write contents into the file
	if !expired {
		return
	}

	if err := writeLatestReleaseToCache(release); err != nil {
		logger.Debug("failed to write latest version to cache file", slog.Any("error", err))
	}
}

func writeLatestReleaseToCache(release *versionLatest) error {
	loc, err := locations.NewLocationManager()
	if err != nil {
		return fmt.Errorf("failed locating the configuration directory: %w", err)
	}

	latestVersionPath := filepath.Join(loc.RootDir(), latestVersionFile)

	contents, err := json.Marshal(release)
	if err != nil {
		return fmt.Errorf("failed to encode file %s: %w", latestVersionPath, err)
	}
	err = os.WriteFile(latestVersionPath, contents, 0644)
	if err != nil {
		return fmt.Errorf("writing file failed (path: %s): %w", latestVersionPath, err)
	}

	return nil
}

func loadCacheLatestVersion(logger *slog.Logger) (*versionLatest, error) {
	loc, err := locations.NewLocationManager()
	if err != nil {
		return nil, fmt.Errorf("failed locating the configuration directory: %w", err)
	}

	latestVersionPath := filepath.Join(loc.RootDir(), latestVersionFile)
	contents, err := os.ReadFile(latestVersionPath)
	if err != nil {
		return nil, fmt.Errorf("reading version file failed: %w", err)
	}

	var infoVersion versionLatest
	err = json.Unmarshal(contents, &infoVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", latestVersionPath, err)
	}

	return &infoVersion, nil
}

func checkCachedLatestVersion(latest *versionLatest, expiration time.Duration) bool {
	expirationTime := time.Now().Add(-expiration)

	return latest.Timestamp.Before(expirationTime)
}
