package telemetry

import (
	"runtime"

	"github.com/campuspocket/campuspocket/pkg/version"
)

// Event names
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventFieldsSynced       = "fields_synced"
	EventPostsSynced        = "posts_synced"
	EventSearchPerformed    = "search_performed"
	EventLogin              = "login"
	EventLogout             = "logout"
	EventCacheCleared       = "cache_cleared"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCLIHelpViewed      = "cli_help_viewed"
)

// Version is set at compile time via ldflags.
var Version string

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(signedIn bool) {
	props := baseProperties()
	props["signed_in"] = signedIn
	c.Track(EventAppStarted, props)
}

// TrackAppExited tracks application exit.
func (c *posthogClient) TrackAppExited(sessionDurationMs int64) {
	props := baseProperties()
	props["session_duration_ms"] = sessionDurationMs
	c.Track(EventAppExited, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackFieldsSynced tracks a completed fields sync. Counts only, never
// content.
func (c *posthogClient) TrackFieldsSynced(fieldCount, imageCount, imagesFailed int, durationMs int64) {
	props := baseProperties()
	props["field_count"] = fieldCount
	props["image_count"] = imageCount
	props["images_failed"] = imagesFailed
	props["duration_ms"] = durationMs
	c.Track(EventFieldsSynced, props)
}

// TrackPostsSynced tracks a completed posts sync.
func (c *posthogClient) TrackPostsSynced(postCount, savedCount int, durationMs int64) {
	props := baseProperties()
	props["post_count"] = postCount
	props["saved_count"] = savedCount
	c.Track(EventPostsSynced, props)
}

// TrackSearchPerformed tracks a local cache search. The query itself is
// never sent.
func (c *posthogClient) TrackSearchPerformed(resultCount int) {
	props := baseProperties()
	props["result_count"] = resultCount
	c.Track(EventSearchPerformed, props)
}

// TrackLogin tracks a successful login.
func (c *posthogClient) TrackLogin(hasAvatar bool) {
	props := baseProperties()
	props["has_avatar"] = hasAvatar
	c.Track(EventLogin, props)
}

// TrackLogout tracks a logout.
func (c *posthogClient) TrackLogout() {
	c.Track(EventLogout, baseProperties())
}

// TrackCacheCleared tracks a domain wipe.
func (c *posthogClient) TrackCacheCleared(domain string) {
	props := baseProperties()
	props["domain"] = domain
	c.Track(EventCacheCleared, props)
}

// TrackCLIError tracks CLI errors by type.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackCLIHelpViewed tracks help usage.
func (c *posthogClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["arg_count"] = len(cliArgs)
	c.Track(EventCLIHelpViewed, props)
}

// --- noop implementations ---

func (c *noopClient) TrackAppStarted(signedIn bool)                           {}
func (c *noopClient) TrackAppExited(sessionDurationMs int64)                  {}
func (c *noopClient) TrackCLICommandExecuted(name string, f bool, d int64)    {}
func (c *noopClient) TrackFieldsSynced(fields, images, failed int, d int64)   {}
func (c *noopClient) TrackPostsSynced(posts, saved int, d int64)              {}
func (c *noopClient) TrackSearchPerformed(resultCount int)                    {}
func (c *noopClient) TrackLogin(hasAvatar bool)                               {}
func (c *noopClient) TrackLogout()                                            {}
func (c *noopClient) TrackCacheCleared(domain string)                         {}
func (c *noopClient) TrackCLIError(commandName, errorType string)             {}
func (c *noopClient) TrackCLIHelpViewed(commandName string, cliArgs []string) {}
