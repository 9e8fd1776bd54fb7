// Package dockerprobe discovers local database containers.
//
// The doctor command uses it to answer one question: when the configured
// DATABASE_URL points at localhost and the connection fails, is there a
// database server container on this machine at all, and is it running?
// The probe is read-only — it lists containers and never starts, stops,
// or modifies anything.
package dockerprobe

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// defaultPingTimeout bounds the daemon reachability check. Docker Desktop
// on macOS can be slower than native Linux Docker, so this is generous.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client with automatic socket
// detection across platforms.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST is respected when set;
// otherwise platform-specific default socket paths are probed.
func NewClient() (*Client, error) {
	dockerHost := os.Getenv("DOCKER_HOST")
	if dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerUnreachable,
			"Docker socket not found",
			err,
		)
	}
	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client connected to the given host
// connection string, with automatic API version negotiation.
func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerUnreachable,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost returns the Docker socket path for the current
// platform. It checks for socket file existence rather than attempting a
// connection; Ping handles connectivity.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
		})

	case "darwin":
		// Docker Desktop may place the socket under the user's home
		// directory instead of /var/run.
		home, _ := os.UserHomeDir()
		candidates := []string{"/var/run/docker.sock"}
		if home != "" {
			candidates = append(candidates, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(candidates)

	case "windows":
		return "npipe:////./pipe/docker_engine", nil

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the first existing socket path as a unix://
// connection string.
func detectUnixSocket(paths []string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return "unix://" + p, nil
		}
	}
	return "", fmt.Errorf("no Docker socket found (checked: %v)", paths)
}

// Ping verifies the Docker daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerUnreachable,
			"Docker daemon is not responding",
			err,
		)
	}
	return nil
}

// Close releases the client's resources.
func (c *Client) Close() error {
	return c.inner.Close()
}
