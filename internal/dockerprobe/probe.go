package dockerprobe

import (
	"context"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	log "github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// postgresPort is the default PostgreSQL server port.
const postgresPort = 5432

// databaseImageMarkers are substrings that identify PostgreSQL-family
// server images. The backend only ever connects to PostgreSQL servers,
// so other engines are not matched.
var databaseImageMarkers = []string{
	"postgres",
	"postgis",
	"timescale",
	"pgvector",
	"supabase/postgres",
}

// FindDatabaseContainers lists all containers (running or not) that look
// like local PostgreSQL servers, either by image name or by publishing
// the PostgreSQL port.
func FindDatabaseContainers(ctx context.Context, cli *Client) ([]model.DatabaseContainer, error) {
	containers, err := cli.inner.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerUnreachable,
			"failed to list Docker containers",
			err,
		)
	}

	log.WithField("total", len(containers)).Debug("scanning containers for database servers")

	var found []model.DatabaseContainer
	for _, c := range containers {
		if !isDatabaseContainer(c) {
			continue
		}
		found = append(found, containerToInfo(c))
	}

	// Stable order for output and tests: running first, then by name.
	sort.Slice(found, func(i, j int) bool {
		if found[i].State != found[j].State {
			return found[i].State == "running"
		}
		return found[i].Name < found[j].Name
	})
	return found, nil
}

// isDatabaseContainer reports whether the container looks like a
// PostgreSQL server, by image name or published port.
func isDatabaseContainer(c types.Container) bool {
	image := strings.ToLower(c.Image)
	for _, marker := range databaseImageMarkers {
		if strings.Contains(image, marker) {
			return true
		}
	}
	for _, p := range c.Ports {
		if int(p.PrivatePort) == postgresPort {
			return true
		}
	}
	return false
}

// containerToInfo converts a Docker API container to the domain type.
// Docker returns names with a leading "/" which is stripped for display.
func containerToInfo(c types.Container) model.DatabaseContainer {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	var published []int
	seen := make(map[int]bool)
	for _, p := range c.Ports {
		if p.PublicPort == 0 || seen[int(p.PublicPort)] {
			continue
		}
		seen[int(p.PublicPort)] = true
		published = append(published, int(p.PublicPort))
	}
	sort.Ints(published)

	id := c.ID
	if len(id) > 12 {
		id = id[:12]
	}

	return model.DatabaseContainer{
		ID:             id,
		Name:           name,
		Image:          c.Image,
		State:          c.State,
		PublishedPorts: published,
	}
}
