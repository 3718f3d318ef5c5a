package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"

	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// IdentitySource yields the distribution identity from one underlying
// interface.
type IdentitySource interface {
	// Name tags log lines about this source.
	Name() string
	Identify(ctx context.Context) (models.Distribution, error)
}

// DefaultIdentitySources is the production chain: the host identity
// service first, the distribution descriptor file as fallback.
func DefaultIdentitySources(osReleasePath string) []IdentitySource {
	return []IdentitySource{hostIdentity{}, osRelease{path: osReleasePath}}
}

// ResolveDistribution queries the sources in order and adopts the first
// successful identity. Unknown fills whatever the winning source left
// blank, and a missing pretty name is synthesized from name and version.
func ResolveDistribution(ctx context.Context, sources ...IdentitySource) models.Distribution {
	d := models.Distribution{
		Name:    models.Unknown,
		Pretty:  models.Unknown,
		Version: models.Unknown,
	}
	for _, src := range sources {
		got, err := src.Identify(ctx)
		if err != nil {
			logrus.WithField("source", src.Name()).Debugf("distribution identity unavailable: %v", err)
			continue
		}
		if got.Name != "" {
			d.Name = got.Name
		}
		if got.Version != "" {
			d.Version = got.Version
		}
		if got.Pretty != "" {
			d.Pretty = got.Pretty
		}
		break
	}
	if d.Pretty == models.Unknown {
		d.Pretty = strings.TrimSpace(d.Name + " " + d.Version)
	}
	return d
}

// hostIdentity asks the host's platform information service.
type hostIdentity struct{}

func (hostIdentity) Name() string { return "host" }

func (hostIdentity) Identify(ctx context.Context) (models.Distribution, error) {
	platform, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return models.Distribution{}, err
	}
	if platform == "" && version == "" {
		return models.Distribution{}, errors.New("platform information empty")
	}
	return models.Distribution{Name: platform, Version: version}, nil
}

// osRelease parses the distribution descriptor file: KEY=VALUE lines,
// values optionally double-quoted.
type osRelease struct {
	path string
}

func (s osRelease) Name() string { return "os-release" }

func (s osRelease) Identify(_ context.Context) (models.Distribution, error) {
	content, ok := readAll(s.path)
	if !ok {
		return models.Distribution{}, fmt.Errorf("%s absent or empty", s.path)
	}

	var d models.Distribution
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "PRETTY_NAME="):
			d.Pretty = unquote(line[len("PRETTY_NAME="):])
		case strings.HasPrefix(line, "NAME="):
			d.Name = unquote(line[len("NAME="):])
		case strings.HasPrefix(line, "VERSION_ID="):
			d.Version = unquote(line[len("VERSION_ID="):])
		}
	}
	if d.Name == "" && d.Version == "" && d.Pretty == "" {
		return models.Distribution{}, fmt.Errorf("no identity fields in %s", s.path)
	}
	return d, nil
}

func unquote(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}
